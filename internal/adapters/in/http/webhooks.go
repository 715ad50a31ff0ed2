package http

import (
	"encoding/json"
	"io"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const webhookKeyHeader = "X-Webhook-Key"

// trendyolPayload is the shape Trendyol Yemek posts on new orders.
type trendyolPayload struct {
	OrderNumber string `json:"orderNumber"`
	Customer    struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Delivery struct {
		Address   string  `json:"address"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"delivery"`
	Items []struct {
		Name string `json:"name"`
	} `json:"items"`
	TotalPrice string `json:"totalPrice"`
}

type yemeksepetiPayload struct {
	ID              string `json:"id"`
	CustomerName    string `json:"customerName"`
	PhoneNumber     string `json:"phoneNumber"`
	DeliveryAddress string `json:"deliveryAddress"`
	Coords          struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coords"`
	Products []struct {
		Title string `json:"title"`
	} `json:"products"`
	Amount string `json:"amount"`
}

type getirPayload struct {
	ID     string `json:"id"`
	Client struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"client"`
	DeliveryAddress string `json:"deliveryAddress"`
	Location        struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Products []struct {
		Name string `json:"name"`
	} `json:"products"`
	TotalPrice string `json:"totalPrice"`
}

// HandleWebhook handles POST /api/webhooks/:platform/:businessCode.
// Platforms cannot send bearer tokens, so the route sits outside the
// auth group; a shared secret header guards it when configured.
func (s *Server) HandleWebhook(c echo.Context) error {
	if s.webhookSecret != "" && c.Request().Header.Get(webhookKeyHeader) != s.webhookSecret {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid webhook key")
	}

	platform, err := order.PlatformFromSlug(c.Param("platform"))
	if err != nil {
		return respondError(c, err)
	}

	business, err := s.businesses.GetByCode(c.Request().Context(), c.Param("businessCode"))
	if err != nil {
		return respondError(c, err)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	params, err := normalizeWebhookPayload(platform, body)
	if err != nil {
		return respondError(c, err)
	}
	params.BusinessID = business.ID()

	cmd, err := commands.NewCreateOrderCommand(params)
	if err != nil {
		return respondError(c, err)
	}

	orderID, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	s.logger.Info("webhook order ingested",
		"platform", platform.String(),
		"business", business.Code(),
		"orderId", orderID.String(),
	)

	return c.JSON(http.StatusCreated, map[string]string{"orderId": orderID.String()})
}

// normalizeWebhookPayload maps each platform's JSON shape onto the
// common order parameters. BusinessID is filled in by the caller.
func normalizeWebhookPayload(platform order.Platform, body []byte) (commands.CreateOrderParams, error) {
	switch platform {
	case order.PlatformTrendyol:
		var p trendyolPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return commands.CreateOrderParams{}, echo.NewHTTPError(http.StatusBadRequest, "malformed payload")
		}

		items := make([]string, 0, len(p.Items))
		for _, item := range p.Items {
			items = append(items, item.Name)
		}

		location, err := kernel.NewGeoPoint(p.Delivery.Latitude, p.Delivery.Longitude)
		if err != nil {
			return commands.CreateOrderParams{}, err
		}

		return commands.CreateOrderParams{
			Platform:    platform,
			OrderNumber: p.OrderNumber,
			Customer: order.Customer{
				Name:    p.Customer.Name,
				Phone:   p.Customer.Phone,
				Address: p.Delivery.Address,
			},
			Location:   location,
			Items:      items,
			TotalPrice: p.TotalPrice,
		}, nil

	case order.PlatformYemeksepeti:
		var p yemeksepetiPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return commands.CreateOrderParams{}, echo.NewHTTPError(http.StatusBadRequest, "malformed payload")
		}

		items := make([]string, 0, len(p.Products))
		for _, product := range p.Products {
			items = append(items, product.Title)
		}

		location, err := kernel.NewGeoPoint(p.Coords.Lat, p.Coords.Lng)
		if err != nil {
			return commands.CreateOrderParams{}, err
		}

		return commands.CreateOrderParams{
			Platform:    platform,
			OrderNumber: p.ID,
			Customer: order.Customer{
				Name:    p.CustomerName,
				Phone:   p.PhoneNumber,
				Address: p.DeliveryAddress,
			},
			Location:   location,
			Items:      items,
			TotalPrice: p.Amount,
		}, nil

	case order.PlatformGetir:
		var p getirPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return commands.CreateOrderParams{}, echo.NewHTTPError(http.StatusBadRequest, "malformed payload")
		}

		items := make([]string, 0, len(p.Products))
		for _, product := range p.Products {
			items = append(items, product.Name)
		}

		location, err := kernel.NewGeoPoint(p.Location.Lat, p.Location.Lng)
		if err != nil {
			return commands.CreateOrderParams{}, err
		}

		return commands.CreateOrderParams{
			Platform:    platform,
			OrderNumber: p.ID,
			Customer: order.Customer{
				Name:    p.Client.Name,
				Phone:   p.Client.Phone,
				Address: p.DeliveryAddress,
			},
			Location:   location,
			Items:      items,
			TotalPrice: p.TotalPrice,
		}, nil

	default:
		return commands.CreateOrderParams{}, echo.NewHTTPError(http.StatusBadRequest, "unsupported platform")
	}
}
