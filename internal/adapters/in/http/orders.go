package http

import (
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type orderResponse struct {
	ID              string     `json:"id"`
	Platform        string     `json:"platform"`
	OrderNumber     string     `json:"orderNumber"`
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	CustomerAddress string     `json:"customerAddress,omitempty"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	Items           []string   `json:"items"`
	TotalPrice      string     `json:"totalPrice"`
	OrderTime       time.Time  `json:"orderTime"`
	Status          string     `json:"status"`
	CourierID       *string    `json:"courierId,omitempty"`
	CourierName     *string    `json:"courierName,omitempty"`
	ClaimedAt       *time.Time `json:"claimedAt,omitempty"`
	DeliveryTime    *time.Time `json:"deliveryTime,omitempty"`
	Rating          *int       `json:"rating,omitempty"`
	RatingNote      *string    `json:"ratingNote,omitempty"`
	Photo           *string    `json:"photo,omitempty"`
}

func toOrderResponse(view queries.OrderView) orderResponse {
	resp := orderResponse{
		ID:              view.ID.String(),
		Platform:        view.Platform,
		OrderNumber:     view.OrderNumber,
		CustomerName:    view.CustomerName,
		CustomerPhone:   view.CustomerPhone,
		CustomerAddress: view.CustomerAddress,
		Latitude:        view.Location.Latitude(),
		Longitude:       view.Location.Longitude(),
		Items:           view.Items,
		TotalPrice:      view.TotalPrice,
		OrderTime:       view.OrderTime,
		Status:          view.Status,
		CourierName:     view.CourierName,
		ClaimedAt:       view.ClaimedAt,
		DeliveryTime:    view.DeliveryTime,
		Rating:          view.Rating,
		RatingNote:      view.RatingNote,
		Photo:           view.Photo,
	}
	if view.CourierID != nil {
		id := view.CourierID.String()
		resp.CourierID = &id
	}
	return resp
}

// GetOrders handles GET /api/orders. Couriers see the pool plus their
// own orders; supervisors see everything in the business.
func (s *Server) GetOrders(c echo.Context) error {
	businessID, err := callerBusinessID(c)
	if err != nil {
		return err
	}
	role, err := callerRole(c)
	if err != nil {
		return err
	}

	// Admins may look at another business; everyone else is pinned to
	// their own.
	if businessParam := c.QueryParam("businessId"); businessParam != "" && role == courier.RoleAdmin {
		id, idErr := kernel.UUIDFromString(businessParam)
		if idErr != nil {
			return respondError(c, idErr)
		}
		businessID = id
	}

	filter := queries.GetOrdersFilter{}

	if statusParam := c.QueryParam("status"); statusParam != "" {
		status, statusErr := order.StatusFromString(statusParam)
		if statusErr != nil {
			return respondError(c, statusErr)
		}
		filter.Status = &status
	}

	if !role.CanSupervise() {
		// Couriers see the shared pool plus their own orders.
		caller, idErr := callerID(c)
		if idErr != nil {
			return idErr
		}
		filter.VisibleToCourier = &caller
	} else if courierParam := c.QueryParam("courierId"); courierParam != "" {
		id, idErr := kernel.UUIDFromString(courierParam)
		if idErr != nil {
			return respondError(c, idErr)
		}
		filter.VisibleToCourier = &id
	}

	query, err := queries.NewGetOrdersQuery(businessID, filter)
	if err != nil {
		return respondError(c, err)
	}

	views, err := s.getOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]orderResponse, 0, len(views))
	for _, view := range views {
		response = append(response, toOrderResponse(view))
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	view, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(view))
}

// ClaimOrder handles PATCH /api/orders/:id/claim. The caller is the
// claiming courier; winning returns the claimed order with the owner's
// name resolved, losing the race yields 400 with the owner's name.
func (s *Server) ClaimOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, caller)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.claimOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	view, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(view))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /api/orders/:id. The body's status
// field drives the transition: completed or cancelled.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req updateOrderStatusRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	switch status {
	case order.StatusCompleted:
		cmd, cmdErr := commands.NewCompleteOrderCommand(orderID)
		if cmdErr != nil {
			return respondError(c, cmdErr)
		}
		if err = s.completeOrderHandler.Handle(ctx, cmd); err != nil {
			return respondError(c, err)
		}
	case order.StatusCancelled:
		cmd, cmdErr := commands.NewCancelOrderCommand(orderID)
		if cmdErr != nil {
			return respondError(c, cmdErr)
		}
		if err = s.cancelOrderHandler.Handle(ctx, cmd); err != nil {
			return respondError(c, err)
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status must be completed or cancelled")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": status.String()})
}

type rateOrderRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RateOrder handles PATCH /api/orders/:id/rating.
func (s *Server) RateOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req rateOrderRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(orderID, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.rateOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type attachPhotoRequest struct {
	Photo string `json:"photo"`
}

// AttachPhoto handles PATCH /api/orders/:id/photo.
func (s *Server) AttachPhoto(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req attachPhotoRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewAttachPhotoCommand(orderID, req.Photo)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.attachPhotoHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type manualOrderRequest struct {
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	CustomerAddress string   `json:"customerAddress"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Items           []string `json:"items"`
	TotalPrice      string   `json:"totalPrice"`
}

// CreateManualOrder handles POST /api/orders/manual. Staff-entered
// orders for walk-in and phone customers; the order number is generated.
func (s *Server) CreateManualOrder(c echo.Context) error {
	businessID, err := callerBusinessID(c)
	if err != nil {
		return err
	}

	var req manualOrderRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		BusinessID: businessID,
		Platform:   order.PlatformManual,
		Customer: order.Customer{
			Name:    req.CustomerName,
			Phone:   req.CustomerPhone,
			Address: req.CustomerAddress,
		},
		Location:   location,
		Items:      req.Items,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return respondError(c, err)
	}

	orderID, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"orderId": orderID.String()})
}

type routeStopResponse struct {
	OrderID         string  `json:"orderId"`
	OrderNumber     string  `json:"orderNumber"`
	CustomerName    string  `json:"customerName"`
	CustomerAddress string  `json:"customerAddress,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	DistanceKm      float64 `json:"distanceKm"`
}

type routeResponse struct {
	Stops           []routeStopResponse `json:"stops"`
	TotalDistanceKm float64             `json:"totalDistanceKm"`
	Skipped         int                 `json:"skipped"`
}

func parseGeoPoint(latParam, lngParam string) (kernel.GeoPoint, error) {
	lat, err := strconv.ParseFloat(latParam, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("lat")
	}
	lng, err := strconv.ParseFloat(lngParam, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("lng")
	}
	return kernel.NewGeoPoint(lat, lng)
}

// GetOptimizedRoute handles GET /api/orders/optimized-route. The app
// passes its live GPS fix as lat/lng; without it the courier's last
// stored report anchors the route.
func (s *Server) GetOptimizedRoute(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var start *kernel.GeoPoint
	if c.QueryParam("lat") != "" || c.QueryParam("lng") != "" {
		point, pointErr := parseGeoPoint(c.QueryParam("lat"), c.QueryParam("lng"))
		if pointErr != nil {
			return respondError(c, pointErr)
		}
		start = &point
	}

	query, err := queries.NewGetOptimizedRouteQuery(caller, start)
	if err != nil {
		return respondError(c, err)
	}

	view, err := s.optimizedRouteHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := routeResponse{
		Stops:           make([]routeStopResponse, 0, len(view.Stops)),
		TotalDistanceKm: view.TotalDistanceKm,
		Skipped:         view.Skipped,
	}
	for _, stop := range view.Stops {
		response.Stops = append(response.Stops, routeStopResponse{
			OrderID:         stop.OrderID.String(),
			OrderNumber:     stop.OrderNumber,
			CustomerName:    stop.CustomerName,
			CustomerAddress: stop.CustomerAddress,
			Latitude:        stop.Location.Latitude(),
			Longitude:       stop.Location.Longitude(),
			DistanceKm:      stop.DistanceKm,
		})
	}

	return c.JSON(http.StatusOK, response)
}
