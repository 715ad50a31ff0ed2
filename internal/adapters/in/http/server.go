// Package http is the inbound adapter: an echo server exposing the
// dispatch API to the courier app and the platform webhooks.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/application/locations"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/ports"
	"dispatch/internal/notifications"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP surface to the application layer.
type Server struct {
	claimOrderHandler        commands.ClaimOrderCommandHandler
	completeOrderHandler     commands.CompleteOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	createOrderHandler       commands.CreateOrderCommandHandler
	updateLocationHandler    commands.UpdateLocationCommandHandler
	rateOrderHandler         commands.RateOrderCommandHandler
	attachPhotoHandler       commands.AttachPhotoCommandHandler
	deactivateCourierHandler commands.DeactivateCourierCommandHandler

	getOrdersHandler      queries.GetOrdersQueryHandler
	getOrderHandler       queries.GetOrderQueryHandler
	teamOverviewHandler   queries.GetTeamOverviewQueryHandler
	courierStatsHandler   queries.GetCourierStatsQueryHandler
	optimizedRouteHandler queries.GetOptimizedRouteQueryHandler

	locationCache *locations.Cache
	registry      *notifications.Registry
	couriers      ports.CourierRepository
	businesses    ports.BusinessRepository

	jwtSecret     []byte
	webhookSecret string
	timezone      *time.Location
	logger        *slog.Logger
}

// ServerParams collects the server's dependencies.
type ServerParams struct {
	ClaimOrderHandler        commands.ClaimOrderCommandHandler
	CompleteOrderHandler     commands.CompleteOrderCommandHandler
	CancelOrderHandler       commands.CancelOrderCommandHandler
	CreateOrderHandler       commands.CreateOrderCommandHandler
	UpdateLocationHandler    commands.UpdateLocationCommandHandler
	RateOrderHandler         commands.RateOrderCommandHandler
	AttachPhotoHandler       commands.AttachPhotoCommandHandler
	DeactivateCourierHandler commands.DeactivateCourierCommandHandler

	GetOrdersHandler      queries.GetOrdersQueryHandler
	GetOrderHandler       queries.GetOrderQueryHandler
	TeamOverviewHandler   queries.GetTeamOverviewQueryHandler
	CourierStatsHandler   queries.GetCourierStatsQueryHandler
	OptimizedRouteHandler queries.GetOptimizedRouteQueryHandler

	LocationCache *locations.Cache
	Registry      *notifications.Registry
	Couriers      ports.CourierRepository
	Businesses    ports.BusinessRepository

	JWTSecret []byte
	// WebhookSecret guards the webhook endpoints when set; empty keeps
	// them open, matching businesses that cannot configure a header on
	// the platform side.
	WebhookSecret string
	// Timezone anchors the "today" boundaries of team and stats views.
	Timezone *time.Location
	Logger   *slog.Logger
}

// NewServer creates the HTTP server.
func NewServer(params ServerParams) *Server {
	tz := params.Timezone
	if tz == nil {
		tz = time.Local
	}

	return &Server{
		claimOrderHandler:        params.ClaimOrderHandler,
		completeOrderHandler:     params.CompleteOrderHandler,
		cancelOrderHandler:       params.CancelOrderHandler,
		createOrderHandler:       params.CreateOrderHandler,
		updateLocationHandler:    params.UpdateLocationHandler,
		rateOrderHandler:         params.RateOrderHandler,
		attachPhotoHandler:       params.AttachPhotoHandler,
		deactivateCourierHandler: params.DeactivateCourierHandler,
		getOrdersHandler:         params.GetOrdersHandler,
		getOrderHandler:          params.GetOrderHandler,
		teamOverviewHandler:      params.TeamOverviewHandler,
		courierStatsHandler:      params.CourierStatsHandler,
		optimizedRouteHandler:    params.OptimizedRouteHandler,
		locationCache:            params.LocationCache,
		registry:                 params.Registry,
		couriers:                 params.Couriers,
		businesses:               params.Businesses,
		jwtSecret:                params.JWTSecret,
		webhookSecret:            params.WebhookSecret,
		timezone:                 tz,
		logger:                   params.Logger,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/webhooks/:platform/:businessCode", s.HandleWebhook)

	api := e.Group("/api", AuthMiddleware(s.jwtSecret))

	api.GET("/orders", s.GetOrders)
	api.GET("/orders/optimized-route", s.GetOptimizedRoute)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/claim", s.ClaimOrder)
	api.PATCH("/orders/:id", s.UpdateOrderStatus)
	api.PATCH("/orders/:id/rating", s.RateOrder)
	api.PATCH("/orders/:id/photo", s.AttachPhoto)
	api.POST("/orders/manual", s.CreateManualOrder,
		RequireRoles(courier.RoleChief, courier.RoleManager, courier.RoleAdmin))

	api.GET("/couriers/team", s.GetTeamOverview,
		RequireRoles(courier.RoleChief, courier.RoleManager, courier.RoleAdmin))
	api.GET("/couriers/locations", s.GetCourierLocations,
		RequireRoles(courier.RoleChief, courier.RoleManager, courier.RoleAdmin))
	api.POST("/couriers/location", s.ReportLocation)
	api.GET("/couriers/:id/stats", s.GetCourierStats)
	api.DELETE("/couriers/:id", s.DeactivateCourier,
		RequireRoles(courier.RoleChief, courier.RoleManager, courier.RoleAdmin))

	api.GET("/businesses/:businessId/couriers", s.GetBusinessCouriers)

	api.POST("/push-token", s.RegisterPushToken)
	api.DELETE("/push-token", s.RemovePushToken)
}

// Health answers liveness probes.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// startOfDay returns local midnight for the server's business timezone.
func (s *Server) startOfDay(now time.Time) time.Time {
	local := now.In(s.timezone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.timezone)
}

// startOfWeek returns the start of the rolling seven-day stats window.
func (s *Server) startOfWeek(now time.Time) time.Time {
	return now.In(s.timezone).AddDate(0, 0, -7)
}
