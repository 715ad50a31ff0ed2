package http

import (
	"net/http"

	"dispatch/internal/notifications"

	"github.com/labstack/echo/v4"
)

type pushTokenRequest struct {
	Token string `json:"token"`
}

// RegisterPushToken handles POST /api/push-token. The device token is
// tied to the caller so role-targeted pushes can find it later.
func (s *Server) RegisterPushToken(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	businessID, err := callerBusinessID(c)
	if err != nil {
		return err
	}

	var req pushTokenRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	aggregate, err := s.couriers.Get(c.Request().Context(), caller)
	if err != nil {
		return respondError(c, err)
	}

	s.registry.Register(notifications.Registration{
		Token:      req.Token,
		CourierID:  caller,
		BusinessID: businessID,
		Name:       aggregate.Name(),
		Role:       aggregate.Role(),
	})

	return c.NoContent(http.StatusNoContent)
}

// RemovePushToken handles DELETE /api/push-token, used on logout.
func (s *Server) RemovePushToken(c echo.Context) error {
	if _, err := callerClaims(c); err != nil {
		return err
	}

	var req pushTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	s.registry.Remove(req.Token)
	return c.NoContent(http.StatusNoContent)
}
