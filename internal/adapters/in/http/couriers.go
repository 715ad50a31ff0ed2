package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type teamMemberResponse struct {
	CourierID      string          `json:"courierId"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	ActiveCount    int             `json:"activeCount"`
	CompletedToday int             `json:"completedToday"`
	ActiveOrders   []orderResponse `json:"activeOrders"`
}

// GetTeamOverview handles GET /api/couriers/team. Chiefs and managers
// see per-courier workload within their own business.
func (s *Server) GetTeamOverview(c echo.Context) error {
	businessID, err := callerBusinessID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetTeamOverviewQuery(businessID, s.startOfDay(time.Now()))
	if err != nil {
		return respondError(c, err)
	}

	members, err := s.teamOverviewHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]teamMemberResponse, 0, len(members))
	for _, member := range members {
		activeOrders := make([]orderResponse, 0, len(member.ActiveOrders))
		for _, view := range member.ActiveOrders {
			activeOrders = append(activeOrders, toOrderResponse(view))
		}
		response = append(response, teamMemberResponse{
			CourierID:      member.CourierID.String(),
			Name:           member.Name,
			Role:           member.Role,
			ActiveCount:    member.ActiveCount,
			CompletedToday: member.CompletedToday,
			ActiveOrders:   activeOrders,
		})
	}

	return c.JSON(http.StatusOK, response)
}

type courierLocationResponse struct {
	CourierID string    `json:"courierId"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsStale   bool      `json:"isStale"`
}

// GetCourierLocations handles GET /api/couriers/locations from the live
// cache, without touching the database.
func (s *Server) GetCourierLocations(c echo.Context) error {
	businessID, err := callerBusinessID(c)
	if err != nil {
		return err
	}

	snapshot := s.locationCache.Snapshot(businessID, time.Now())

	response := make([]courierLocationResponse, 0, len(snapshot))
	for _, loc := range snapshot {
		response = append(response, courierLocationResponse{
			CourierID: loc.CourierID.String(),
			Name:      loc.Name,
			Role:      string(loc.Role),
			Latitude:  loc.Position.Latitude(),
			Longitude: loc.Position.Longitude(),
			UpdatedAt: loc.UpdatedAt,
			IsStale:   loc.IsStale,
		})
	}

	return c.JSON(http.StatusOK, response)
}

// DeactivateCourier handles DELETE /api/couriers/:id. The courier drops
// out of pool, team and map views; their order history is kept.
func (s *Server) DeactivateCourier(c echo.Context) error {
	courierID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewDeactivateCourierCommand(courierID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.deactivateCourierHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type businessCourierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// GetBusinessCouriers handles GET /api/businesses/:businessId/couriers,
// listing the business's active couriers. Non-admin callers are pinned
// to their own business.
func (s *Server) GetBusinessCouriers(c echo.Context) error {
	businessID, err := kernel.UUIDFromString(c.Param("businessId"))
	if err != nil {
		return respondError(c, err)
	}

	role, err := callerRole(c)
	if err != nil {
		return err
	}
	if role != courier.RoleAdmin {
		own, ownErr := callerBusinessID(c)
		if ownErr != nil {
			return ownErr
		}
		if !own.IsEqual(businessID) {
			return echo.NewHTTPError(http.StatusForbidden, "couriers are visible within their own business only")
		}
	}

	active, err := s.couriers.GetActiveByBusiness(c.Request().Context(), businessID)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]businessCourierResponse, 0, len(active))
	for _, member := range active {
		response = append(response, businessCourierResponse{
			ID:    member.ID().String(),
			Name:  member.Name(),
			Phone: member.Phone(),
			Role:  member.Role().String(),
		})
	}

	return c.JSON(http.StatusOK, response)
}

type reportLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReportLocation handles POST /api/couriers/location. The caller reports
// their own position; nobody can move another courier.
func (s *Server) ReportLocation(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req reportLocationRequest
	if err = c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(caller, point)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.updateLocationHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type courierStatsResponse struct {
	CompletedToday     int      `json:"completedToday"`
	CompletedThisWeek  int      `json:"completedThisWeek"`
	CompletedTotal     int      `json:"completedTotal"`
	AvgDeliveryMinutes *float64 `json:"avgDeliveryMinutes"`
}

// GetCourierStats handles GET /api/couriers/:id/stats. Couriers may read
// their own numbers; supervisors may read anyone's.
func (s *Server) GetCourierStats(c echo.Context) error {
	courierID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	caller, err := callerID(c)
	if err != nil {
		return err
	}
	role, err := callerRole(c)
	if err != nil {
		return err
	}
	if !caller.IsEqual(courierID) && !role.CanSupervise() {
		return echo.NewHTTPError(http.StatusForbidden, "stats are visible to the courier and supervisors only")
	}

	now := time.Now()
	query, err := queries.NewGetCourierStatsQuery(courierID, s.startOfDay(now), s.startOfWeek(now))
	if err != nil {
		return respondError(c, err)
	}

	view, err := s.courierStatsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, courierStatsResponse{
		CompletedToday:     view.CompletedToday,
		CompletedThisWeek:  view.CompletedThisWeek,
		CompletedTotal:     view.CompletedTotal,
		AvgDeliveryMinutes: view.AvgDeliveryMinutes,
	})
}
