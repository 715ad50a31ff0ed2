package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrGetOptimizedRouteQueryIsNotConstructed = errors.New(
	"GetOptimizedRouteQuery must be created via NewGetOptimizedRouteQuery constructor",
)

// GetOptimizedRouteQuery plans a delivery sequence over the courier's
// active orders. The route starts from the courier's live position when
// the app sends one, falling back to their last persisted report.
type GetOptimizedRouteQuery struct {
	courierID kernel.UUID
	start     *kernel.GeoPoint

	isConstructed bool
}

// NewGetOptimizedRouteQuery creates a validated route planning query.
// start overrides the stored position when non-nil; the zero point is
// rejected because it cannot anchor a route.
func NewGetOptimizedRouteQuery(courierID kernel.UUID, start *kernel.GeoPoint) (GetOptimizedRouteQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetOptimizedRouteQuery{}, err
	}
	if start != nil {
		if err := start.Validate(); err != nil {
			return GetOptimizedRouteQuery{}, err
		}
		if start.IsZero() {
			return GetOptimizedRouteQuery{}, errs.NewValueIsRequiredError("start")
		}
	}

	return GetOptimizedRouteQuery{
		courierID:     courierID,
		start:         start,
		isConstructed: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOptimizedRouteQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetOptimizedRouteQueryIsNotConstructed
	}
	return nil
}

// CourierID returns the courier the route is planned for.
func (q GetOptimizedRouteQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Start returns the live position override, or nil to use the courier's
// last persisted report.
func (q GetOptimizedRouteQuery) Start() *kernel.GeoPoint {
	return q.start
}

// RouteStopView is one leg of a planned route.
type RouteStopView struct {
	OrderID         kernel.UUID
	OrderNumber     string
	CustomerName    string
	CustomerAddress string
	Location        kernel.GeoPoint
	// DistanceKm is the leg distance from the previous stop.
	DistanceKm float64
}

// RouteView is the planned delivery sequence. Orders without usable
// coordinates are left out; Skipped counts them so the app can tell the
// courier the route is partial.
type RouteView struct {
	Stops           []RouteStopView
	TotalDistanceKm float64
	Skipped         int
}
