package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetOptimizedRouteQueryHandler plans the courier's delivery sequence.
// Unlike the other read handlers it goes through the repositories: the
// planner works on order aggregates, and the courier's position is the
// route's starting point.
type GetOptimizedRouteQueryHandler struct {
	orders   ports.OrderRepository
	couriers ports.CourierRepository
	planner  services.RoutePlanner
}

// NewGetOptimizedRouteQueryHandler creates a handler for route planning
// queries.
func NewGetOptimizedRouteQueryHandler(
	orders ports.OrderRepository,
	couriers ports.CourierRepository,
	planner services.RoutePlanner,
) GetOptimizedRouteQueryHandler {
	return GetOptimizedRouteQueryHandler{
		orders:   orders,
		couriers: couriers,
		planner:  planner,
	}
}

// Handle plans the route over the courier's active orders. A courier who
// has never reported a position cannot be routed; orders without
// coordinates are skipped and counted.
func (h GetOptimizedRouteQueryHandler) Handle(
	ctx context.Context,
	query GetOptimizedRouteQuery,
) (RouteView, error) {
	if err := query.Validate(); err != nil {
		return RouteView{}, err
	}

	var start kernel.GeoPoint
	if query.Start() != nil {
		start = *query.Start()
	} else {
		courierAggregate, err := h.couriers.Get(ctx, query.CourierID())
		if err != nil {
			return RouteView{}, err
		}
		start = courierAggregate.Location()
	}

	if start.IsZero() {
		return RouteView{}, errs.NewValueIsRequiredError("courier location")
	}

	orders, err := h.orders.GetActiveByCourier(ctx, query.CourierID())
	if err != nil {
		return RouteView{}, err
	}

	route, err := h.planner.Plan(start, orders)
	if err != nil {
		return RouteView{}, err
	}

	view := RouteView{
		Stops:           make([]RouteStopView, 0, len(route.Stops)),
		TotalDistanceKm: route.TotalDistance,
		Skipped:         len(orders) - len(route.Stops),
	}

	for _, stop := range route.Stops {
		view.Stops = append(view.Stops, RouteStopView{
			OrderID:         stop.Order.ID(),
			OrderNumber:     stop.Order.OrderNumber(),
			CustomerName:    stop.Order.Customer().Name,
			CustomerAddress: stop.Order.Customer().Address,
			Location:        stop.Order.Location(),
			DistanceKm:      stop.Distance,
		})
	}

	return view, nil
}
