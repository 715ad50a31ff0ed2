package services

import (
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Stop is one leg of a planned route: the order to visit next and the
// great-circle distance from the previous position in kilometers.
type Stop struct {
	Order    *order.Order
	Distance float64
}

// Route is the planned visiting order over a courier's active deliveries.
// TotalDistance is the sum of the consecutive leg distances, not the sum
// of distances from the starting point.
type Route struct {
	Stops         []Stop
	TotalDistance float64
}

// RoutePlanner computes a delivery route using the greedy nearest-neighbor
// heuristic: from the current position, always visit the closest unvisited
// stop next.
//
// The result is not globally optimal and the search is O(n²), which is
// acceptable because n is one courier's simultaneous parcel count. For a
// given input ordering the result is deterministic; distance ties go to
// the stop that appears first in the input.
type RoutePlanner struct{}

// NewRoutePlanner creates a RoutePlanner.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// Plan orders the given deliveries starting from the courier's current
// position. Orders without coordinates (the zero point) are skipped: there
// is nothing to navigate to. Every remaining order appears exactly once.
func (RoutePlanner) Plan(start kernel.GeoPoint, orders []*order.Order) (Route, error) {
	if err := start.Validate(); err != nil {
		return Route{}, err
	}

	remaining := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Route{}, err
		}
		if o.Location().IsZero() {
			continue
		}
		remaining = append(remaining, o)
	}

	route := Route{Stops: make([]Stop, 0, len(remaining))}
	current := start

	for len(remaining) > 0 {
		nearest := 0
		minDist := math.MaxFloat64

		for i, o := range remaining {
			if dist := current.DistanceTo(o.Location()); dist < minDist {
				minDist = dist
				nearest = i
			}
		}

		next := remaining[nearest]
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)

		route.Stops = append(route.Stops, Stop{Order: next, Distance: minDist})
		route.TotalDistance += minDist
		current = next.Location()
	}

	return route, nil
}
