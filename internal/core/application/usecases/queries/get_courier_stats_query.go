package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrGetCourierStatsQueryIsNotConstructed = errors.New(
	"GetCourierStatsQuery must be created via NewGetCourierStatsQuery constructor",
)

// GetCourierStatsQuery computes one courier's delivery statistics.
// DayStart and WeekStart bound the "today" and "this week" counters; the
// caller supplies both so the timezone choice stays in one place.
type GetCourierStatsQuery struct {
	courierID kernel.UUID
	dayStart  time.Time
	weekStart time.Time

	isConstructed bool
}

// NewGetCourierStatsQuery creates a validated stats query.
func NewGetCourierStatsQuery(
	courierID kernel.UUID, dayStart, weekStart time.Time,
) (GetCourierStatsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierStatsQuery{}, err
	}
	if dayStart.IsZero() {
		return GetCourierStatsQuery{}, errs.NewValueIsRequiredError("dayStart")
	}
	if weekStart.IsZero() {
		return GetCourierStatsQuery{}, errs.NewValueIsRequiredError("weekStart")
	}

	return GetCourierStatsQuery{
		courierID:     courierID,
		dayStart:      dayStart,
		weekStart:     weekStart,
		isConstructed: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierStatsQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetCourierStatsQueryIsNotConstructed
	}
	return nil
}

// CourierID returns the courier whose stats are computed.
func (q GetCourierStatsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// DayStart returns the "completed today" boundary.
func (q GetCourierStatsQuery) DayStart() time.Time {
	return q.dayStart
}

// WeekStart returns the "completed this week" boundary.
func (q GetCourierStatsQuery) WeekStart() time.Time {
	return q.weekStart
}

// CourierStatsView carries one courier's delivery counters.
// AvgDeliveryMinutes is nil until the courier has at least one completed
// delivery with a recorded claim time.
type CourierStatsView struct {
	CompletedToday     int
	CompletedThisWeek  int
	CompletedTotal     int
	AvgDeliveryMinutes *float64
}
