package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrGetTeamOverviewQueryIsNotConstructed = errors.New(
	"GetTeamOverviewQuery must be created via NewGetTeamOverviewQuery constructor",
)

// GetTeamOverviewQuery builds the supervisor's board: every active
// courier of the business with their current workload.
//
// DayStart is the boundary for the "completed today" counter, normally
// the business's local midnight. The caller owns the timezone decision.
type GetTeamOverviewQuery struct {
	businessID kernel.UUID
	dayStart   time.Time

	isConstructed bool
}

// NewGetTeamOverviewQuery creates a validated team overview query.
func NewGetTeamOverviewQuery(businessID kernel.UUID, dayStart time.Time) (GetTeamOverviewQuery, error) {
	if err := businessID.Validate(); err != nil {
		return GetTeamOverviewQuery{}, err
	}
	if dayStart.IsZero() {
		return GetTeamOverviewQuery{}, errs.NewValueIsRequiredError("dayStart")
	}

	return GetTeamOverviewQuery{
		businessID:    businessID,
		dayStart:      dayStart,
		isConstructed: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTeamOverviewQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetTeamOverviewQueryIsNotConstructed
	}
	return nil
}

// BusinessID returns the business whose team is summarized.
func (q GetTeamOverviewQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// DayStart returns the "completed today" boundary.
func (q GetTeamOverviewQuery) DayStart() time.Time {
	return q.dayStart
}

// TeamMemberView summarizes one courier's standing on the board.
type TeamMemberView struct {
	CourierID      kernel.UUID
	Name           string
	Role           string
	ActiveCount    int
	CompletedToday int
	ActiveOrders   []OrderView
}
