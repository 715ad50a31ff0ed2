package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTeamOverviewQueryHandler aggregates per-courier workload for the
// supervisor board. Two queries: one for the counters, one for the
// active orders that get grouped under their courier.
type GetTeamOverviewQueryHandler struct {
	db *gorm.DB
}

// NewGetTeamOverviewQueryHandler creates a handler for team overview
// queries.
func NewGetTeamOverviewQueryHandler(db *gorm.DB) GetTeamOverviewQueryHandler {
	return GetTeamOverviewQueryHandler{db: db}
}

// Handle builds the overview. Couriers without orders still appear with
// zero counters; deactivated couriers never appear.
func (h GetTeamOverviewQueryHandler) Handle(
	ctx context.Context,
	query GetTeamOverviewQuery,
) ([]TeamMemberView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	members, err := h.loadCounters(ctx, query)
	if err != nil {
		return nil, err
	}

	if err = h.attachActiveOrders(ctx, query.BusinessID(), members); err != nil {
		return nil, err
	}

	views := make([]TeamMemberView, 0, len(members))
	for _, member := range members {
		views = append(views, *member)
	}

	return views, nil
}

func (h GetTeamOverviewQueryHandler) loadCounters(
	ctx context.Context, query GetTeamOverviewQuery,
) ([]*TeamMemberView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.role,
			COUNT(o.id) FILTER (WHERE o.status = ?) AS active_count,
			COUNT(o.id) FILTER (WHERE o.status = ? AND o.delivery_time >= ?) AS completed_today
		FROM couriers c
		LEFT JOIN orders o ON o.courier_id = c.id
		WHERE c.business_id = ? AND c.is_active
		GROUP BY c.id, c.name, c.role
		ORDER BY c.name`,
		order.StatusActive.String(),
		order.StatusCompleted.String(),
		query.DayStart(),
		query.BusinessID().String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*TeamMemberView, 0)
	for rows.Next() {
		var member TeamMemberView
		var id uuid.UUID

		if err = rows.Scan(&id, &member.Name, &member.Role,
			&member.ActiveCount, &member.CompletedToday); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		member.CourierID = courierID
		member.ActiveOrders = make([]OrderView, 0)

		members = append(members, &member)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (h GetTeamOverviewQueryHandler) attachActiveOrders(
	ctx context.Context, businessID kernel.UUID, members []*TeamMemberView,
) error {
	byCourier := make(map[kernel.UUID]*TeamMemberView, len(members))
	for _, member := range members {
		byCourier[member.CourierID] = member
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.business_id = ? AND o.status = ? AND o.courier_id IS NOT NULL
		ORDER BY o.claimed_at`,
		businessID.String(),
		order.StatusActive.String(),
	).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return scanErr
		}

		if member, ok := byCourier[*view.CourierID]; ok {
			member.ActiveOrders = append(member.ActiveOrders, view)
		}
	}

	return rows.Err()
}
