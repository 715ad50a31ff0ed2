package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetCourierStatsQueryHandler computes delivery counters in a single
// aggregate query over the courier's completed orders.
type GetCourierStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierStatsQueryHandler creates a handler for courier stats
// queries.
func NewGetCourierStatsQueryHandler(db *gorm.DB) GetCourierStatsQueryHandler {
	return GetCourierStatsQueryHandler{db: db}
}

// Handle computes the counters. A courier with no completed orders gets
// zeroes, not an error.
func (h GetCourierStatsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierStatsQuery,
) (CourierStatsView, error) {
	if err := query.Validate(); err != nil {
		return CourierStatsView{}, err
	}

	var view CourierStatsView

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE delivery_time >= ?) AS completed_today,
			COUNT(*) FILTER (WHERE delivery_time >= ?) AS completed_this_week,
			COUNT(*) AS completed_total,
			AVG(EXTRACT(EPOCH FROM (delivery_time - claimed_at)) / 60.0)
				FILTER (WHERE claimed_at IS NOT NULL) AS avg_delivery_minutes
		FROM orders
		WHERE courier_id = ? AND status = ?`,
		query.DayStart(),
		query.WeekStart(),
		query.CourierID().String(),
		order.StatusCompleted.String(),
	).Row()

	err := row.Scan(
		&view.CompletedToday,
		&view.CompletedThisWeek,
		&view.CompletedTotal,
		&view.AvgDeliveryMinutes,
	)
	if err != nil {
		return CourierStatsView{}, err
	}

	return view, nil
}
