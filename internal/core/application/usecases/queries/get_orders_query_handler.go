package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders for the delivery board. The courier
// name comes from a join so the board never needs a second round trip.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing. Results are sorted by order time, newest
// first, so fresh orders top the board.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + orderViewColumns + `
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.business_id = ?`)
	args := []any{query.BusinessID().String()}

	filter := query.Filter()
	if filter.Status != nil {
		sb.WriteString(" AND o.status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.VisibleToCourier != nil {
		sb.WriteString(" AND (o.courier_id IS NULL OR o.courier_id = ?)")
		args = append(args, filter.VisibleToCourier.String())
	}
	sb.WriteString(" ORDER BY o.order_time DESC")

	rows, err := h.db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
