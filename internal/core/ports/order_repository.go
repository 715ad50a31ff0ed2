package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Claim and completion are conditional updates so that two racing callers
// resolve in the database, not in application memory.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveByCourier retrieves the courier's claimed, not yet
	// finished orders.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)

	// ClaimIfUnassigned atomically assigns the order to the courier if
	// and only if no courier holds it yet. Reports whether this call won
	// the assignment; false means another courier got there first or the
	// order is already owned.
	ClaimIfUnassigned(ctx context.Context, orderID, courierID kernel.UUID, at time.Time) (bool, error)

	// CompleteIfActive atomically moves the order from active to
	// completed, stamping the delivery time. Reports whether this call
	// performed the transition; false means the order already left the
	// active status.
	CompleteIfActive(ctx context.Context, orderID kernel.UUID, at time.Time) (bool, error)

	// CancelIfActive atomically moves the order from active to
	// cancelled. Reports whether this call performed the transition;
	// false means the order already left the active status.
	CancelIfActive(ctx context.Context, orderID kernel.UUID) (bool, error)
}
