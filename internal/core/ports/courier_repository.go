// Package ports defines the contracts between the application core and
// infrastructure adapters: repositories, the unit of work, and outbound
// gateways. Implementations live under internal/adapters.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetActiveByBusiness retrieves the business's active couriers.
	GetActiveByBusiness(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error)

	// GetAllActive retrieves every active courier across businesses.
	// Used to hydrate the live location cache at startup.
	GetAllActive(ctx context.Context) ([]*courier.Courier, error)
}
