package ports

import (
	"context"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/kernel"
)

// BusinessRepository defines the persistence contract for business
// aggregates. Webhooks address a business by its short code, everything
// else by id.
type BusinessRepository interface {
	// Add persists a new business aggregate to storage.
	Add(ctx context.Context, aggregate *business.Business) error

	// Update persists changes to an existing business aggregate.
	Update(ctx context.Context, aggregate *business.Business) error

	// Get retrieves a business aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*business.Business, error)

	// GetByCode retrieves a business aggregate by its short code.
	GetByCode(ctx context.Context, code string) (*business.Business, error)
}
