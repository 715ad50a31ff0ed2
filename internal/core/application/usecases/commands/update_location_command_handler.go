package commands

import (
	"context"
	"time"

	"dispatch/internal/core/application/locations"
)

// UpdateLocationCommandHandler ingests courier position reports: persist
// first, then mirror into the live cache so reads never see a position
// the store does not have.
type UpdateLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	cache      *locations.Cache
}

// NewUpdateLocationCommandHandler creates a handler for position
// ingestion.
func NewUpdateLocationCommandHandler(
	uowFactory CourierUoWFactory, cache *locations.Cache,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle records the position report.
func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.MoveTo(cmd.Location(), time.Now().UTC()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.cache.Put(aggregate)
	return nil
}
