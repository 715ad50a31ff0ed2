package commands

import (
	"context"

	"dispatch/internal/core/application/locations"
)

// DeactivateCourierCommandHandler removes a courier from active duty:
// persist first, then drop the courier from the live location cache so
// supervisors stop seeing them on the map immediately. History (orders,
// stats) is kept.
type DeactivateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	cache      *locations.Cache
}

// NewDeactivateCourierCommandHandler creates a handler for courier
// deactivation.
func NewDeactivateCourierCommandHandler(
	uowFactory CourierUoWFactory, cache *locations.Cache,
) DeactivateCourierCommandHandler {
	return DeactivateCourierCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle deactivates the courier. Deactivating an already inactive
// courier succeeds without changes.
func (h *DeactivateCourierCommandHandler) Handle(ctx context.Context, cmd DeactivateCourierCommand) error {
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

	aggregate.Deactivate()

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.cache.Remove(cmd.CourierID())
	return nil
}
