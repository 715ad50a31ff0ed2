package commands

import (
	"context"
)

// AttachPhotoCommandHandler stores delivery proof photos.
type AttachPhotoCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAttachPhotoCommandHandler creates a handler for photo attachment.
func NewAttachPhotoCommandHandler(uowFactory OrderUoWFactory) AttachPhotoCommandHandler {
	return AttachPhotoCommandHandler{uowFactory: uowFactory}
}

// Handle attaches the photo to the order.
func (h *AttachPhotoCommandHandler) Handle(ctx context.Context, cmd AttachPhotoCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AttachPhoto(cmd.Photo()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
