package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrAttachPhotoCommandIsNotConstructed = errors.New(
	"AttachPhotoCommand must be created via NewAttachPhotoCommand constructor",
)

// AttachPhotoCommand stores a delivery proof photo on an order.
type AttachPhotoCommand struct {
	orderID kernel.UUID
	photo   string

	isConstructed bool
}

// NewAttachPhotoCommand creates a validated photo attachment request.
// The photo is a base64-encoded image; contents are opaque here.
func NewAttachPhotoCommand(orderID kernel.UUID, photo string) (AttachPhotoCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AttachPhotoCommand{}, err
	}
	if photo == "" {
		return AttachPhotoCommand{}, errs.NewValueIsRequiredError("photo")
	}

	return AttachPhotoCommand{
		orderID:       orderID,
		photo:         photo,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachPhotoCommand) Validate() error {
	if !c.isConstructed {
		return ErrAttachPhotoCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order the photo belongs to.
func (c AttachPhotoCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Photo returns the base64-encoded image.
func (c AttachPhotoCommand) Photo() string {
	return c.photo
}
