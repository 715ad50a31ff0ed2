package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrDeactivateCourierCommandIsNotConstructed = errors.New(
	"DeactivateCourierCommand must be created via NewDeactivateCourierCommand constructor",
)

// DeactivateCourierCommand takes a courier off active duty.
type DeactivateCourierCommand struct {
	courierID kernel.UUID

	isConstructed bool
}

// NewDeactivateCourierCommand creates a validated deactivation request.
func NewDeactivateCourierCommand(courierID kernel.UUID) (DeactivateCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return DeactivateCourierCommand{}, err
	}

	return DeactivateCourierCommand{
		courierID:     courierID,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateCourierCommand) Validate() error {
	if !c.isConstructed {
		return ErrDeactivateCourierCommandIsNotConstructed
	}
	return nil
}

// CourierID returns the courier being deactivated.
func (c DeactivateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
