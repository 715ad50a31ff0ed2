package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand is a courier's position report.
type UpdateLocationCommand struct {
	courierID kernel.UUID
	location  kernel.GeoPoint

	isConstructed bool
}

// NewUpdateLocationCommand creates a validated position report. The zero
// point is rejected; it would be indistinguishable from "never
// reported".
func NewUpdateLocationCommand(courierID kernel.UUID, location kernel.GeoPoint) (UpdateLocationCommand, error) {
	if err := errors.Join(courierID.Validate(), location.Validate()); err != nil {
		return UpdateLocationCommand{}, err
	}
	if location.IsZero() {
		return UpdateLocationCommand{}, errs.NewValueIsRequiredError("location")
	}

	return UpdateLocationCommand{
		courierID:     courierID,
		location:      location,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	if !c.isConstructed {
		return ErrUpdateLocationCommandIsNotConstructed
	}
	return nil
}

// CourierID returns the reporting courier.
func (c UpdateLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}
