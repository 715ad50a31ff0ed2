package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand is a courier's request to take exclusive ownership of
// a pool order.
type ClaimOrderCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	isConstructed bool
}

// NewClaimOrderCommand creates a validated claim request.
func NewClaimOrderCommand(orderID, courierID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID:       orderID,
		courierID:     courierID,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrClaimOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the claiming courier.
func (c ClaimOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}
