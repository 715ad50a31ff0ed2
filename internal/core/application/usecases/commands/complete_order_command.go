package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand marks a delivery as finished.
type CompleteOrderCommand struct {
	orderID kernel.UUID

	isConstructed bool
}

// NewCompleteOrderCommand creates a validated completion request.
func NewCompleteOrderCommand(orderID kernel.UUID) (CompleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		orderID:       orderID,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrCompleteOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being completed.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
