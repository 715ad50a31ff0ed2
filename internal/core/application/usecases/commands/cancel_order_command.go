package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand calls off an active order without delivery.
type CancelOrderCommand struct {
	orderID kernel.UUID

	isConstructed bool
}

// NewCancelOrderCommand creates a validated cancellation request.
func NewCancelOrderCommand(orderID kernel.UUID) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:       orderID,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrCancelOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
