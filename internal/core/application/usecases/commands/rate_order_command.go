package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand attaches a customer rating to an order.
type RateOrderCommand struct {
	orderID kernel.UUID
	rating  int
	comment string

	isConstructed bool
}

// NewRateOrderCommand creates a validated rating request; the rating
// must be 1 to 5, the comment is optional.
func NewRateOrderCommand(orderID kernel.UUID, rating int, comment string) (RateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RateOrderCommand{}, err
	}
	if rating < 1 || rating > 5 {
		return RateOrderCommand{}, errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	return RateOrderCommand{
		orderID:       orderID,
		rating:        rating,
		comment:       comment,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrRateOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being rated.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rating returns the star rating (1-5).
func (c RateOrderCommand) Rating() int {
	return c.rating
}

// Comment returns the optional free-text comment.
func (c RateOrderCommand) Comment() string {
	return c.comment
}
