package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order with its courier name resolved.
type GetOrderQuery struct {
	orderID kernel.UUID

	isConstructed bool
}

// NewGetOrderQuery creates a validated single-order lookup.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:       orderID,
		isConstructed: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetOrderQueryIsNotConstructed
	}
	return nil
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
