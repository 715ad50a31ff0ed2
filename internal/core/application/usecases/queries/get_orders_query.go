package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersFilter narrows an order listing. Both fields are optional.
//
// VisibleToCourier applies the courier's view of the board: their own
// orders plus the unclaimed pool. Supervisors omit it and see every
// order of the business.
type GetOrdersFilter struct {
	Status           *order.Status
	VisibleToCourier *kernel.UUID
}

// GetOrdersQuery lists a business's orders, newest first.
type GetOrdersQuery struct {
	businessID kernel.UUID
	filter     GetOrdersFilter

	isConstructed bool
}

// NewGetOrdersQuery creates a validated order listing query.
func NewGetOrdersQuery(businessID kernel.UUID, filter GetOrdersFilter) (GetOrdersQuery, error) {
	if err := businessID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	if filter.VisibleToCourier != nil {
		if err := filter.VisibleToCourier.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		businessID:    businessID,
		filter:        filter,
		isConstructed: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetOrdersQueryIsNotConstructed
	}
	return nil
}

// BusinessID returns the business whose orders are listed.
func (q GetOrdersQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// Filter returns the optional narrowing criteria.
func (q GetOrdersQuery) Filter() GetOrdersFilter {
	return q.filter
}
