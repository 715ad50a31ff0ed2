package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderParams carries the normalized order data from either a
// webhook payload or the manual entry form. OrderNumber may be empty;
// the handler generates one from the platform's numbering scheme.
type CreateOrderParams struct {
	BusinessID  kernel.UUID
	Platform    order.Platform
	OrderNumber string
	Customer    order.Customer
	Location    kernel.GeoPoint
	Items       []string
	TotalPrice  string
}

// CreateOrderCommand registers a new order in the business's pool.
type CreateOrderCommand struct {
	params CreateOrderParams

	isConstructed bool
}

// NewCreateOrderCommand creates a validated order registration request.
// Customer name is required; everything else degrades to an empty value
// or a generated substitute.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	if err := errors.Join(
		params.BusinessID.Validate(),
		params.Platform.Validate(),
		params.Location.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if params.Customer.Name == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customerName")
	}

	if params.TotalPrice == "" {
		params.TotalPrice = "0 TL"
	}

	return CreateOrderCommand{
		params:        params,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrCreateOrderCommandIsNotConstructed
	}
	return nil
}

// BusinessID returns the owning business.
func (c CreateOrderCommand) BusinessID() kernel.UUID {
	return c.params.BusinessID
}

// Platform returns the order's origin platform.
func (c CreateOrderCommand) Platform() order.Platform {
	return c.params.Platform
}

// OrderNumber returns the platform's order number, or "" when the
// handler should generate one.
func (c CreateOrderCommand) OrderNumber() string {
	return c.params.OrderNumber
}

// Customer returns the recipient details.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.params.Customer
}

// Location returns the delivery coordinates; zero means unknown.
func (c CreateOrderCommand) Location() kernel.GeoPoint {
	return c.params.Location
}

// Items returns the ordered item descriptions.
func (c CreateOrderCommand) Items() []string {
	return c.params.Items
}

// TotalPrice returns the display price string.
func (c CreateOrderCommand) TotalPrice() string {
	return c.params.TotalPrice
}
