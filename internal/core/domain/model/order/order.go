package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrClaimedByAnotherCourier is returned by Claim when the order is
	// already owned by a different courier. The application layer resolves
	// the owner's name and converts this into a ConflictError for the API.
	ErrClaimedByAnotherCourier = errors.New("order is already claimed by another courier")
)

// Customer groups the recipient details attached to an order.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Order is the aggregate root for a delivery. It owns the claim and
// lifecycle invariants:
//   - courierID == nil exactly while the order sits in the shared pool
//   - status only moves active -> completed or active -> cancelled
//   - claimedAt is set on first assignment and never refreshed
//
// Instances must be created via NewOrder (new orders entering the pool)
// or RestoreOrder (reconstruction from persistence).
type Order struct {
	id           kernel.UUID
	businessID   kernel.UUID
	platform     Platform
	orderNumber  string
	customer     Customer
	location     kernel.GeoPoint
	items        []string
	totalPrice   string
	orderTime    time.Time
	status       Status
	courierID    *kernel.UUID
	claimedAt    *time.Time
	deliveryTime *time.Time
	rating       *int
	ratingNote   *string
	photo        *string

	isConstructed bool
}

// NewOrder creates an active, unclaimed order that immediately becomes
// visible in the business's pool.
//
// The location may be the zero point when the source payload carried no
// usable coordinates; such orders are claimable and completable but are
// excluded from route optimization.
func NewOrder(
	id kernel.UUID,
	businessID kernel.UUID,
	platform Platform,
	orderNumber string,
	customer Customer,
	location kernel.GeoPoint,
	items []string,
	totalPrice string,
	orderTime time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusActive,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBusinessID(businessID),
		o.setPlatform(platform),
		o.setOrderNumber(orderNumber),
		o.setCustomer(customer),
		o.setLocation(location),
		o.setOrderTime(orderTime),
	); err != nil {
		return nil, err
	}

	o.items = items
	o.totalPrice = totalPrice

	return o, nil
}

// RestoreParams carries the full persisted state of an order for
// reconstruction. Optional fields are pointers, matching the store.
type RestoreParams struct {
	ID           kernel.UUID
	BusinessID   kernel.UUID
	Platform     Platform
	OrderNumber  string
	Customer     Customer
	Location     kernel.GeoPoint
	Items        []string
	TotalPrice   string
	OrderTime    time.Time
	Status       Status
	CourierID    *kernel.UUID
	ClaimedAt    *time.Time
	DeliveryTime *time.Time
	Rating       *int
	RatingNote   *string
	Photo        *string
}

// RestoreOrder reconstructs an order from persistence, re-validating the
// aggregate invariants that the store cannot express.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o, err := NewOrder(
		p.ID, p.BusinessID, p.Platform, p.OrderNumber,
		p.Customer, p.Location, p.Items, p.TotalPrice, p.OrderTime,
	)
	if err != nil {
		return nil, err
	}

	if err = p.Status.Validate(); err != nil {
		return nil, err
	}
	if p.CourierID != nil {
		if err = p.CourierID.Validate(); err != nil {
			return nil, err
		}
	}
	if p.Rating != nil {
		if err = validateRating(*p.Rating); err != nil {
			return nil, err
		}
	}

	o.status = p.Status
	o.courierID = p.CourierID
	o.claimedAt = p.ClaimedAt
	o.deliveryTime = p.DeliveryTime
	o.rating = p.Rating
	o.ratingNote = p.RatingNote
	o.photo = p.Photo

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BusinessID returns the owning business's identifier.
func (o *Order) BusinessID() kernel.UUID {
	return o.businessID
}

// Platform returns the order's origin platform.
func (o *Order) Platform() Platform {
	return o.platform
}

// OrderNumber returns the human-facing order number (e.g. "TY-4821").
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Customer returns the recipient details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Location returns the delivery coordinates; the zero point means unknown.
func (o *Order) Location() kernel.GeoPoint {
	return o.location
}

// Items returns the ordered item descriptions.
func (o *Order) Items() []string {
	return o.items
}

// TotalPrice returns the display price string (e.g. "150 TL").
func (o *Order) TotalPrice() string {
	return o.totalPrice
}

// OrderTime returns when the order was placed.
func (o *Order) OrderTime() time.Time {
	return o.orderTime
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the owning courier's ID, or nil while the order is in
// the pool.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// ClaimedAt returns when the order was first claimed, or nil.
func (o *Order) ClaimedAt() *time.Time {
	return o.claimedAt
}

// DeliveryTime returns when the order was completed, or nil.
func (o *Order) DeliveryTime() *time.Time {
	return o.deliveryTime
}

// Rating returns the customer rating (1-5), or nil if not rated.
func (o *Order) Rating() *int {
	return o.rating
}

// RatingNote returns the optional rating comment.
func (o *Order) RatingNote() *string {
	return o.ratingNote
}

// Photo returns the delivery proof photo (base64), or nil.
func (o *Order) Photo() *string {
	return o.photo
}

// IsInPool reports whether the order is active and unclaimed.
func (o *Order) IsInPool() bool {
	return o.status == StatusActive && o.courierID == nil
}

// Claim assigns exclusive ownership of the order to the courier.
//
// Re-claiming by the current owner succeeds as a no-op and does not
// refresh claimedAt. Claiming an order owned by a different courier
// returns ErrClaimedByAnotherCourier; claiming a non-active order is a
// validation error.
//
// Note: this guards the in-memory aggregate only. Concurrent callers are
// arbitrated by the repository's conditional update; see
// OrderRepository.ClaimIfUnassigned.
func (o *Order) Claim(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.status != StatusActive {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s order cannot be claimed", o.status))
	}

	if o.courierID != nil {
		if o.courierID.IsEqual(courierID) {
			return nil
		}
		return ErrClaimedByAnotherCourier
	}

	o.courierID = &courierID
	o.claimedAt = &at
	return nil
}

// Complete marks the order as delivered at the given time.
func (o *Order) Complete(at time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryTime = &at
	return nil
}

// Cancel terminates the order without delivery.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Rate attaches a customer rating (1-5) with an optional comment.
func (o *Order) Rate(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}

	o.rating = &rating
	if comment != "" {
		o.ratingNote = &comment
	} else {
		o.ratingNote = nil
	}
	return nil
}

// AttachPhoto stores the delivery proof photo.
func (o *Order) AttachPhoto(photo string) error {
	if photo == "" {
		return errs.NewValueIsRequiredError("photo")
	}

	o.photo = &photo
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessId", err)
	}
	o.businessID = id
	return nil
}

func (o *Order) setPlatform(platform Platform) error {
	if err := platform.Validate(); err != nil {
		return err
	}
	o.platform = platform
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer.Name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customer = customer
	return nil
}

func (o *Order) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setOrderTime(orderTime time.Time) error {
	if orderTime.IsZero() {
		return errs.NewValueIsRequiredError("orderTime")
	}
	o.orderTime = orderTime
	return nil
}
