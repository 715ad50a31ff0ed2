package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrCourierIsNotConstructed is returned when a Courier instance was not
// created through NewCourier or RestoreCourier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")

// Courier is the aggregate root for a delivery worker. The location pair
// plus lastLocationUpdate feed the live location cache; they are mutated
// exclusively through MoveTo by the courier's own location-ingest calls.
type Courier struct {
	id           kernel.UUID
	businessID   kernel.UUID
	username     string
	passwordHash string
	name         string
	phone        string
	role         Role
	isActive     bool
	location     kernel.GeoPoint
	lastUpdate   *time.Time

	isConstructed bool
}

// NewCourier creates an active courier for a business. The location starts
// at the zero point (unknown) until the first ingest.
func NewCourier(
	id kernel.UUID,
	businessID kernel.UUID,
	username string,
	passwordHash string,
	name string,
	phone string,
	role Role,
) (*Courier, error) {
	c := &Courier{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setBusinessID(businessID),
		c.setUsername(username),
		c.setName(name),
		c.setRole(role),
	); err != nil {
		return nil, err
	}

	c.passwordHash = passwordHash
	c.phone = phone

	return c, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(
	id kernel.UUID,
	businessID kernel.UUID,
	username string,
	passwordHash string,
	name string,
	phone string,
	role Role,
	isActive bool,
	location kernel.GeoPoint,
	lastUpdate *time.Time,
) (*Courier, error) {
	c, err := NewCourier(id, businessID, username, passwordHash, name, phone, role)
	if err != nil {
		return nil, err
	}

	if err = location.Validate(); err != nil {
		return nil, err
	}

	c.isActive = isActive
	c.location = location
	c.lastUpdate = lastUpdate

	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// BusinessID returns the employing business's identifier.
func (c *Courier) BusinessID() kernel.UUID {
	return c.businessID
}

// Username returns the login name.
func (c *Courier) Username() string {
	return c.username
}

// PasswordHash returns the stored credential hash. The dispatch service
// only persists it; verification happens in the auth layer.
func (c *Courier) PasswordHash() string {
	return c.passwordHash
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's phone number.
func (c *Courier) Phone() string {
	return c.phone
}

// Role returns the courier's role.
func (c *Courier) Role() Role {
	return c.role
}

// IsActive reports whether the courier may work the pool.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// Location returns the last reported position; the zero point means the
// courier has never reported one.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// LastLocationUpdate returns when the position was last reported, or nil.
func (c *Courier) LastLocationUpdate() *time.Time {
	return c.lastUpdate
}

// MoveTo records a position report at the given time. The zero point is
// rejected: it is indistinguishable from "never reported".
func (c *Courier) MoveTo(location kernel.GeoPoint, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if location.IsZero() {
		return errs.NewValueIsRequiredError("location")
	}

	c.location = location
	c.lastUpdate = &at
	return nil
}

// Deactivate removes the courier from active duty. Deactivated couriers
// disappear from pool, team and location views but keep their history.
func (c *Courier) Deactivate() {
	c.isActive = false
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessId", err)
	}
	c.businessID = id
	return nil
}

func (c *Courier) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	c.username = username
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if role == RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role",
			errors.New("admin is an auth-claim role, not a courier role"))
	}
	c.role = role
	return nil
}
