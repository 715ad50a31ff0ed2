// Package business contains the Business aggregate: the tenant whose
// couriers share one order pool. A business carries the API credentials
// used to confirm deliveries back to the external platforms.
package business

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrBusinessIsNotConstructed is returned when a Business instance was not
// created through NewBusiness or RestoreBusiness.
var ErrBusinessIsNotConstructed = errors.New("Business must be created via NewBusiness or RestoreBusiness constructor")

// APICredential holds a business's credentials for one external platform.
type APICredential struct {
	Key    string
	Secret string
	// SupplierID identifies the restaurant on the platform's side.
	SupplierID string
}

// Business is the tenant aggregate. Code is the short human-facing
// identifier webhooks address orders to (e.g. "DEMO123").
type Business struct {
	id          kernel.UUID
	code        string
	name        string
	isActive    bool
	credentials map[order.Platform]APICredential

	isConstructed bool
}

// NewBusiness creates an active business with no platform credentials.
func NewBusiness(id kernel.UUID, code, name string) (*Business, error) {
	b := &Business{
		isActive:      true,
		credentials:   make(map[order.Platform]APICredential),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setCode(code),
		b.setName(name),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBusiness reconstructs a business from persistence.
func RestoreBusiness(
	id kernel.UUID,
	code, name string,
	isActive bool,
	credentials map[order.Platform]APICredential,
) (*Business, error) {
	b, err := NewBusiness(id, code, name)
	if err != nil {
		return nil, err
	}

	b.isActive = isActive
	if credentials != nil {
		b.credentials = credentials
	}

	return b, nil
}

// Validate ensures the Business was created through a constructor.
func (b *Business) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBusinessIsNotConstructed
	}
	return nil
}

// ID returns the business's unique identifier.
func (b *Business) ID() kernel.UUID {
	return b.id
}

// Code returns the short identifier webhooks use to address the business.
func (b *Business) Code() string {
	return b.code
}

// Name returns the display name.
func (b *Business) Name() string {
	return b.name
}

// IsActive reports whether the business is accepting orders.
func (b *Business) IsActive() bool {
	return b.isActive
}

// Credential returns the API credential for a platform, if configured.
func (b *Business) Credential(platform order.Platform) (APICredential, bool) {
	cred, ok := b.credentials[platform]
	return cred, ok
}

// Credentials returns all configured platform credentials.
func (b *Business) Credentials() map[order.Platform]APICredential {
	return b.credentials
}

// SetCredential configures the API credential for a platform.
func (b *Business) SetCredential(platform order.Platform, cred APICredential) error {
	if err := platform.Validate(); err != nil {
		return err
	}
	b.credentials[platform] = cred
	return nil
}

func (b *Business) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Business) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	b.code = code
	return nil
}

func (b *Business) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	b.name = name
	return nil
}
