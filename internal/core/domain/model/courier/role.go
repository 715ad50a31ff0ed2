package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role defines what a caller may see and do. Couriers work the pool;
// chiefs and managers additionally supervise the team and live locations.
// Admin appears only in auth claims (platform operators), never on a
// courier record.
type Role string

const (
	// RoleCourier is the default field role.
	RoleCourier Role = "courier"
	// RoleChief leads the courier team of a business.
	RoleChief Role = "chief"
	// RoleManager manages a business.
	RoleManager Role = "manager"
	// RoleAdmin is the platform operator role carried in auth claims.
	RoleAdmin Role = "admin"
)

// RoleFromString parses a persisted or claimed role.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleCourier, RoleChief, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks the role against the known set.
func (r Role) Validate() error {
	_, err := RoleFromString(string(r))
	return err
}

// CanSupervise reports whether the role may access team views and live
// courier locations.
func (r Role) CanSupervise() bool {
	return r == RoleChief || r == RoleManager || r == RoleAdmin
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
