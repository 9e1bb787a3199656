package kernel

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

// ErrPrincipalIsNotConstructed is returned by Validate for a zero-value Principal.
var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal")

// Role is the coarse permission class of an authenticated caller.
type Role int

const (
	// UnknownRole is the zero value and never authorizes anything.
	UnknownRole Role = iota
	// RoleClient places orders and completes them on pickup.
	RoleClient
	// RoleRestaurant prepares orders placed against it and manages their status.
	RoleRestaurant
	// RoleAdmin may remove finished orders of any restaurant.
	RoleAdmin
)

func getRoleCodes() map[Role]string {
	return map[Role]string{
		UnknownRole:    "unknown",
		RoleClient:     "client",
		RoleRestaurant: "restaurant",
		RoleAdmin:      "admin",
	}
}

// ParseRole maps the wire code ("client", "restaurant", "admin") to a Role.
func ParseRole(code string) (Role, error) {
	for role, c := range getRoleCodes() {
		if role != UnknownRole && c == code {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", code))
}

// String returns the wire code of the role.
func (r Role) String() string {
	if code, ok := getRoleCodes()[r]; ok {
		return code
	}
	return "unknown"
}

func (r Role) Validate() error {
	if r != RoleClient && r != RoleRestaurant && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Principal is the authenticated caller of a request, resolved by the upstream
// auth gateway and passed explicitly into every application command.
// It is immutable for the lifetime of the request.
type Principal struct {
	id            UUID
	role          Role
	isConstructed bool
}

// NewPrincipal validates both the identifier and the role.
func NewPrincipal(id UUID, role Role) (Principal, error) {
	p := Principal{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setRole(role),
	); err != nil {
		return Principal{}, err
	}

	return p, nil
}

func (p Principal) ID() UUID {
	return p.id
}

func (p Principal) Role() Role {
	return p.role
}

// Is reports whether the principal acts with the given role.
func (p Principal) Is(role Role) bool {
	return p.role == role
}

func (p Principal) Validate() error {
	if !p.isConstructed {
		return ErrPrincipalIsNotConstructed
	}
	return nil
}

func (p *Principal) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Principal) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}
