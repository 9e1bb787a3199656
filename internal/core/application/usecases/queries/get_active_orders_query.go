// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// Scope selects whose orders are listed.
type Scope int

const (
	UnknownScope Scope = iota
	// CustomerScope lists the orders the principal placed as a client.
	CustomerScope
	// RestaurantScope lists the orders placed against the principal's restaurant.
	RestaurantScope
)

// roleFor is the only role allowed to list a scope.
func (s Scope) roleFor() kernel.Role {
	switch s {
	case CustomerScope:
		return kernel.RoleClient
	case RestaurantScope:
		return kernel.RoleRestaurant
	case UnknownScope:
		return kernel.UnknownRole
	default:
		return kernel.UnknownRole
	}
}

func (s Scope) String() string {
	switch s {
	case CustomerScope:
		return "customer"
	case RestaurantScope:
		return "restaurant"
	case UnknownScope:
		return "unknown"
	default:
		return "unknown"
	}
}

// GetActiveOrdersQuery lists the principal's non-terminal orders, newest first.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(principal, RestaurantScope)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	principal kernel.Principal
	scope     Scope

	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery(principal kernel.Principal, scope Scope) (GetActiveOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}
	if scope != CustomerScope && scope != RestaurantScope {
		return GetActiveOrdersQuery{}, ErrScopeIsInvalid
	}

	return GetActiveOrdersQuery{
		principal: principal,
		scope:     scope,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) Principal() kernel.Principal {
	return q.principal
}

func (q GetActiveOrdersQuery) Scope() Scope {
	return q.scope
}
