package queries

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// ErrScopeIsInvalid is returned for a scope other than CustomerScope or RestaurantScope.
var ErrScopeIsInvalid = errs.NewValueIsInvalidError("scope")

// ActiveOrderLister is the read side of ports.OrderRepository the listings need.
type ActiveOrderLister interface {
	ListActiveByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
	ListActiveByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)
}

// GetActiveOrdersQueryHandler lists active orders outside of any unit of work; a
// listing may be slightly stale and never blocks writers.
type GetActiveOrdersQueryHandler struct {
	lister ActiveOrderLister
}

func NewGetActiveOrdersQueryHandler(lister ActiveOrderLister) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{lister: lister}
}

// Handle checks that the principal's role matches the scope (clients list their own
// orders, restaurants the orders placed with them) and returns an empty, non-nil
// slice when nothing is active.
func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	principal := query.Principal()
	if !principal.Is(query.Scope().roleFor()) {
		return nil, errs.NewForbiddenErrorWithCause(
			"list orders",
			fmt.Errorf("role %s cannot list %s orders", principal.Role(), query.Scope()),
		)
	}

	var (
		orders []*order.Order
		err    error
	)
	switch query.Scope() {
	case CustomerScope:
		orders, err = h.lister.ListActiveByCustomer(ctx, principal.ID())
	case RestaurantScope:
		orders, err = h.lister.ListActiveByRestaurant(ctx, principal.ID())
	case UnknownScope:
		return nil, ErrScopeIsInvalid
	}
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = make([]*order.Order, 0)
	}
	return orders, nil
}
