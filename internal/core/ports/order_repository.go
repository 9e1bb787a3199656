// Package ports defines the contracts between the ordering core and its adapters:
// persistence (orders, stock, principals, outbox), the unit of work that scopes them
// to one transaction, and the notification publisher.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// ErrOrderNumberTaken is returned by OrderRepository.Add when another order already
// uses the candidate number. The order factory regenerates the number and retries.
var ErrOrderNumberTaken = errs.NewConflictError("orderNumber")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Returns ErrOrderNumberTaken when the number is in use.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status, payment status and updatedAt, and increments the stored
	// version, but only if storage still holds aggregate.Version(). A lost race returns
	// a ConflictError; a missing order an ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListActiveByCustomer returns the customer's non-terminal orders, newest first.
	ListActiveByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// ListActiveByRestaurant returns the restaurant's non-terminal orders, newest first.
	ListActiveByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// Delete removes an order only if it is terminal in storage. Returns an
	// InvalidStateError if it is not, an ObjectNotFoundError if it does not exist.
	Delete(ctx context.Context, id kernel.UUID) error
}
