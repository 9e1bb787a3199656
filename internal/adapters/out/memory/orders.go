package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// journal is the part of a unit of work the repository reports to.
type journal interface {
	TrackAggregate(id kernel.UUID, aggregate any)
	onRollback(undo func())
}

type noopJournal struct{}

func (noopJournal) TrackAggregate(kernel.UUID, any) {}
func (noopJournal) onRollback(func())               {}

// OrderRepository implements ports.OrderRepository. Stored orders are copies, so an
// aggregate changed by a caller is only visible to others after Update.
type OrderRepository struct {
	store   *Store
	journal journal
}

// NewOrderRepository returns a repository outside of any unit of work.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store, journal: noopJournal{}}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneOrder(aggregate, aggregate.Version())
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.numbers[stored.Number()]; taken {
		return ports.ErrOrderNumberTaken
	}
	if _, exists := r.store.orders[stored.ID()]; exists {
		return errs.NewConflictErrorWithCause("order", fmt.Errorf("order %s already exists", stored.ID()))
	}

	r.store.orders[stored.ID()] = stored
	r.store.numbers[stored.Number()] = stored.ID()
	r.journal.onRollback(func() {
		delete(r.store.orders, stored.ID())
		delete(r.store.numbers, stored.Number())
	})

	r.journal.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	previous, ok := r.store.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if previous.Version() != aggregate.Version() {
		return errs.NewConflictErrorWithCause(
			"version",
			fmt.Errorf("order %s was modified concurrently (expected version %d)", aggregate.ID(), aggregate.Version()),
		)
	}

	stored, err := cloneOrder(aggregate, previous.Version()+1)
	if err != nil {
		return err
	}
	r.store.orders[stored.ID()] = stored
	r.journal.onRollback(func() {
		// a later writer built on this version owns the order now
		if current, ok := r.store.orders[previous.ID()]; ok && current.Version() == stored.Version() {
			r.store.orders[previous.ID()] = previous
		}
	})

	r.journal.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(stored, stored.Version())
}

func (r *OrderRepository) ListActiveByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.listActive(func(o *order.Order) bool { return o.CustomerID().IsEqual(customerID) })
}

func (r *OrderRepository) ListActiveByRestaurant(_ context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	return r.listActive(func(o *order.Order) bool { return o.RestaurantID().IsEqual(restaurantID) })
}

func (r *OrderRepository) listActive(match func(*order.Order) bool) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	orders := make([]*order.Order, 0)
	for _, stored := range r.store.orders {
		if stored.Status().IsTerminal() || !match(stored) {
			continue
		}
		clone, err := cloneOrder(stored, stored.Version())
		if err != nil {
			return nil, err
		}
		orders = append(orders, clone)
	}

	slices.SortFunc(orders, func(a, b *order.Order) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return orders, nil
}

func (r *OrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if !stored.Status().IsTerminal() {
		return errs.NewInvalidStateErrorWithCause(
			"order",
			stored.Status().String(),
			errors.New("only completed or cancelled orders can be deleted"),
		)
	}

	delete(r.store.orders, id)
	delete(r.store.numbers, stored.Number())
	r.journal.onRollback(func() {
		r.store.orders[id] = stored
		r.store.numbers[stored.Number()] = id
	})
	return nil
}
