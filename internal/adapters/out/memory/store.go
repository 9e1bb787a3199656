// Package memory is an in-process storage driver implementing the same ports as the
// PostgreSQL adapters. Every operation takes the store mutex, so each single
// operation is atomic; a unit of work undoes its order writes on rollback. Stock is
// held by at most one unit of work at a time, from its first ledger call until it
// ends. Readers may observe order writes of units of work that have not committed yet.
package memory

import (
	"context"
	"sync"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

type outboxEntry struct {
	message ports.OutboxMessage
	sent    bool
}

// Store holds all state of the memory driver.
type Store struct {
	mu sync.Mutex

	// placement is a one-slot semaphore serializing stock access between units of work.
	placement chan struct{}

	products   map[kernel.UUID]*product.Product
	orders     map[kernel.UUID]*order.Order
	numbers    map[order.Number]kernel.UUID
	principals map[kernel.UUID]kernel.Role
	outbox     []*outboxEntry
}

func NewStore() *Store {
	return &Store{
		placement:  make(chan struct{}, 1),
		products:   make(map[kernel.UUID]*product.Product),
		orders:     make(map[kernel.UUID]*order.Order),
		numbers:    make(map[order.Number]kernel.UUID),
		principals: make(map[kernel.UUID]kernel.Role),
	}
}

// SeedProduct stores a copy of p, replacing any product with the same id.
func (s *Store) SeedProduct(p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	clone, err := cloneProduct(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[clone.ID()] = clone
	return nil
}

// SeedPrincipal registers an account with its role.
func (s *Store) SeedPrincipal(id kernel.UUID, role kernel.Role) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[id] = role
	return nil
}

func (s *Store) acquirePlacement(ctx context.Context) error {
	select {
	case s.placement <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errs.NewUnavailableError("reserve stock", ctx.Err())
	}
}

func (s *Store) releasePlacement() {
	<-s.placement
}

func cloneProduct(p *product.Product) (*product.Product, error) {
	return product.NewProduct(p.ID(), p.RestaurantID(), p.Name(), p.Price(), p.Quantity())
}

// cloneOrder copies the persistent state of o with the given version. Pending domain
// events are not copied: they belong to the caller's instance.
func cloneOrder(o *order.Order, version int) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.Number(),
		o.CustomerID(),
		o.RestaurantID(),
		o.Items(),
		o.Total(),
		o.PaymentMethod(),
		o.Status(),
		o.PaymentStatus(),
		o.CreatedAt(),
		o.UpdatedAt(),
		version,
	)
}
