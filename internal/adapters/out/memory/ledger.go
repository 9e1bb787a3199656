package memory

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/errs"
)

// placementGate decides how long a ledger call keeps other placements out. The
// returned leave func ends the call's hold.
type placementGate interface {
	enter(ctx context.Context) (leave func(), err error)
}

// storeGate holds the store's placement slot for a single call.
type storeGate struct {
	store *Store
}

func (g storeGate) enter(ctx context.Context) (func(), error) {
	if err := g.store.acquirePlacement(ctx); err != nil {
		return nil, err
	}
	return g.store.releasePlacement, nil
}

// Ledger implements ports.ProductLedger on top of Product.Reserve and Product.Release.
// A ledger obtained from a unit of work keeps the placement slot from its first call
// until Commit or Rollback, so stock held by an unfinished placement is never seen by
// other ledger calls.
type Ledger struct {
	store *Store
	gate  placementGate
}

func NewLedger(store *Store) *Ledger {
	return &Ledger{store: store, gate: storeGate{store: store}}
}

func (l *Ledger) Reserve(ctx context.Context, productID kernel.UUID, quantity int) (product.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return product.Reservation{}, errs.NewUnavailableError("reserve stock", err)
	}
	leave, err := l.gate.enter(ctx)
	if err != nil {
		return product.Reservation{}, err
	}
	defer leave()

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	p, ok := l.store.products[productID]
	if !ok {
		return product.Reservation{}, errs.NewObjectNotFoundError("product", productID.String())
	}
	return p.Reserve(quantity)
}

func (l *Ledger) Release(ctx context.Context, productID kernel.UUID, quantity int) error {
	leave, err := l.gate.enter(ctx)
	if err != nil {
		return err
	}
	defer leave()

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	p, ok := l.store.products[productID]
	if !ok {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return p.Release(quantity)
}

// Get returns a copy; changing it does not change stock.
func (l *Ledger) Get(ctx context.Context, productID kernel.UUID) (*product.Product, error) {
	leave, err := l.gate.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer leave()

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	p, ok := l.store.products[productID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", productID.String())
	}
	return cloneProduct(p)
}
