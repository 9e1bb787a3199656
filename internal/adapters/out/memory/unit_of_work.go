package memory

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

type eventSource interface {
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

// UnitOfWorkFactory creates memory units of work over one store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork mirrors the PostgreSQL unit of work: order writes are undone on
// rollback and events of saved aggregates reach the outbox on commit. Stock changes
// are not journaled; failed placements release stock through compensation while the
// unit of work still holds the placement slot, so no other caller sees the
// intermediate quantities.
type UnitOfWork struct {
	store  *Store
	active bool

	holdsPlacement bool

	undo    []func()
	tracked map[kernel.UUID]eventSource
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.active = true
	uow.undo = nil
	uow.tracked = make(map[kernel.UUID]eventSource)
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	outbox := NewOutbox(uow.store)
	for _, source := range uow.tracked {
		if err := outbox.Add(ctx, source.DomainEvents()...); err != nil {
			return err
		}
		source.ClearDomainEvents()
	}

	uow.end()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.store.mu.Lock()
	for i := len(uow.undo) - 1; i >= 0; i-- {
		uow.undo[i]()
	}
	uow.store.mu.Unlock()

	uow.end()
	return nil
}

func (uow *UnitOfWork) end() {
	uow.active = false
	uow.undo = nil
	uow.tracked = nil
	if uow.holdsPlacement {
		uow.holdsPlacement = false
		uow.store.releasePlacement()
	}
}

// enter takes the placement slot on the first ledger call of an active unit of work
// and keeps it until the unit of work ends.
func (uow *UnitOfWork) enter(ctx context.Context) (func(), error) {
	if !uow.active {
		return storeGate{store: uow.store}.enter(ctx)
	}
	if !uow.holdsPlacement {
		if err := uow.store.acquirePlacement(ctx); err != nil {
			return nil, err
		}
		uow.holdsPlacement = true
	}
	return func() {}, nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, journal: uow}
}

func (uow *UnitOfWork) ProductLedger() ports.ProductLedger {
	return &Ledger{store: uow.store, gate: uow}
}

func (uow *UnitOfWork) PrincipalDirectory() ports.PrincipalDirectory {
	return NewDirectory(uow.store)
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return NewOutbox(uow.store)
}

// TrackAggregate records aggregates whose events must be stored on commit.
func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	if !uow.active {
		return
	}
	if source, ok := aggregate.(eventSource); ok {
		uow.tracked[id] = source
	}
}

// onRollback is called with the store mutex held.
func (uow *UnitOfWork) onRollback(undo func()) {
	if !uow.active {
		return
	}
	uow.undo = append(uow.undo, undo)
}
