package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories obtained from it
// after Begin share one transaction. Commit also stores the domain events of every
// aggregate the repositories saved.
type UnitOfWork interface {
	// Begin starts a new transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit stores tracked domain events in the outbox and commits.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProductLedger() ProductLedger
	PrincipalDirectory() PrincipalDirectory
	OutboxRepository() OutboxRepository
}
