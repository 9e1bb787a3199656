package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored for later delivery.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository stores domain events in the same transaction as the change that
// raised them, and hands them to the relay afterwards.
type OutboxRepository interface {
	// Add stores events. Called by units of work on commit.
	Add(ctx context.Context, events ...kernel.DomainEvent) error

	// FetchPending returns up to limit unsent messages, oldest first. Within a
	// transaction the rows stay locked so concurrent relays skip them.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent records successful delivery.
	MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error
}

// NotificationPublisher delivers outbox messages to the notification collaborator.
type NotificationPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
