package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state change. Events are
// collected by the unit of work on commit and stored in the outbox in the same
// transaction as the change that produced them.
//
// Implementations must be JSON-serializable; the encoded form is the message payload.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}
