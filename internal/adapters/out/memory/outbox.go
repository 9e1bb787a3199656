package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// Outbox implements ports.OutboxRepository. It assumes a single relay; there is no
// equivalent of SKIP LOCKED.
type Outbox struct {
	store *Store
}

func NewOutbox(store *Store) *Outbox {
	return &Outbox{store: store}
}

func (o *Outbox) Add(_ context.Context, events ...kernel.DomainEvent) error {
	entries := make([]*outboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", event.EventType(), err)
		}
		entries = append(entries, &outboxEntry{message: ports.OutboxMessage{
			ID:          event.EventID(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     payload,
			OccurredAt:  event.OccurredAt(),
		}})
	}

	o.store.mu.Lock()
	defer o.store.mu.Unlock()
	o.store.outbox = append(o.store.outbox, entries...)
	return nil
}

func (o *Outbox) FetchPending(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	o.store.mu.Lock()
	defer o.store.mu.Unlock()

	messages := make([]ports.OutboxMessage, 0, limit)
	for _, entry := range o.store.outbox {
		if entry.sent {
			continue
		}
		messages = append(messages, entry.message)
		if len(messages) == limit {
			break
		}
	}
	return messages, nil
}

func (o *Outbox) MarkSent(_ context.Context, id kernel.UUID, _ time.Time) error {
	o.store.mu.Lock()
	defer o.store.mu.Unlock()

	for _, entry := range o.store.outbox {
		if entry.message.ID.IsEqual(id) {
			entry.sent = true
			return nil
		}
	}
	return errs.NewObjectNotFoundError("outboxMessage", id.String())
}
