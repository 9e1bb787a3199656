// Package outboxrepo stores domain events in the outbox_messages table, inside the
// transaction of the change that raised them.
package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxMessageDTO is one stored event. SentAt stays NULL until the relay delivered it.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index:idx_outbox_pending,where:sent_at IS NULL"`
	SentAt      *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements ports.OutboxRepository.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add serializes each event to JSON and inserts it. An event id that is already stored
// is skipped, which keeps Add idempotent for a retried commit.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", event.EventType(), err)
		}
		dtos = append(dtos, OutboxMessageDTO{
			ID:          event.EventID().Bytes(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID().Bytes(),
			Payload:     payload,
			OccurredAt:  event.OccurredAt(),
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
	return pgerr.Classify("insert outbox messages", "outbox", err)
}

// FetchPending returns up to limit unsent messages, oldest first. The rows are locked
// FOR UPDATE SKIP LOCKED, so two relays running at once pick disjoint batches.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify("fetch outbox messages", "outbox", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		aggregateID, idErr := kernel.UUIDFromBytes(dto.AggregateID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, ports.OutboxMessage{
			ID:          id,
			EventType:   dto.EventType,
			AggregateID: aggregateID,
			Payload:     dto.Payload,
			OccurredAt:  dto.OccurredAt.UTC(),
		})
	}

	return messages, nil
}

// MarkSent records delivery time.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Bytes()).
		Update("sent_at", sentAt)
	if result.Error != nil {
		return pgerr.Classify("mark outbox message sent", "outbox", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxMessage", id.String())
	}
	return nil
}
