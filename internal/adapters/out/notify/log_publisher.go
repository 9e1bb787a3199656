package notify

import (
	"context"
	"log/slog"

	"ordering/internal/core/ports"
)

var _ ports.NotificationPublisher = LogPublisher{}

// LogPublisher writes notifications to the log. It is used when no Kafka broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) LogPublisher {
	return LogPublisher{logger: logger.With("component", "notification_publisher")}
}

func (p LogPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	p.logger.InfoContext(ctx, "notification",
		"eventId", message.ID.String(),
		"eventType", message.EventType,
		"orderId", message.AggregateID.String(),
		"payload", string(message.Payload),
	)
	return nil
}
