package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/ports"
)

// RelayNotificationsCommandHandler moves stored domain events from the outbox to the
// notification publisher. Delivery is at least once: a message is marked sent only
// after Publish succeeded, and a crash between the two re-sends it on the next run.
type RelayNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.NotificationPublisher
	logger     *slog.Logger
}

func NewRelayNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "notification_relay"),
	}
}

// Handle publishes one batch and returns how many messages were delivered.
// A publish failure stops the batch; messages delivered before it are still marked
// sent and committed, the failed one stays pending for the next run.
func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, message := range pending {
		if err = h.publisher.Publish(ctx, message); err != nil {
			h.logger.WarnContext(ctx, "failed to publish notification, will retry",
				"messageId", message.ID.String(),
				"eventType", message.EventType,
				"error", err,
			)
			break
		}

		if err = outbox.MarkSent(ctx, message.ID, now()); err != nil {
			return 0, err
		}
		sent++
	}

	if sent == 0 {
		return 0, err
	}

	if commitErr := uow.Commit(ctx); commitErr != nil {
		return 0, commitErr
	}

	return sent, nil
}
