package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultRelaySchedule runs the relay every five seconds.
	DefaultRelaySchedule = "*/5 * * * * *"
	// DefaultRelayBatchSize bounds how many notifications one run delivers.
	DefaultRelayBatchSize = 100
)

// NotificationRelayJob periodically delivers pending outbox messages, such as "order
// ready for pickup", to the notification publisher.
type NotificationRelayJob struct {
	handler   commands.RelayNotificationsCommandHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationRelayJob creates the relay job. An empty schedule or a non-positive
// batch size falls back to the defaults.
func NewNotificationRelayJob(
	handler commands.RelayNotificationsCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *NotificationRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	if batchSize < 1 {
		batchSize = DefaultRelayBatchSize
	}

	return &NotificationRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "notification_relay_job"),
	}
}

// Start registers the relay with the scheduler and starts it.
func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce delivers one batch and returns how many notifications were sent.
func (j *NotificationRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job misconfigured", "error", err)
		return 0
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job failed", "error", err)
	}
	if sent > 0 {
		j.logger.InfoContext(ctx, "Notifications delivered", "count", sent)
	}
	return sent
}

// Stop stops the scheduler and waits for a running relay to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
