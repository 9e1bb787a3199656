// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. NotificationRelayJob - delivers pending outbox messages (the "ready for pickup"
// notification) to the configured publisher, Kafka or the log
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(relayHandler, jobs.RelayConfig{Schedule: "*/5 * * * * *", BatchSize: 100}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds ("*/5 * * * * *" runs every five
// seconds). Descriptors such as "@every 10s" are accepted too.
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Messages are marked sent only
// after a successful publish, so delivery is at least once.
package jobs
