// Package jobs holds the scheduled background work of the service. Jobs wrap
// command handlers under a cron schedule; they carry no business logic of
// their own.
package jobs

import (
	"fmt"
	"log/slog"

	"smartdelivery/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	dispatchTimeoutJob *DispatchTimeoutJob
}

// NewJobManager creates a manager with all background jobs wired.
func NewJobManager(
	timeoutHandler commands.ProcessDispatchTimeoutsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchTimeoutJob: NewDispatchTimeoutJob(timeoutHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch timeout job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchTimeoutJob.Stop()
}
