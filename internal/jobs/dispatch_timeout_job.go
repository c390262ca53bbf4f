package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"smartdelivery/internal/core/application/usecases/commands"
)

// DispatchTimeoutJob periodically sweeps dispatching orders whose batch
// window has expired, escalating them to the next batch or cancelling them
// once the global dispatch timeout is exceeded.
type DispatchTimeoutJob struct {
	handler commands.ProcessDispatchTimeoutsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchTimeoutJob creates the sweep job. The sweep runs every ten
// seconds, well inside the thirty second batch window.
func NewDispatchTimeoutJob(handler commands.ProcessDispatchTimeoutsCommandHandler, logger *slog.Logger) *DispatchTimeoutJob {
	return &DispatchTimeoutJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_timeout_job"),
	}
}

// Start begins the periodic sweep.
func (j *DispatchTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewProcessDispatchTimeoutsCommand()

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "dispatch timeout sweep failed", "error", err)
			return
		}
		if result.Escalated > 0 || result.Cancelled > 0 || result.Exhausted > 0 {
			j.logger.InfoContext(ctx, "dispatch timeout sweep finished",
				"escalated", result.Escalated,
				"cancelled", result.Cancelled,
				"exhausted", result.Exhausted,
			)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dispatch timeout job started")
	return nil
}

// Stop stops the sweep.
func (j *DispatchTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dispatch timeout job stopped")
}
