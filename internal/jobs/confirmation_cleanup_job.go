package jobs

import (
	"context"
	"log/slog"
	"time"

	"tailoring/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ConfirmationCleanupJob periodically removes consumed and expired delivery
// confirmations. Purging is housekeeping only: expiry is always enforced at
// verification time, so a late purge never extends a code's life.
type ConfirmationCleanupJob struct {
	repo   ports.ConfirmationRepository
	cron   *cron.Cron
	spec   string
	logger *slog.Logger
}

// NewConfirmationCleanupJob creates a cleanup job running on the given cron
// spec (six fields, seconds first).
func NewConfirmationCleanupJob(repo ports.ConfirmationRepository, spec string, logger *slog.Logger) *ConfirmationCleanupJob {
	return &ConfirmationCleanupJob{
		repo:   repo,
		cron:   cron.New(cron.WithSeconds()),
		spec:   spec,
		logger: logger.With("component", "confirmation_cleanup_job"),
	}
}

// Start schedules the cleanup job.
func (j *ConfirmationCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		purged, err := j.repo.PurgeStale(ctx, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Confirmation cleanup job failed", "error", err)
			return
		}
		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged stale delivery confirmations", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Confirmation cleanup job started", "schedule", j.spec)
	return nil
}

// Stop stops the cleanup job.
func (j *ConfirmationCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Confirmation cleanup job stopped")
}
