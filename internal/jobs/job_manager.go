// Package jobs provides the scheduled background tasks of the order
// lifecycle service, built on github.com/robfig/cron/v3. The only job today
// is the delivery confirmation cleanup; JobManager keeps the start/stop
// surface stable as jobs are added.
package jobs

import (
	"fmt"
	"log/slog"

	"tailoring/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	confirmationCleanupJob *ConfirmationCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	confirmationRepo ports.ConfirmationRepository,
	cleanupSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		confirmationCleanupJob: NewConfirmationCleanupJob(confirmationRepo, cleanupSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.confirmationCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start confirmation cleanup job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.confirmationCleanupJob.Stop()
}
