package jobs

import (
	"fmt"
)

// JobManager coordinates the background work of the service.
type JobManager struct {
	cleanupJob *WizardCleanupJob
	redirects  *RedirectScheduler
}

func NewJobManager(cleanupJob *WizardCleanupJob, redirects *RedirectScheduler) *JobManager {
	return &JobManager{
		cleanupJob: cleanupJob,
		redirects:  redirects,
	}
}

// StartAll starts the scheduled jobs. The redirect scheduler needs no start;
// countdowns begin as bookings succeed.
func (jm *JobManager) StartAll() error {
	if err := jm.cleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start wizard cleanup job: %w", err)
	}
	return nil
}

// StopAll stops the cleanup job and cancels pending countdowns.
func (jm *JobManager) StopAll() {
	jm.cleanupJob.Stop()
	jm.redirects.Stop()
}
