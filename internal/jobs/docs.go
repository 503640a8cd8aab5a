// Package jobs provides the background work of the wizard service.
//
// # Available Jobs
//
// 1. WizardCleanupJob - cron job (github.com/robfig/cron/v3) purging wizard
// sessions left idle for longer than WIZARD_IDLE_TTL
// 2. RedirectScheduler - one goroutine per booked wizard counting the
// success screen down and closing the wizard when it reaches zero
//
// # Usage
//
//	cleanup := jobs.NewWizardCleanupJob(purgeHandler, jobs.DefaultCleanupSchedule, 24*time.Hour, logger)
//	redirects, err := jobs.NewRedirectScheduler(closeHandler, 5, time.Second, logger)
//	jobManager := jobs.NewJobManager(cleanup, redirects)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Countdown semantics
//
// Scheduling a wizard that already counts down is a no-op. Cancel stops a
// countdown without closing the wizard; this is what a manual close does.
// A countdown closes its wizard at most once.
package jobs
