package jobs

import (
	"context"
	"log/slog"
	"time"

	"bikerental/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultCleanupSchedule runs the purge every five minutes.
const DefaultCleanupSchedule = "0 */5 * * * *"

type purgeIdleWizardsHandler interface {
	Handle(ctx context.Context, cmd commands.PurgeIdleWizardsCommand) (int64, error)
}

// WizardCleanupJob deletes wizard sessions nobody touched for idleFor.
type WizardCleanupJob struct {
	handler  purgeIdleWizardsHandler
	schedule string
	idleFor  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewWizardCleanupJob(
	handler purgeIdleWizardsHandler,
	schedule string,
	idleFor time.Duration,
	logger *slog.Logger,
) *WizardCleanupJob {
	return &WizardCleanupJob{
		handler:  handler,
		schedule: schedule,
		idleFor:  idleFor,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "wizard_cleanup_job"),
	}
}

// Start registers the purge on the cron schedule.
func (j *WizardCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Wizard cleanup job started",
		"schedule", j.schedule, "idle_for", j.idleFor.String())
	return nil
}

// RunOnce purges idle wizards immediately.
func (j *WizardCleanupJob) RunOnce(ctx context.Context) (int64, error) {
	cmd, err := commands.NewPurgeIdleWizardsCommand(j.idleFor)
	if err != nil {
		j.logger.ErrorContext(ctx, "Wizard cleanup job misconfigured", "error", err)
		return 0, err
	}

	purged, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Wizard cleanup job failed", "error", err)
		return 0, err
	}

	if purged > 0 {
		j.logger.InfoContext(ctx, "Purged idle wizards", "count", purged)
	}
	return purged, nil
}

// Stop stops the schedule and waits for a running purge to finish.
func (j *WizardCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Wizard cleanup job stopped")
}
