package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bikerental/internal/core/application/usecases/commands"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"
)

var ErrSchedulerIsStopped = errors.New("redirect scheduler is stopped")

const closeTimeout = 5 * time.Second

type closeWizardHandler interface {
	Handle(ctx context.Context, cmd commands.CloseWizardCommand) error
}

type countdownRun struct {
	countdown wizard.Countdown
	cancel    context.CancelFunc
}

// RedirectScheduler runs the success-screen countdown of every booked
// wizard. Each countdown ticks on its own goroutine and closes the wizard
// once it reaches zero.
type RedirectScheduler struct {
	handler  closeWizardHandler
	seconds  int
	interval time.Duration
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running map[kernel.UUID]*countdownRun
	stopped bool
}

// NewRedirectScheduler counts down from seconds, one step per interval.
// Production uses one second per step.
func NewRedirectScheduler(
	handler closeWizardHandler,
	seconds int,
	interval time.Duration,
	logger *slog.Logger,
) (*RedirectScheduler, error) {
	if _, err := wizard.NewCountdown(seconds); err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("interval", fmt.Errorf("%s is not positive", interval))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &RedirectScheduler{
		handler:  handler,
		seconds:  seconds,
		interval: interval,
		logger:   logger.With("component", "redirect_scheduler"),
		ctx:      ctx,
		cancel:   cancel,
		running:  make(map[kernel.UUID]*countdownRun),
	}, nil
}

func (s *RedirectScheduler) Schedule(ctx context.Context, wizardID kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerIsStopped
	}
	if _, ok := s.running[wizardID]; ok {
		return nil
	}

	countdown, err := wizard.NewCountdown(s.seconds)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(s.ctx)
	run := &countdownRun{countdown: countdown, cancel: cancel}
	s.running[wizardID] = run

	s.wg.Add(1)
	go s.loop(runCtx, wizardID, run)

	s.logger.InfoContext(ctx, "Redirect countdown started",
		"wizard_id", wizardID.String(), "seconds", s.seconds)
	return nil
}

func (s *RedirectScheduler) Cancel(wizardID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run, ok := s.running[wizardID]; ok {
		run.cancel()
		delete(s.running, wizardID)
	}
}

func (s *RedirectScheduler) Remaining(wizardID kernel.UUID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.running[wizardID]
	if !ok {
		return 0, false
	}
	return run.countdown.Remaining(), true
}

// Stop cancels every countdown without firing and waits for the goroutines.
func (s *RedirectScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.cancel()
	clear(s.running)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *RedirectScheduler) loop(ctx context.Context, wizardID kernel.UUID, run *countdownRun) {
	defer s.wg.Done()
	defer run.cancel()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.tick(wizardID, run) {
				s.fire(wizardID)
				return
			}
		}
	}
}

// tick advances run and reports whether it fired. A run replaced or
// cancelled in the meantime never fires.
func (s *RedirectScheduler) tick(wizardID kernel.UUID, run *countdownRun) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[wizardID] != run {
		return false
	}
	if !run.countdown.Tick() {
		return false
	}
	delete(s.running, wizardID)
	return true
}

func (s *RedirectScheduler) fire(wizardID kernel.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	cmd, err := commands.NewCloseWizardCommand(wizardID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Cannot build close command", "wizard_id", wizardID.String(), "error", err)
		return
	}

	if err = s.handler.Handle(ctx, cmd); err != nil {
		s.logger.ErrorContext(ctx, "Closing wizard after countdown failed", "wizard_id", wizardID.String(), "error", err)
		return
	}

	s.logger.InfoContext(ctx, "Wizard closed after countdown", "wizard_id", wizardID.String())
}
