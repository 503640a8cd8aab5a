package ports

import (
	"context"

	"bikerental/internal/core/domain/model/kernel"
)

// RedirectScheduler runs the countdown shown after a successful booking.
type RedirectScheduler interface {
	// Schedule starts the countdown for the wizard. Scheduling an already
	// running countdown is a no-op.
	Schedule(ctx context.Context, wizardID kernel.UUID) error

	// Cancel stops the countdown without firing it.
	Cancel(wizardID kernel.UUID)

	// Remaining reports the seconds left, if a countdown is running.
	Remaining(wizardID kernel.UUID) (int, bool)
}
