package ports

import (
	"context"
	"time"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
)

// WizardRepository defines the persistence contract for wizard sessions.
type WizardRepository interface {
	// Add persists a new wizard.
	Add(ctx context.Context, w *wizard.Wizard) error

	// Update persists a wizard loaded at w.Version(). A row changed since
	// then fails with errs.ErrVersionIsInvalid. On success the wizard
	// carries the new version.
	Update(ctx context.Context, w *wizard.Wizard) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*wizard.Wizard, error)

	// Delete removes the wizard. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteIdleSince removes wizards untouched since before and reports how
	// many were removed.
	DeleteIdleSince(ctx context.Context, before time.Time) (int64, error)
}
