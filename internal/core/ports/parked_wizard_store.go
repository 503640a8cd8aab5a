package ports

import (
	"context"
	"time"

	"bikerental/internal/core/domain/model/wizard"
)

// ParkedWizardStore keeps wizard snapshots while the user is away logging in.
type ParkedWizardStore interface {
	// Park stores the snapshot for ttl and returns the resume token.
	Park(ctx context.Context, snapshot wizard.Snapshot, ttl time.Duration) (string, error)

	// Peek returns the snapshot and leaves it parked. Unknown or expired
	// tokens fail with errs.ErrObjectNotFound.
	Peek(ctx context.Context, token string) (wizard.Snapshot, error)

	// Claim returns and removes the snapshot. Unknown or expired tokens
	// fail with errs.ErrObjectNotFound. A token can be claimed once.
	Claim(ctx context.Context, token string) (wizard.Snapshot, error)
}
