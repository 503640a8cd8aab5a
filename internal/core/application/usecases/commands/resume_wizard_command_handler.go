package commands

import (
	"context"
	"errors"
	"log/slog"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/ports"
	"bikerental/internal/pkg/errs"
)

// ResumeWizardCommandHandler makes a parked snapshot the current state of its
// wizard session. The session row is recreated when it was purged while the
// user was away. The resume token is claimed only after the session is
// saved, so a failed write leaves it usable for a retry.
type ResumeWizardCommandHandler struct {
	uowFactory WizardUoWFactory
	parked     ports.ParkedWizardStore
	logger     *slog.Logger
}

func NewResumeWizardCommandHandler(
	uowFactory WizardUoWFactory,
	parked ports.ParkedWizardStore,
	logger *slog.Logger,
) ResumeWizardCommandHandler {
	return ResumeWizardCommandHandler{
		uowFactory: uowFactory,
		parked:     parked,
		logger:     logger.With("component", "ResumeWizardCommandHandler"),
	}
}

// Handle returns the id of the resumed wizard.
func (h *ResumeWizardCommandHandler) Handle(ctx context.Context, cmd ResumeWizardCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	snapshot, err := h.parked.Peek(ctx, cmd.ResumeToken())
	if err != nil {
		return kernel.UUID{}, err
	}

	restored, err := wizard.RestoreWizard(snapshot)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WizardRepository()
	current, err := repo.Get(ctx, restored.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		err = repo.Add(ctx, restored)
	case err != nil:
		return kernel.UUID{}, err
	default:
		restored.SetVersion(current.Version())
		err = repo.Update(ctx, restored)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	// Losing the claim to a concurrent resume of the same token is fine, both
	// wrote the same snapshot. Any other failure leaves the token to its TTL.
	if _, err = h.parked.Claim(ctx, cmd.ResumeToken()); err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "resume token was not released",
			"wizard_id", restored.ID().String(),
			"error", err,
		)
	}

	h.logger.InfoContext(ctx, "wizard resumed", "wizard_id", restored.ID().String())

	return restored.ID(), nil
}
