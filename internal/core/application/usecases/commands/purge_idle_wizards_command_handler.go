package commands

import (
	"context"
	"time"
)

type PurgeIdleWizardsCommandHandler struct {
	uowFactory WizardUoWFactory
	now        func() time.Time
}

func NewPurgeIdleWizardsCommandHandler(uowFactory WizardUoWFactory) PurgeIdleWizardsCommandHandler {
	return PurgeIdleWizardsCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle returns the number of purged wizards.
func (h *PurgeIdleWizardsCommandHandler) Handle(ctx context.Context, cmd PurgeIdleWizardsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.WizardRepository().DeleteIdleSince(ctx, h.now().Add(-cmd.IdleFor()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
