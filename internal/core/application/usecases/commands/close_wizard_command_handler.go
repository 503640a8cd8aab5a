package commands

import (
	"context"
)

// CloseWizardCommandHandler deletes the wizard session. Closing an unknown
// or already closed wizard succeeds, so the countdown and a manual close
// may race safely.
type CloseWizardCommandHandler struct {
	uowFactory WizardUoWFactory
}

func NewCloseWizardCommandHandler(uowFactory WizardUoWFactory) CloseWizardCommandHandler {
	return CloseWizardCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CloseWizardCommandHandler) Handle(ctx context.Context, cmd CloseWizardCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.WizardRepository().Delete(ctx, cmd.WizardID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
