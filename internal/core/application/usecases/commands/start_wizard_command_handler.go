package commands

import (
	"context"

	"bikerental/internal/core/domain/model/wizard"
)

// StartWizardCommandHandler persists a fresh wizard.
//
// Example:
//
//	handler := NewStartWizardCommandHandler(uowFactory)
//	wizardID := kernel.NewUUID()
//	cmd, _ := NewStartWizardCommand(wizardID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("wizard start failed: %w", err)
//	}
//	// the wizard now waits for pickup and drop-off locations
type StartWizardCommandHandler struct {
	uowFactory WizardUoWFactory
}

func NewStartWizardCommandHandler(uowFactory WizardUoWFactory) StartWizardCommandHandler {
	return StartWizardCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *StartWizardCommandHandler) Handle(ctx context.Context, cmd StartWizardCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w, err := wizard.NewWizard(cmd.WizardID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WizardRepository().Add(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
