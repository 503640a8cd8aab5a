package commands

import (
	"context"

	"bikerental/internal/core/domain/model/wizard"
)

type DismissErrorCommandHandler struct {
	uowFactory WizardUoWFactory
}

func NewDismissErrorCommandHandler(uowFactory WizardUoWFactory) DismissErrorCommandHandler {
	return DismissErrorCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *DismissErrorCommandHandler) Handle(ctx context.Context, cmd DismissErrorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyEvent(ctx, h.uowFactory, cmd.WizardID(), wizard.ErrorDismissed{})
}
