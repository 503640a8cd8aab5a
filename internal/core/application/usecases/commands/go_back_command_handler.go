package commands

import (
	"context"

	"bikerental/internal/core/domain/model/wizard"
)

// GoBackCommandHandler applies a back-step. Leaving bike selection makes any
// bike fetch still in flight stale.
type GoBackCommandHandler struct {
	uowFactory WizardUoWFactory
}

func NewGoBackCommandHandler(uowFactory WizardUoWFactory) GoBackCommandHandler {
	return GoBackCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *GoBackCommandHandler) Handle(ctx context.Context, cmd GoBackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyEvent(ctx, h.uowFactory, cmd.WizardID(), wizard.SteppedBack{})
}
