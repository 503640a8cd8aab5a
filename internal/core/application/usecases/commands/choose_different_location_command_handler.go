package commands

import (
	"context"

	"bikerental/internal/core/domain/model/wizard"
)

type ChooseDifferentLocationCommandHandler struct {
	uowFactory WizardUoWFactory
}

func NewChooseDifferentLocationCommandHandler(uowFactory WizardUoWFactory) ChooseDifferentLocationCommandHandler {
	return ChooseDifferentLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ChooseDifferentLocationCommandHandler) Handle(ctx context.Context, cmd ChooseDifferentLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyEvent(ctx, h.uowFactory, cmd.WizardID(), wizard.LocationReset{})
}
