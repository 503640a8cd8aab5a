package commands

import (
	"context"

	"bikerental/internal/core/domain/model/wizard"
)

type SetRentalPeriodCommandHandler struct {
	uowFactory WizardUoWFactory
}

func NewSetRentalPeriodCommandHandler(uowFactory WizardUoWFactory) SetRentalPeriodCommandHandler {
	return SetRentalPeriodCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetRentalPeriodCommandHandler) Handle(ctx context.Context, cmd SetRentalPeriodCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyEvent(ctx, h.uowFactory, cmd.WizardID(), wizard.RentalPeriodSet{Period: cmd.Period()})
}
