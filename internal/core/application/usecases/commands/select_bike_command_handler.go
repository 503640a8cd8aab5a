package commands

import (
	"context"

	"bikerental/internal/core/domain/model/wizard"
)

type SelectBikeCommandHandler struct {
	uowFactory WizardUoWFactory
}

func NewSelectBikeCommandHandler(uowFactory WizardUoWFactory) SelectBikeCommandHandler {
	return SelectBikeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with errs.ErrObjectNotFound when the bike is not in the
// loaded list.
func (h *SelectBikeCommandHandler) Handle(ctx context.Context, cmd SelectBikeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyEvent(ctx, h.uowFactory, cmd.WizardID(), wizard.BikeSelected{BikeID: cmd.BikeID()})
}
