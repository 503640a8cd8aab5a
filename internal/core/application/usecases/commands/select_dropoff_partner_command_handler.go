package commands

import (
	"context"
	"log/slog"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/ports"
)

// SelectDropoffPartnerCommandHandler resolves the partner record and moves
// the wizard to confirmation. When the directory fails the wizard stays on
// partner selection with the failure as its step-local message.
type SelectDropoffPartnerCommandHandler struct {
	uowFactory WizardUoWFactory
	partners   ports.PartnerDirectory
	logger     *slog.Logger
}

func NewSelectDropoffPartnerCommandHandler(
	uowFactory WizardUoWFactory,
	partners ports.PartnerDirectory,
	logger *slog.Logger,
) SelectDropoffPartnerCommandHandler {
	return SelectDropoffPartnerCommandHandler{
		uowFactory: uowFactory,
		partners:   partners,
		logger:     logger.With("component", "SelectDropoffPartnerCommandHandler"),
	}
}

func (h *SelectDropoffPartnerCommandHandler) Handle(ctx context.Context, cmd SelectDropoffPartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w, err := loadWizard(ctx, h.uowFactory, cmd.WizardID())
	if err != nil {
		return err
	}
	if err = w.RequireStep(wizard.SelectDropoffPartner, "select a drop-off partner"); err != nil {
		return err
	}

	var event wizard.Event
	p, err := h.partners.GetByID(ctx, cmd.PartnerID())
	if err != nil {
		h.logger.WarnContext(ctx, "partner resolution failed",
			"wizard_id", cmd.WizardID().String(),
			"partner_id", cmd.PartnerID(),
			"error", err,
		)
		event = wizard.DropoffFailed{Message: userMessage(err)}
	} else {
		event = wizard.DropoffResolved{Partner: p}
	}

	return applyEvent(ctx, h.uowFactory, cmd.WizardID(), event)
}
