package commands

import (
	"context"
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"
)

// applyInTx loads the wizard, runs change on it and saves it in one
// transaction. Nothing is written when change fails.
func applyInTx(
	ctx context.Context,
	uowFactory WizardUoWFactory,
	wizardID kernel.UUID,
	change func(w *wizard.Wizard) error,
) (*wizard.Wizard, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WizardRepository()
	w, err := repo.Get(ctx, wizardID)
	if err != nil {
		return nil, err
	}

	if err = change(w); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, w); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return w, nil
}

// applyEvent is applyInTx for a single event.
func applyEvent(ctx context.Context, uowFactory WizardUoWFactory, wizardID kernel.UUID, event wizard.Event) error {
	_, err := applyInTx(ctx, uowFactory, wizardID, func(w *wizard.Wizard) error {
		return w.Apply(event)
	})
	return err
}

// loadWizard reads the wizard in its own transaction.
func loadWizard(ctx context.Context, uowFactory WizardUoWFactory, wizardID kernel.UUID) (*wizard.Wizard, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.WizardRepository().Get(ctx, wizardID)
}

// userMessage extracts the text to show the user for a collaborator
// failure, falling back to the error text.
func userMessage(err error) string {
	var external *errs.ExternalServiceError
	if errors.As(err, &external) {
		return external.UserMessage()
	}
	return err.Error()
}
