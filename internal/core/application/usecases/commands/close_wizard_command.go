package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrCloseWizardCommandIsNotConstructed = errors.New(
	"CloseWizardCommand must be created via NewCloseWizardCommand constructor",
)

// CloseWizardCommand ends a wizard session, either when the user navigates away
// or when the post-booking countdown expires.
type CloseWizardCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCloseWizardCommand(wizardID kernel.UUID) (CloseWizardCommand, error) {
	if err := wizardID.Validate(); err != nil {
		return CloseWizardCommand{}, err
	}

	return CloseWizardCommand{
		wizardID: wizardID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CloseWizardCommand) Validate() error {
	return c.guard.Validate(ErrCloseWizardCommandIsNotConstructed)
}

func (c CloseWizardCommand) WizardID() kernel.UUID {
	return c.wizardID
}
