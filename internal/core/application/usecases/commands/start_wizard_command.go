package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrStartWizardCommandIsNotConstructed = errors.New(
	"StartWizardCommand must be created via NewStartWizardCommand constructor",
)

// StartWizardCommand opens a new wizard session on location selection.
type StartWizardCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartWizardCommand(wizardID kernel.UUID) (StartWizardCommand, error) {
	if err := wizardID.Validate(); err != nil {
		return StartWizardCommand{}, err
	}

	return StartWizardCommand{
		wizardID: wizardID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c StartWizardCommand) Validate() error {
	return c.guard.Validate(ErrStartWizardCommandIsNotConstructed)
}

func (c StartWizardCommand) WizardID() kernel.UUID {
	return c.wizardID
}
