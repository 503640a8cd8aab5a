package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrDismissErrorCommandIsNotConstructed = errors.New(
	"DismissErrorCommand must be created via NewDismissErrorCommand constructor",
)

// DismissErrorCommand clears the message shown on the current step.
type DismissErrorCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDismissErrorCommand(wizardID kernel.UUID) (DismissErrorCommand, error) {
	if err := wizardID.Validate(); err != nil {
		return DismissErrorCommand{}, err
	}

	return DismissErrorCommand{
		wizardID: wizardID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DismissErrorCommand) Validate() error {
	return c.guard.Validate(ErrDismissErrorCommandIsNotConstructed)
}

func (c DismissErrorCommand) WizardID() kernel.UUID {
	return c.wizardID
}
