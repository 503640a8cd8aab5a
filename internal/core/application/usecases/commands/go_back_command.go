package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrGoBackCommandIsNotConstructed = errors.New(
	"GoBackCommand must be created via NewGoBackCommand constructor",
)

// GoBackCommand moves the wizard one step back without clearing input.
type GoBackCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGoBackCommand(wizardID kernel.UUID) (GoBackCommand, error) {
	if err := wizardID.Validate(); err != nil {
		return GoBackCommand{}, err
	}

	return GoBackCommand{
		wizardID: wizardID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c GoBackCommand) Validate() error {
	return c.guard.Validate(ErrGoBackCommandIsNotConstructed)
}

func (c GoBackCommand) WizardID() kernel.UUID {
	return c.wizardID
}
