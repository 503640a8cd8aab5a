package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrChooseDifferentLocationCommandIsNotConstructed = errors.New(
	"ChooseDifferentLocationCommand must be created via NewChooseDifferentLocationCommand constructor",
)

// ChooseDifferentLocationCommand leaves the no-bikes screen for location selection.
type ChooseDifferentLocationCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID

	guard guard.ConstructorGuard
}

func NewChooseDifferentLocationCommand(wizardID kernel.UUID) (ChooseDifferentLocationCommand, error) {
	if err := wizardID.Validate(); err != nil {
		return ChooseDifferentLocationCommand{}, err
	}

	return ChooseDifferentLocationCommand{
		wizardID: wizardID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChooseDifferentLocationCommand) Validate() error {
	return c.guard.Validate(ErrChooseDifferentLocationCommandIsNotConstructed)
}

func (c ChooseDifferentLocationCommand) WizardID() kernel.UUID {
	return c.wizardID
}
