package commands

import (
	"errors"
	"strings"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

var ErrSelectBikeCommandIsNotConstructed = errors.New(
	"SelectBikeCommand must be created via NewSelectBikeCommand constructor",
)

// SelectBikeCommand picks one of the loaded bikes.
type SelectBikeCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID
	bikeID   string

	guard guard.ConstructorGuard
}

func NewSelectBikeCommand(wizardID kernel.UUID, bikeID string) (SelectBikeCommand, error) {
	cmd := SelectBikeCommand{
		wizardID: wizardID,
		bikeID:   strings.TrimSpace(bikeID),
		guard:    guard.NewConstructorGuard(),
	}

	var bikeErr error
	if cmd.bikeID == "" {
		bikeErr = errs.NewValueIsRequiredError("bikeId")
	}
	if err := errors.Join(wizardID.Validate(), bikeErr); err != nil {
		return SelectBikeCommand{}, err
	}

	return cmd, nil
}

func (c SelectBikeCommand) Validate() error {
	return c.guard.Validate(ErrSelectBikeCommandIsNotConstructed)
}

func (c SelectBikeCommand) WizardID() kernel.UUID {
	return c.wizardID
}

func (c SelectBikeCommand) BikeID() string {
	return c.bikeID
}
