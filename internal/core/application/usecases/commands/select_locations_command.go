package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrSelectLocationsCommandIsNotConstructed = errors.New(
	"SelectLocationsCommand must be created via NewSelectLocationsCommand constructor",
)

// SelectLocationsCommand completes the first step with the pickup and
// drop-off locations.
//
// Example:
//
//	pickup, _ := kernel.NewLocation("loc-1", "Central Station", "")
//	dropoff, _ := kernel.NewLocation("loc-2", "Harbour", "")
//	cmd, err := NewSelectLocationsCommand(wizardID, pickup, dropoff)
//	if err != nil {
//	    return fmt.Errorf("invalid locations: %w", err)
//	}
type SelectLocationsCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID
	pickup   kernel.Location
	dropoff  kernel.Location

	guard guard.ConstructorGuard
}

func NewSelectLocationsCommand(
	wizardID kernel.UUID,
	pickup kernel.Location,
	dropoff kernel.Location,
) (SelectLocationsCommand, error) {
	if err := errors.Join(wizardID.Validate(), pickup.Validate(), dropoff.Validate()); err != nil {
		return SelectLocationsCommand{}, err
	}

	return SelectLocationsCommand{
		wizardID: wizardID,
		pickup:   pickup,
		dropoff:  dropoff,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SelectLocationsCommand) Validate() error {
	return c.guard.Validate(ErrSelectLocationsCommandIsNotConstructed)
}

func (c SelectLocationsCommand) WizardID() kernel.UUID {
	return c.wizardID
}

func (c SelectLocationsCommand) Pickup() kernel.Location {
	return c.pickup
}

func (c SelectLocationsCommand) Dropoff() kernel.Location {
	return c.dropoff
}
