package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrRefreshBikesCommandIsNotConstructed = errors.New(
	"RefreshBikesCommand must be created via NewRefreshBikesCommand constructor",
)

// RefreshBikesCommand reloads the bike list with a new filter. It is also the
// manual retry after a failed fetch.
type RefreshBikesCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID
	filter   bike.Filter

	guard guard.ConstructorGuard
}

func NewRefreshBikesCommand(wizardID kernel.UUID, filter bike.Filter) (RefreshBikesCommand, error) {
	if err := errors.Join(wizardID.Validate(), filter.Validate()); err != nil {
		return RefreshBikesCommand{}, err
	}

	return RefreshBikesCommand{
		wizardID: wizardID,
		filter:   filter,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RefreshBikesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshBikesCommandIsNotConstructed)
}

func (c RefreshBikesCommand) WizardID() kernel.UUID {
	return c.wizardID
}

func (c RefreshBikesCommand) Filter() bike.Filter {
	return c.filter
}
