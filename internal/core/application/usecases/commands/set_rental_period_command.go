package commands

import (
	"errors"

	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrSetRentalPeriodCommandIsNotConstructed = errors.New(
	"SetRentalPeriodCommand must be created via NewSetRentalPeriodCommand constructor",
)

// SetRentalPeriodCommand records dates, times and the optional delivery
// address.
//
// Example:
//
//	period, err := booking.NewRentalPeriod("2024-01-01", "09:00", "2024-01-03", "", "Main st 1")
//	if err != nil {
//	    return err
//	}
//	cmd, _ := NewSetRentalPeriodCommand(wizardID, period)
type SetRentalPeriodCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID
	period   booking.RentalPeriod

	guard guard.ConstructorGuard
}

func NewSetRentalPeriodCommand(wizardID kernel.UUID, period booking.RentalPeriod) (SetRentalPeriodCommand, error) {
	if err := errors.Join(wizardID.Validate(), period.Validate()); err != nil {
		return SetRentalPeriodCommand{}, err
	}

	return SetRentalPeriodCommand{
		wizardID: wizardID,
		period:   period,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetRentalPeriodCommand) Validate() error {
	return c.guard.Validate(ErrSetRentalPeriodCommandIsNotConstructed)
}

func (c SetRentalPeriodCommand) WizardID() kernel.UUID {
	return c.wizardID
}

func (c SetRentalPeriodCommand) Period() booking.RentalPeriod {
	return c.period
}
