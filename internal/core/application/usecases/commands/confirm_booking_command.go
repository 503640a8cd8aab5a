package commands

import (
	"errors"
	"strings"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrConfirmBookingCommandIsNotConstructed = errors.New(
	"ConfirmBookingCommand must be created via NewConfirmBookingCommand constructor",
)

// ConfirmBookingCommand submits the booking. returnTo is the page an
// anonymous user comes back to after logging in; it defaults to "/".
type ConfirmBookingCommand struct { //nolint:recvcheck //using for validation
	wizardID kernel.UUID
	returnTo string

	guard guard.ConstructorGuard
}

func NewConfirmBookingCommand(wizardID kernel.UUID, returnTo string) (ConfirmBookingCommand, error) {
	if err := wizardID.Validate(); err != nil {
		return ConfirmBookingCommand{}, err
	}

	returnTo = strings.TrimSpace(returnTo)
	if returnTo == "" {
		returnTo = "/"
	}

	return ConfirmBookingCommand{
		wizardID: wizardID,
		returnTo: returnTo,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmBookingCommand) Validate() error {
	return c.guard.Validate(ErrConfirmBookingCommandIsNotConstructed)
}

func (c ConfirmBookingCommand) WizardID() kernel.UUID {
	return c.wizardID
}

func (c ConfirmBookingCommand) ReturnTo() string {
	return c.returnTo
}

// ConfirmBookingResult tells the caller what happened to the submission.
//
// Exactly one of the following holds:
//   - LoginURL is set: the caller is anonymous, nothing was submitted and
//     the wizard is parked under ResumeToken
//   - Booking is set: the booking was created
//   - ErrorMessage is set: the gateway refused, the wizard is unchanged
type ConfirmBookingResult struct {
	LoginURL     string
	ResumeToken  string
	Booking      *BookingSummary
	ErrorMessage string
}

// BookingSummary is the part of the created booking shown on the success screen.
type BookingSummary struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	TotalPrice      int64  `json:"totalPrice"`
	DropoffLocation string `json:"dropoffLocation"`
}
