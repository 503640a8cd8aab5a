package wizard

import (
	"fmt"

	"bikerental/internal/pkg/errs"
)

// Step is the position of the wizard in its linear flow.
//
//	SelectLocations ─> SelectBike ─> SetRentalPeriod ─> SelectDropoffPartner ─> Confirm
//	       <──────────────<──────────────<─────────────────────<
//	                         (one step back at a time)
type Step int

const (
	// Unknown catches uninitialized steps.
	Unknown Step = iota
	SelectLocations
	SelectBike
	SetRentalPeriod
	SelectDropoffPartner
	Confirm
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		Unknown:              "Unknown",
		SelectLocations:      "SelectLocations",
		SelectBike:           "SelectBike",
		SetRentalPeriod:      "SetRentalPeriod",
		SelectDropoffPartner: "SelectDropoffPartner",
		Confirm:              "Confirm",
	}
}

// Validate accepts steps 1 through 5.
func (s Step) Validate() error {
	if s < SelectLocations || s > Confirm {
		return errs.NewValueIsInvalidErrorWithCause("step is invalid", fmt.Errorf("%d is not a valid step", s))
	}
	return nil
}

func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the following step. Confirm has no next step.
func (s Step) Next() (Step, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s == Confirm {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			fmt.Errorf("%s is the last step", s.String()),
		)
	}
	return s + 1, nil
}

// Previous returns the preceding step. SelectLocations has none.
func (s Step) Previous() (Step, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s == SelectLocations {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			fmt.Errorf("%s is the first step", s.String()),
		)
	}
	return s - 1, nil
}

// expect fails unless the wizard is on want.
func (s Step) expect(want Step, action string) error {
	if s != want {
		return errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			fmt.Errorf("%s is not a valid step to %s", s.String(), action),
		)
	}
	return nil
}
