package queries

import (
	"errors"

	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/guard"
)

var ErrGetWizardQueryIsNotConstructed = errors.New(
	"GetWizardQuery must be created via NewGetWizardQuery constructor",
)

// GetWizardQuery reads everything a client needs to render the wizard.
//
// Example:
//
//	query, err := NewGetWizardQuery(wizardID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetWizardQuery struct {
	wizardID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetWizardQuery(wizardID kernel.UUID) (GetWizardQuery, error) {
	if err := wizardID.Validate(); err != nil {
		return GetWizardQuery{}, err
	}

	return GetWizardQuery{wizardID: wizardID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWizardQuery) Validate() error {
	return q.guard.Validate(ErrGetWizardQueryIsNotConstructed)
}

func (q GetWizardQuery) WizardID() kernel.UUID {
	return q.wizardID
}

// GetWizardQueryResponse is the wizard view model. Quote is present once a
// bike and a rental period are chosen. Redirect is present while the
// post-booking countdown runs.
type GetWizardQueryResponse struct {
	ID             string                   `json:"id"`
	Version        int64                    `json:"version"`
	Step           int                      `json:"step"`
	StepName       string                   `json:"stepName"`
	View           string                   `json:"view"`
	Pickup         *wizard.LocationSnapshot `json:"pickup,omitempty"`
	Dropoff        *wizard.LocationSnapshot `json:"dropoff,omitempty"`
	Filter         wizard.FilterSnapshot    `json:"filter"`
	Bikes          []wizard.BikeSnapshot    `json:"bikes"`
	BikesLoading   bool                     `json:"bikesLoading"`
	Submitting     bool                     `json:"submitting"`
	SelectedBikeID string                   `json:"selectedBikeId,omitempty"`
	Period         *wizard.PeriodSnapshot   `json:"period,omitempty"`
	Partner        *wizard.PartnerSnapshot  `json:"partner,omitempty"`
	DropoffLabel   string                   `json:"dropoffLabel,omitempty"`
	Quote          *booking.Quote           `json:"quote,omitempty"`
	Booking        *booking.Booking         `json:"booking,omitempty"`
	ErrorMessage   string                   `json:"errorMessage,omitempty"`
	Redirect       *Redirect                `json:"redirect,omitempty"`
}

// Redirect tells the client where it will be sent and in how many seconds.
type Redirect struct {
	To               string `json:"to"`
	SecondsRemaining int    `json:"secondsRemaining"`
}
