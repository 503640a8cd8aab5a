package wizard

import (
	"time"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/partner"
)

// Event is a user interaction or collaborator result fed into Wizard.Apply.
type Event interface {
	eventName() string
}

// LocationsSelected moves from location selection to bike selection and
// starts a bike fetch for the pickup location.
type LocationsSelected struct {
	Pickup  kernel.Location
	Dropoff kernel.Location
}

// BikesRequested restarts the bike fetch with a new filter.
type BikesRequested struct {
	Filter bike.Filter
}

// BikesLoaded delivers the result of the fetch tagged with Token.
type BikesLoaded struct {
	Token uint64
	Bikes []*bike.Bike
}

// BikesFailed reports a failed fetch tagged with Token.
type BikesFailed struct {
	Token   uint64
	Message string
}

type BikeSelected struct {
	BikeID string
}

type RentalPeriodSet struct {
	Period booking.RentalPeriod
}

// DropoffResolved carries the partner record fetched for the chosen id.
type DropoffResolved struct {
	Partner *partner.Partner
}

type DropoffFailed struct {
	Message string
}

// SubmissionStarted marks the wizard as waiting for the booking gateway and
// issues a new submission token. At is when the gateway call starts.
type SubmissionStarted struct {
	At time.Time
}

// BookingSubmitted records the booking created for the submission tagged
// with Token.
type BookingSubmitted struct {
	Token   uint64
	Booking *booking.Booking
}

// SubmissionFailed reports a rejected submission tagged with Token.
type SubmissionFailed struct {
	Token   uint64
	Message string
}

type SteppedBack struct{}

// LocationReset leaves the no-bikes screen for location selection.
type LocationReset struct{}

type ErrorDismissed struct{}

func (LocationsSelected) eventName() string { return "LocationsSelected" }
func (BikesRequested) eventName() string    { return "BikesRequested" }
func (BikesLoaded) eventName() string       { return "BikesLoaded" }
func (BikesFailed) eventName() string       { return "BikesFailed" }
func (BikeSelected) eventName() string      { return "BikeSelected" }
func (RentalPeriodSet) eventName() string   { return "RentalPeriodSet" }
func (DropoffResolved) eventName() string   { return "DropoffResolved" }
func (DropoffFailed) eventName() string     { return "DropoffFailed" }
func (SubmissionStarted) eventName() string { return "SubmissionStarted" }
func (BookingSubmitted) eventName() string  { return "BookingSubmitted" }
func (SubmissionFailed) eventName() string  { return "SubmissionFailed" }
func (SteppedBack) eventName() string       { return "SteppedBack" }
func (LocationReset) eventName() string     { return "LocationReset" }
func (ErrorDismissed) eventName() string    { return "ErrorDismissed" }
