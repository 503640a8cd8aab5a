package wizard

// View is what the wizard currently shows. NoBikesAvailable and
// BookingSucceeded short-circuit the regular step screens.
type View string

const (
	ViewSteps            View = "steps"
	ViewNoBikesAvailable View = "no-bikes-available"
	ViewBookingSucceeded View = "booking-succeeded"
)
