package wizard

import (
	"errors"
	"fmt"
	"time"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/partner"
	"bikerental/internal/pkg/errs"
)

var (
	// ErrWizardIsNotConstructed is returned when a Wizard was not created via
	// NewWizard or RestoreWizard.
	ErrWizardIsNotConstructed = errors.New("Wizard must be created via NewWizard constructor")

	// ErrFetchIsStale is returned for a bike fetch result whose token no
	// longer matches the wizard. The wizard is left untouched.
	ErrFetchIsStale = errors.New("bike fetch result is stale")

	// ErrBookingIsCompleted is returned for any event after a successful
	// submission other than dismissing an error.
	ErrBookingIsCompleted = errors.New("booking is already completed")

	// ErrSubmissionIsPending is returned for changes made while the booking
	// gateway is being called.
	ErrSubmissionIsPending = errors.New("booking submission is in progress")

	// ErrSubmissionIsStale is returned for a submission result whose token no
	// longer matches the wizard.
	ErrSubmissionIsStale = errors.New("booking submission result is stale")
)

// SubmissionLease is how long a started submission blocks the wizard. It
// outlives any gateway call, so a lease only expires when the process that
// started the submission died before recording its result.
const SubmissionLease = 2 * time.Minute

// Wizard is the aggregate root of one booking flow. It collects pickup and
// drop-off locations, a bike, a rental period and a drop-off partner, then
// holds the created booking until the session is closed.
//
// Invariants:
//   - Fields of step N are set only by the transition leaving step N
//   - Going back never clears a field
//   - Bike fetch results apply only while their token is current
//   - While a submission is pending only its result or ErrorDismissed apply
//   - After BookingSubmitted the wizard accepts no further transitions
//
// Every change goes through Apply.
type Wizard struct {
	id      kernel.UUID
	version int64
	step    Step

	pickup  *kernel.Location
	dropoff *kernel.Location

	filter       bike.Filter
	bikes        []*bike.Bike
	bikesLoaded  bool
	bikesLoading bool
	fetchToken   uint64

	selectedBike *bike.Bike
	period       *booking.RentalPeriod
	partner      *partner.Partner
	booking      *booking.Booking

	submitting          bool
	submissionToken     uint64
	submissionStartedAt time.Time

	errorMessage string

	isConstructed bool
}

// NewWizard starts a wizard on location selection.
func NewWizard(id kernel.UUID) (*Wizard, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Wizard{
		id:            id,
		step:          SelectLocations,
		isConstructed: true,
	}, nil
}

func (w *Wizard) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWizardIsNotConstructed
	}
	return nil
}

func (w *Wizard) ID() kernel.UUID {
	return w.id
}

// Version is the persisted revision the wizard was loaded at.
func (w *Wizard) Version() int64 {
	return w.version
}

// SetVersion is used by repositories after a successful write.
func (w *Wizard) SetVersion(version int64) {
	w.version = version
}

func (w *Wizard) Step() Step {
	return w.step
}

// View reports which screen the wizard is on.
func (w *Wizard) View() View {
	switch {
	case w.booking != nil:
		return ViewBookingSucceeded
	case w.step == SelectBike && !w.bikesLoading && w.bikesLoaded && len(w.bikes) == 0:
		return ViewNoBikesAvailable
	default:
		return ViewSteps
	}
}

func (w *Wizard) Pickup() (kernel.Location, bool) {
	if w.pickup == nil {
		return kernel.Location{}, false
	}
	return *w.pickup, true
}

func (w *Wizard) Dropoff() (kernel.Location, bool) {
	if w.dropoff == nil {
		return kernel.Location{}, false
	}
	return *w.dropoff, true
}

func (w *Wizard) Filter() bike.Filter {
	return w.filter
}

// Bikes returns the last loaded bike list.
func (w *Wizard) Bikes() []*bike.Bike {
	return w.bikes
}

func (w *Wizard) BikesLoaded() bool {
	return w.bikesLoaded
}

func (w *Wizard) BikesLoading() bool {
	return w.bikesLoading
}

// FetchToken identifies the bike fetch the wizard currently waits for.
func (w *Wizard) FetchToken() uint64 {
	return w.fetchToken
}

func (w *Wizard) SelectedBike() *bike.Bike {
	return w.selectedBike
}

func (w *Wizard) RentalPeriod() (booking.RentalPeriod, bool) {
	if w.period == nil {
		return booking.RentalPeriod{}, false
	}
	return *w.period, true
}

func (w *Wizard) Partner() *partner.Partner {
	return w.partner
}

func (w *Wizard) Booking() *booking.Booking {
	return w.booking
}

// Submitting reports whether a booking submission is waiting for the gateway.
func (w *Wizard) Submitting() bool {
	return w.submitting
}

// SubmissionToken identifies the submission the wizard currently waits for.
func (w *Wizard) SubmissionToken() uint64 {
	return w.submissionToken
}

// ErrorMessage is the step-local message shown to the user, if any.
func (w *Wizard) ErrorMessage() string {
	return w.errorMessage
}

// DropoffLabel is the drop-off string sent to the booking gateway.
func (w *Wizard) DropoffLabel() string {
	if w.partner == nil {
		return ""
	}
	fallback := ""
	if w.dropoff != nil {
		fallback = w.dropoff.Name()
	}
	return w.partner.DropoffLabel(fallback)
}

// RequireStep fails unless the wizard is on step and not completed. Callers
// use it before contacting a collaborator on the wizard's behalf.
func (w *Wizard) RequireStep(step Step, action string) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.booking != nil {
		return ErrBookingIsCompleted
	}
	return w.step.expect(step, action)
}

// Apply runs the single transition function of the wizard. A rejected
// event leaves the wizard unchanged.
func (w *Wizard) Apply(event Event) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if event == nil {
		return errs.NewValueIsRequiredError("event")
	}
	if w.booking != nil {
		if _, ok := event.(ErrorDismissed); !ok {
			return fmt.Errorf("%s: %w", event.eventName(), ErrBookingIsCompleted)
		}
	}
	if err := w.checkPending(event); err != nil {
		return err
	}

	switch e := event.(type) {
	case LocationsSelected:
		return w.selectLocations(e)
	case BikesRequested:
		return w.requestBikes(e)
	case BikesLoaded:
		return w.loadBikes(e)
	case BikesFailed:
		return w.failBikes(e)
	case BikeSelected:
		return w.selectBike(e)
	case RentalPeriodSet:
		return w.setRentalPeriod(e)
	case DropoffResolved:
		return w.resolveDropoff(e)
	case DropoffFailed:
		return w.failStep(SelectDropoffPartner, "fail drop-off resolution", e.Message)
	case SubmissionStarted:
		return w.startSubmission(e)
	case BookingSubmitted:
		return w.submitBooking(e)
	case SubmissionFailed:
		return w.failSubmission(e)
	case SteppedBack:
		return w.stepBack()
	case LocationReset:
		return w.resetLocation()
	case ErrorDismissed:
		w.errorMessage = ""
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%T is not a wizard event", event))
	}
}

func (w *Wizard) selectLocations(e LocationsSelected) error {
	if err := w.step.expect(SelectLocations, "select locations"); err != nil {
		return err
	}
	if err := errors.Join(e.Pickup.Validate(), e.Dropoff.Validate()); err != nil {
		return err
	}

	pickup, dropoff := e.Pickup, e.Dropoff
	w.pickup = &pickup
	w.dropoff = &dropoff
	w.step = SelectBike
	w.errorMessage = ""
	w.startFetch()

	return nil
}

func (w *Wizard) requestBikes(e BikesRequested) error {
	if err := w.step.expect(SelectBike, "request bikes"); err != nil {
		return err
	}
	if err := e.Filter.Validate(); err != nil {
		return err
	}

	w.filter = e.Filter
	w.errorMessage = ""
	w.startFetch()

	return nil
}

func (w *Wizard) loadBikes(e BikesLoaded) error {
	if err := w.checkToken(e.Token); err != nil {
		return err
	}
	for _, b := range e.Bikes {
		if err := b.Validate(); err != nil {
			return err
		}
	}

	w.bikes = e.Bikes
	w.bikesLoaded = true
	w.bikesLoading = false
	w.errorMessage = ""

	if w.selectedBike != nil {
		w.selectedBike = w.findBike(w.selectedBike.ID())
	}

	return nil
}

func (w *Wizard) failBikes(e BikesFailed) error {
	if err := w.checkToken(e.Token); err != nil {
		return err
	}

	w.bikesLoading = false
	w.errorMessage = e.Message

	return nil
}

func (w *Wizard) selectBike(e BikeSelected) error {
	if err := w.step.expect(SelectBike, "select a bike"); err != nil {
		return err
	}
	if e.BikeID == "" {
		return errs.NewValueIsRequiredError("bikeId")
	}

	selected := w.findBike(e.BikeID)
	if selected == nil {
		return errs.NewObjectNotFoundError("bikeId", e.BikeID)
	}

	w.selectedBike = selected
	w.leaveBikeStep(SetRentalPeriod)

	return nil
}

func (w *Wizard) setRentalPeriod(e RentalPeriodSet) error {
	if err := w.step.expect(SetRentalPeriod, "set the rental period"); err != nil {
		return err
	}
	if w.selectedBike == nil {
		return errs.NewValueIsRequiredError("selectedBike")
	}
	if err := e.Period.Validate(); err != nil {
		return err
	}

	period := e.Period
	w.period = &period
	w.step = SelectDropoffPartner
	w.errorMessage = ""

	return nil
}

func (w *Wizard) resolveDropoff(e DropoffResolved) error {
	if err := w.step.expect(SelectDropoffPartner, "resolve the drop-off partner"); err != nil {
		return err
	}
	if err := e.Partner.Validate(); err != nil {
		return err
	}

	w.partner = e.Partner
	w.step = Confirm
	w.errorMessage = ""

	return nil
}

func (w *Wizard) startSubmission(e SubmissionStarted) error {
	if err := w.step.expect(Confirm, "submit the booking"); err != nil {
		return err
	}

	w.submitting = true
	w.submissionToken++
	w.submissionStartedAt = e.At
	w.errorMessage = ""

	return nil
}

func (w *Wizard) submitBooking(e BookingSubmitted) error {
	if err := w.checkSubmission(e.Token); err != nil {
		return err
	}
	if err := e.Booking.Validate(); err != nil {
		return err
	}

	w.booking = e.Booking
	w.submitting = false
	w.submissionStartedAt = time.Time{}
	w.errorMessage = ""

	return nil
}

func (w *Wizard) failSubmission(e SubmissionFailed) error {
	if err := w.checkSubmission(e.Token); err != nil {
		return err
	}

	w.submitting = false
	w.submissionStartedAt = time.Time{}
	w.errorMessage = e.Message

	return nil
}

func (w *Wizard) failStep(step Step, action string, message string) error {
	if err := w.step.expect(step, action); err != nil {
		return err
	}
	w.errorMessage = message
	return nil
}

func (w *Wizard) stepBack() error {
	if w.View() == ViewNoBikesAvailable {
		return errs.NewValueIsInvalidErrorWithCause(
			"step is invalid",
			errors.New("no bikes are available, choose a different location"),
		)
	}

	previous, err := w.step.Previous()
	if err != nil {
		return err
	}

	if w.step == SelectBike {
		w.leaveBikeStep(previous)
	} else {
		w.step = previous
		w.errorMessage = ""
	}

	return nil
}

func (w *Wizard) resetLocation() error {
	if w.View() != ViewNoBikesAvailable {
		return errs.NewValueIsInvalidErrorWithCause(
			"view is invalid",
			fmt.Errorf("%s is not a valid view to choose a different location", w.View()),
		)
	}

	w.bikesLoaded = false
	w.bikes = nil
	w.leaveBikeStep(SelectLocations)

	return nil
}

// startFetch invalidates any fetch in flight and waits for a new one.
func (w *Wizard) startFetch() {
	w.fetchToken++
	w.bikesLoading = true
}

// leaveBikeStep moves off bike selection; results still in flight become stale.
func (w *Wizard) leaveBikeStep(to Step) {
	w.fetchToken++
	w.bikesLoading = false
	w.step = to
	w.errorMessage = ""
}

func (w *Wizard) checkToken(token uint64) error {
	if token != w.fetchToken || !w.bikesLoading {
		return fmt.Errorf("token %d, current %d: %w", token, w.fetchToken, ErrFetchIsStale)
	}
	return nil
}

// checkPending rejects changes while a submission waits for the gateway. A
// new SubmissionStarted takes over once the lease of the pending one ran out.
func (w *Wizard) checkPending(event Event) error {
	if !w.submitting {
		return nil
	}
	switch e := event.(type) {
	case BookingSubmitted, SubmissionFailed, ErrorDismissed:
		return nil
	case SubmissionStarted:
		if !e.At.Before(w.submissionStartedAt.Add(SubmissionLease)) {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", event.eventName(), ErrSubmissionIsPending)
}

func (w *Wizard) checkSubmission(token uint64) error {
	if !w.submitting || token != w.submissionToken {
		return fmt.Errorf("token %d, current %d: %w", token, w.submissionToken, ErrSubmissionIsStale)
	}
	return nil
}

func (w *Wizard) findBike(id string) *bike.Bike {
	for _, b := range w.bikes {
		if b.ID() == id {
			return b
		}
	}
	return nil
}
