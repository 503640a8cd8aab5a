package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	defaultStartAt = "00:00"
	defaultEndAt   = "23:59"
)

var ErrRentalPeriodIsNotConstructed = errors.New("RentalPeriod must be created via NewRentalPeriod constructor")

// RentalPeriod is the input of the rental-period step, kept verbatim.
//
// Only the presence of both dates is checked when the period is captured;
// the components are parsed when the period is turned into instants.
// A missing start time means the start of the day, a missing end time the
// last minute of the day.
type RentalPeriod struct { //nolint:recvcheck //using for validation
	startDate       string
	startTime       string
	endDate         string
	endTime         string
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewRentalPeriod captures the rental period. startDate and endDate are required.
func NewRentalPeriod(startDate, startTime, endDate, endTime, deliveryAddress string) (RentalPeriod, error) {
	p := RentalPeriod{
		startTime:       startTime,
		endTime:         endTime,
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setStartDate(startDate), p.setEndDate(endDate)); err != nil {
		return RentalPeriod{}, err
	}

	return p, nil
}

func (p RentalPeriod) Validate() error {
	return p.guard.Validate(ErrRentalPeriodIsNotConstructed)
}

func (p RentalPeriod) StartDate() string {
	return p.startDate
}

func (p RentalPeriod) StartTime() string {
	return p.startTime
}

func (p RentalPeriod) EndDate() string {
	return p.endDate
}

func (p RentalPeriod) EndTime() string {
	return p.endTime
}

func (p RentalPeriod) DeliveryAddress() string {
	return p.deliveryAddress
}

// WantsDelivery reports whether a delivery address was given. A blank
// address is no address.
func (p RentalPeriod) WantsDelivery() bool {
	return strings.TrimSpace(p.deliveryAddress) != ""
}

// Start composes the start instant; the time defaults to 00:00.
func (p RentalPeriod) Start() (time.Time, error) {
	return compose("start", p.startDate, p.startTime, defaultStartAt)
}

// End composes the end instant; the time defaults to 23:59.
func (p RentalPeriod) End() (time.Time, error) {
	return compose("end", p.endDate, p.endTime, defaultEndAt)
}

// Instants returns both instants or the joined parse errors.
func (p RentalPeriod) Instants() (time.Time, time.Time, error) {
	start, startErr := p.Start()
	end, endErr := p.End()
	if err := errors.Join(startErr, endErr); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (p *RentalPeriod) setStartDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return errs.NewValueIsRequiredError("startDate")
	}
	p.startDate = date
	return nil
}

func (p *RentalPeriod) setEndDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return errs.NewValueIsRequiredError("endDate")
	}
	p.endDate = date
	return nil
}

func compose(name, date, clock, defaultClock string) (time.Time, error) {
	if clock == "" {
		clock = defaultClock
	}
	at, err := time.Parse(dateLayout+"T"+timeLayout, date+"T"+clock)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			name,
			fmt.Errorf("%q %q is not YYYY-MM-DD HH:MM", date, clock),
		)
	}
	return at, nil
}
