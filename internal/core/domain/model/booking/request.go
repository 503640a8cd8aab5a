package booking

import (
	"errors"
	"strings"
	"time"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Request is the payload submitted to the booking gateway.
type Request struct { //nolint:recvcheck //using for validation
	bikeID          string
	startTime       time.Time
	endTime         time.Time
	deliveryAddress string
	pickupLocation  string
	dropoffLocation string
	totalPrice      int64

	guard guard.ConstructorGuard
}

// NewRequest builds a gateway request. bikeID and dropoffLocation are required.
func NewRequest(
	bikeID string,
	start time.Time,
	end time.Time,
	deliveryAddress string,
	pickupLocation string,
	dropoffLocation string,
	totalPrice int64,
) (Request, error) {
	r := Request{
		startTime:       start.UTC(),
		endTime:         end.UTC(),
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		pickupLocation:  strings.TrimSpace(pickupLocation),
		totalPrice:      totalPrice,
		guard:           guard.NewConstructorGuard(),
	}

	var errList []error
	if r.bikeID = strings.TrimSpace(bikeID); r.bikeID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("bikeId"))
	}
	if r.dropoffLocation = strings.TrimSpace(dropoffLocation); r.dropoffLocation == "" {
		errList = append(errList, errs.NewValueIsRequiredError("dropoffLocation"))
	}
	if start.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("startTime"))
	}
	if end.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("endTime"))
	}
	if err := errors.Join(errList...); err != nil {
		return Request{}, err
	}

	return r, nil
}

func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r Request) BikeID() string {
	return r.bikeID
}

func (r Request) StartTime() time.Time {
	return r.startTime
}

func (r Request) EndTime() time.Time {
	return r.endTime
}

// StartISO returns the start instant in RFC 3339.
func (r Request) StartISO() string {
	return r.startTime.Format(time.RFC3339)
}

// EndISO returns the end instant in RFC 3339.
func (r Request) EndISO() string {
	return r.endTime.Format(time.RFC3339)
}

func (r Request) DeliveryAddress() string {
	return r.deliveryAddress
}

func (r Request) PickupLocation() string {
	return r.pickupLocation
}

func (r Request) DropoffLocation() string {
	return r.dropoffLocation
}

func (r Request) TotalPrice() int64 {
	return r.totalPrice
}
