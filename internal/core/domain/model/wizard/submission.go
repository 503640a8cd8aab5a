package wizard

import (
	"errors"
	"strings"

	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/pkg/errs"
)

// PrepareSubmission checks that everything a booking needs is present and
// builds the gateway request. Missing fields are reported together.
func (w *Wizard) PrepareSubmission(userID string, totalPrice int64) (booking.Request, error) {
	if err := w.Validate(); err != nil {
		return booking.Request{}, err
	}
	if w.booking != nil {
		return booking.Request{}, ErrBookingIsCompleted
	}
	if err := w.step.expect(Confirm, "submit the booking"); err != nil {
		return booking.Request{}, err
	}

	var errList []error
	if w.selectedBike == nil {
		errList = append(errList, errs.NewValueIsRequiredError("selectedBike"))
	}
	if w.period == nil {
		errList = append(errList,
			errs.NewValueIsRequiredError("startDate"),
			errs.NewValueIsRequiredError("endDate"),
		)
	}
	if strings.TrimSpace(userID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("user"))
	}
	if w.partner == nil {
		errList = append(errList, errs.NewValueIsRequiredError("selectedPartner"))
	}
	if err := errors.Join(errList...); err != nil {
		return booking.Request{}, err
	}

	start, end, err := w.period.Instants()
	if err != nil {
		return booking.Request{}, err
	}

	pickup := ""
	if w.pickup != nil {
		pickup = w.pickup.Name()
	}

	return booking.NewRequest(
		w.selectedBike.ID(),
		start,
		end,
		w.period.DeliveryAddress(),
		pickup,
		w.DropoffLabel(),
		totalPrice,
	)
}
