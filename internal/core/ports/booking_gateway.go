package ports

import (
	"context"

	"bikerental/internal/core/domain/model/booking"
)

// BookingGateway submits finalized bookings to the backend.
type BookingGateway interface {
	// Create submits req on behalf of principal. Failures carry a
	// user-displayable message as *errs.ExternalServiceError.
	Create(ctx context.Context, principal Principal, req booking.Request) (*booking.Booking, error)
}
