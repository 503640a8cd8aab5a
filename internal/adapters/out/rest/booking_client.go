package rest

import (
	"context"
	"net/http"

	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/ports"
	"bikerental/internal/pkg/errs"
)

const bookingService = "bookings"

type createBookingDTO struct {
	BikeID          string `json:"bikeId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	PickupLocation  string `json:"pickupLocation,omitempty"`
	DropoffLocation string `json:"dropoffLocation"`
	TotalPrice      int64  `json:"totalPrice"`
}

// BookingClient implements ports.BookingGateway.
type BookingClient struct {
	client *Client
}

func NewBookingClient(client *Client) *BookingClient {
	return &BookingClient{client: client}
}

// Create calls POST /bookings with the caller's token.
func (c *BookingClient) Create(ctx context.Context, principal ports.Principal, req booking.Request) (*booking.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := createBookingDTO{
		BikeID:          req.BikeID(),
		StartTime:       req.StartISO(),
		EndTime:         req.EndISO(),
		DeliveryAddress: req.DeliveryAddress(),
		PickupLocation:  req.PickupLocation(),
		DropoffLocation: req.DropoffLocation(),
		TotalPrice:      req.TotalPrice(),
	}

	var created booking.Booking
	if err := c.client.call(ctx, bookingService, http.MethodPost, "/bookings", principal.Token, body, &created); err != nil {
		return nil, err
	}
	if err := created.Validate(); err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(bookingService, "booking response has no id", err)
	}

	return &created, nil
}
