package booking

import (
	"strings"

	"bikerental/internal/pkg/errs"
)

// Booking is the record the gateway returns for a created booking. It is
// kept only as long as the success screen needs it.
type Booking struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	BikeID          string `json:"bikeId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	TotalPrice      int64  `json:"totalPrice"`
	DropoffLocation string `json:"dropoffLocation"`
}

// Validate requires the id assigned by the gateway.
func (b *Booking) Validate() error {
	if b == nil {
		return errs.NewValueIsRequiredError("booking")
	}
	if strings.TrimSpace(b.ID) == "" {
		return errs.NewValueIsRequiredError("booking id")
	}
	return nil
}
