package ports

import (
	"context"
	"time"
)

// BookingCreatedEvent is published once per successful submission.
type BookingCreatedEvent struct {
	WizardID        string    `json:"wizardId"`
	BookingID       string    `json:"bookingId"`
	UserID          string    `json:"userId"`
	BikeID          string    `json:"bikeId"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DropoffLocation string    `json:"dropoffLocation"`
	TotalPrice      int64     `json:"totalPrice"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Notifier tells the rest of the platform about wizard outcomes.
type Notifier interface {
	BookingCreated(ctx context.Context, event BookingCreatedEvent) error
}
