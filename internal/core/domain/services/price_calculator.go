package services

import (
	"errors"
	"math"
	"time"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
)

const hoursPerDay = 24

// ErrBikeIsRequired is returned when a quote is asked for without a bike.
var ErrBikeIsRequired = errors.New("bike is required for a quote")

// PriceCalculator is a domain service computing the booking total from bike
// pricing and a rental period.
//
// Business rules:
//   - Days are whole 24h blocks rounded up, so 09:00 to 18:00 on one date is one day
//   - A period that ends at or before it starts costs zero days and totals 0
//   - The delivery fee is flat, added once when a delivery address is set and
//     the rental has at least one day
//   - Weekly and monthly prices are never applied to the total
//
// Example usage:
//
//	calculator := NewPriceCalculator()
//	period, _ := booking.NewRentalPeriod("2024-01-01", "09:00", "2024-01-03", "", "")
//
//	quote, err := calculator.Quote(selectedBike, period)
//	if err != nil {
//	    // period components could not be parsed
//	    return
//	}
//	// quote.Total is days × perDay (+ delivery fee)
type PriceCalculator struct{}

// NewPriceCalculator creates a new PriceCalculator instance.
func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Quote prices a rental of the given bike.
//
// Returns:
//   - booking.Quote: days, per-day price, subtotal, delivery fee and total
//   - error: ErrBikeIsRequired, construction errors or unparsable period components
func (c PriceCalculator) Quote(b *bike.Bike, period booking.RentalPeriod) (booking.Quote, error) {
	if b == nil {
		return booking.Quote{}, ErrBikeIsRequired
	}
	if err := b.Validate(); err != nil {
		return booking.Quote{}, err
	}
	return c.QuotePricing(b.Pricing(), period)
}

// QuotePricing prices a rental from raw pricing. It backs Quote and the
// offline quote command.
func (c PriceCalculator) QuotePricing(pricing bike.Pricing, period booking.RentalPeriod) (booking.Quote, error) {
	if err := errors.Join(pricing.Validate(), period.Validate()); err != nil {
		return booking.Quote{}, err
	}

	start, end, err := period.Instants()
	if err != nil {
		return booking.Quote{}, err
	}

	days := c.Days(start, end)
	quote := booking.Quote{
		Days:     days,
		PerDay:   pricing.PerDay(),
		Subtotal: int64(days) * pricing.PerDay(),
	}

	if fee, ok := pricing.DeliveryFee(); ok && period.WantsDelivery() && days > 0 {
		quote.DeliveryFee = fee
	}
	quote.Total = quote.Subtotal + quote.DeliveryFee

	return quote, nil
}

// Days returns the number of started 24h blocks between start and end, or 0
// when end is not after start.
func (c PriceCalculator) Days(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / hoursPerDay))
}
