package bike

import (
	"errors"
	"fmt"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

const (
	// weeklyFallbackDays is the number of day rates shown as the weekly estimate
	// when the bike has no explicit weekly rate.
	weeklyFallbackDays = 6
	// monthlyFallbackDays is the number of day rates shown as the monthly estimate
	// when the bike has no explicit monthly rate.
	monthlyFallbackDays = 25
)

var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")

// Pricing holds the rates of a bike in minor currency units.
//
// Only PerDay takes part in the booking total. Weekly and monthly rates are
// display data; see WeeklyEstimate and MonthlyEstimate.
type Pricing struct { //nolint:recvcheck //using for validation
	perDay      int64
	weekly      *int64
	monthly     *int64
	deliveryFee *int64

	guard guard.ConstructorGuard
}

// PricingOption sets an optional rate on Pricing.
type PricingOption func(*Pricing) error

// WithWeekly sets an explicit weekly rate.
func WithWeekly(amount int64) PricingOption {
	return func(p *Pricing) error {
		if amount < 0 {
			return errs.NewValueIsInvalidErrorWithCause("weekly", fmt.Errorf("%d is negative", amount))
		}
		p.weekly = &amount
		return nil
	}
}

// WithMonthly sets an explicit monthly rate.
func WithMonthly(amount int64) PricingOption {
	return func(p *Pricing) error {
		if amount < 0 {
			return errs.NewValueIsInvalidErrorWithCause("monthly", fmt.Errorf("%d is negative", amount))
		}
		p.monthly = &amount
		return nil
	}
}

// WithDeliveryFee sets the flat fee charged when the bike is delivered.
func WithDeliveryFee(amount int64) PricingOption {
	return func(p *Pricing) error {
		if amount < 0 {
			return errs.NewValueIsInvalidErrorWithCause("deliveryFee", fmt.Errorf("%d is negative", amount))
		}
		p.deliveryFee = &amount
		return nil
	}
}

// NewPricing builds Pricing. perDay must be positive.
func NewPricing(perDay int64, opts ...PricingOption) (Pricing, error) {
	p := Pricing{guard: guard.NewConstructorGuard()}

	errList := []error{p.setPerDay(perDay)}
	for _, opt := range opts {
		errList = append(errList, opt(&p))
	}
	if err := errors.Join(errList...); err != nil {
		return Pricing{}, err
	}

	return p, nil
}

func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

func (p Pricing) PerDay() int64 {
	return p.perDay
}

// Weekly returns the explicit weekly rate and whether it is set.
func (p Pricing) Weekly() (int64, bool) {
	return deref(p.weekly)
}

// Monthly returns the explicit monthly rate and whether it is set.
func (p Pricing) Monthly() (int64, bool) {
	return deref(p.monthly)
}

// DeliveryFee returns the delivery fee and whether it is set.
func (p Pricing) DeliveryFee() (int64, bool) {
	return deref(p.deliveryFee)
}

// WeeklyEstimate is the weekly figure shown on bike details: the explicit
// weekly rate, or six day rates.
func (p Pricing) WeeklyEstimate() int64 {
	if w, ok := p.Weekly(); ok {
		return w
	}
	return p.perDay * weeklyFallbackDays
}

// MonthlyEstimate is the monthly figure shown on bike details: the explicit
// monthly rate, or twenty-five day rates.
func (p Pricing) MonthlyEstimate() int64 {
	if m, ok := p.Monthly(); ok {
		return m
	}
	return p.perDay * monthlyFallbackDays
}

func (p *Pricing) setPerDay(perDay int64) error {
	if perDay <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("perDay", fmt.Errorf("%d is not greater than 0", perDay))
	}
	p.perDay = perDay
	return nil
}

func deref(v *int64) (int64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
