package bike

import (
	"errors"
	"fmt"
	"strings"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

const (
	maxRating = 5.0
)

var ErrBikeIsNotConstructed = errors.New("Bike must be created via NewBike constructor")

// Bike is a bike bookable at a location, as listed by the catalog.
//
// Bikes are read models owned by the catalog service: the wizard keeps the
// list loaded for step 2 and the one the customer selected, nothing more.
type Bike struct {
	id         string
	name       string
	bikeType   string
	locationID string
	rating     float64
	pricing    Pricing

	guard guard.ConstructorGuard
}

// NewBike validates and builds a Bike. Rating must be within [0, 5].
func NewBike(id string, name string, bikeType string, locationID string, rating float64, pricing Pricing) (*Bike, error) {
	b := &Bike{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setRating(rating),
		b.setPricing(pricing),
	); err != nil {
		return nil, err
	}
	b.bikeType = strings.TrimSpace(bikeType)
	b.locationID = strings.TrimSpace(locationID)

	return b, nil
}

func (b *Bike) Validate() error {
	if b == nil {
		return ErrBikeIsNotConstructed
	}
	return b.guard.Validate(ErrBikeIsNotConstructed)
}

func (b *Bike) ID() string {
	return b.id
}

func (b *Bike) Name() string {
	return b.name
}

func (b *Bike) Type() string {
	return b.bikeType
}

func (b *Bike) LocationID() string {
	return b.locationID
}

func (b *Bike) Rating() float64 {
	return b.rating
}

func (b *Bike) Pricing() Pricing {
	return b.pricing
}

func (b *Bike) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("bike id")
	}
	b.id = id
	return nil
}

func (b *Bike) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("bike name")
	}
	b.name = name
	return nil
}

func (b *Bike) setRating(rating float64) error {
	if rating < 0 || rating > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, 0, maxRating)
	}
	b.rating = rating
	return nil
}

func (b *Bike) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return fmt.Errorf("bike pricing: %w", err)
	}
	b.pricing = pricing
	return nil
}
