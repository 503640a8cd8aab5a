package wizard

import (
	"errors"
	"fmt"
	"time"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/partner"
)

// Snapshot is the complete serializable state of a Wizard. It is stored with
// the session row and parked across the login redirect.
type Snapshot struct {
	ID           string            `json:"id"`
	Version      int64             `json:"version"`
	Step         Step              `json:"step"`
	Pickup       *LocationSnapshot `json:"pickup,omitempty"`
	Dropoff      *LocationSnapshot `json:"dropoff,omitempty"`
	Filter       FilterSnapshot    `json:"filter"`
	Bikes        []BikeSnapshot    `json:"bikes,omitempty"`
	BikesLoaded  bool              `json:"bikesLoaded"`
	BikesLoading bool              `json:"bikesLoading"`
	FetchToken   uint64            `json:"fetchToken"`
	SelectedBike *BikeSnapshot     `json:"selectedBike,omitempty"`
	Period       *PeriodSnapshot   `json:"period,omitempty"`
	Partner      *PartnerSnapshot  `json:"partner,omitempty"`
	Booking      *booking.Booking  `json:"booking,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`

	Submitting          bool      `json:"submitting,omitempty"`
	SubmissionToken     uint64    `json:"submissionToken,omitempty"`
	SubmissionStartedAt time.Time `json:"submissionStartedAt,omitzero"`
}

type LocationSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

type FilterSnapshot struct {
	Type     string `json:"type,omitempty"`
	MinPrice *int64 `json:"minPrice,omitempty"`
	MaxPrice *int64 `json:"maxPrice,omitempty"`
	Sort     string `json:"sort,omitempty"`
}

type BikeSnapshot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type,omitempty"`
	LocationID  string  `json:"locationId,omitempty"`
	Rating      float64 `json:"rating"`
	PerDay      int64   `json:"perDay"`
	Weekly      *int64  `json:"weekly,omitempty"`
	Monthly     *int64  `json:"monthly,omitempty"`
	DeliveryFee *int64  `json:"deliveryFee,omitempty"`
}

type PeriodSnapshot struct {
	StartDate       string `json:"startDate"`
	StartTime       string `json:"startTime,omitempty"`
	EndDate         string `json:"endDate"`
	EndTime         string `json:"endTime,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
}

type PartnerSnapshot struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address,omitempty"`
	MapAddress  string `json:"mapAddress,omitempty"`
}

// Snapshot captures the wizard state.
func (w *Wizard) Snapshot() Snapshot {
	s := Snapshot{
		ID:           w.id.String(),
		Version:      w.version,
		Step:         w.step,
		Filter:       FilterFromDomain(w.filter),
		BikesLoaded:  w.bikesLoaded,
		BikesLoading: w.bikesLoading,
		FetchToken:   w.fetchToken,
		Booking:      w.booking,
		ErrorMessage: w.errorMessage,

		Submitting:          w.submitting,
		SubmissionToken:     w.submissionToken,
		SubmissionStartedAt: w.submissionStartedAt,
	}
	if w.pickup != nil {
		loc := locationFromDomain(*w.pickup)
		s.Pickup = &loc
	}
	if w.dropoff != nil {
		loc := locationFromDomain(*w.dropoff)
		s.Dropoff = &loc
	}
	for _, b := range w.bikes {
		s.Bikes = append(s.Bikes, BikeFromDomain(b))
	}
	if w.selectedBike != nil {
		b := BikeFromDomain(w.selectedBike)
		s.SelectedBike = &b
	}
	if w.period != nil {
		s.Period = &PeriodSnapshot{
			StartDate:       w.period.StartDate(),
			StartTime:       w.period.StartTime(),
			EndDate:         w.period.EndDate(),
			EndTime:         w.period.EndTime(),
			DeliveryAddress: w.period.DeliveryAddress(),
		}
	}
	if w.partner != nil {
		s.Partner = &PartnerSnapshot{
			ID:          w.partner.ID(),
			CompanyName: w.partner.CompanyName(),
			Address:     w.partner.Address(),
			MapAddress:  w.partner.MapAddress(),
		}
	}
	return s
}

// RestoreWizard rebuilds a wizard from a snapshot, validating every part
// through its constructor.
func RestoreWizard(s Snapshot) (*Wizard, error) {
	id, err := kernel.UUIDFromString(s.ID)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(id.Validate(), s.Step.Validate()); err != nil {
		return nil, err
	}

	w := &Wizard{
		id:            id,
		version:       s.Version,
		step:          s.Step,
		bikesLoaded:   s.BikesLoaded,
		bikesLoading:  s.BikesLoading,
		fetchToken:    s.FetchToken,
		booking:       s.Booking,
		errorMessage:  s.ErrorMessage,
		isConstructed: true,

		submitting:          s.Submitting,
		submissionToken:     s.SubmissionToken,
		submissionStartedAt: s.SubmissionStartedAt,
	}

	var errList []error
	if s.Pickup != nil {
		loc, locErr := s.Pickup.toDomain()
		w.pickup = &loc
		errList = append(errList, wrap("pickup", locErr))
	}
	if s.Dropoff != nil {
		loc, locErr := s.Dropoff.toDomain()
		w.dropoff = &loc
		errList = append(errList, wrap("dropoff", locErr))
	}

	w.filter, err = s.Filter.ToDomain()
	errList = append(errList, wrap("filter", err))

	for _, bs := range s.Bikes {
		b, bikeErr := bs.ToDomain()
		if bikeErr != nil {
			errList = append(errList, wrap("bikes", bikeErr))
			continue
		}
		w.bikes = append(w.bikes, b)
	}
	if s.SelectedBike != nil {
		w.selectedBike, err = s.SelectedBike.ToDomain()
		errList = append(errList, wrap("selectedBike", err))
	}
	if s.Period != nil {
		period, periodErr := booking.NewRentalPeriod(
			s.Period.StartDate, s.Period.StartTime, s.Period.EndDate, s.Period.EndTime, s.Period.DeliveryAddress,
		)
		w.period = &period
		errList = append(errList, wrap("period", periodErr))
	}
	if s.Partner != nil {
		w.partner, err = partner.NewPartner(s.Partner.ID, s.Partner.CompanyName, s.Partner.Address, s.Partner.MapAddress)
		errList = append(errList, wrap("partner", err))
	}
	if s.Booking != nil {
		errList = append(errList, wrap("booking", s.Booking.Validate()))
	}

	if err = errors.Join(errList...); err != nil {
		return nil, err
	}
	return w, nil
}

func locationFromDomain(l kernel.Location) LocationSnapshot {
	return LocationSnapshot{ID: l.ID(), Name: l.Name(), Address: l.Address()}
}

func (s LocationSnapshot) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(s.ID, s.Name, s.Address)
}

// FilterFromDomain converts a filter for transport or storage.
func FilterFromDomain(f bike.Filter) FilterSnapshot {
	return FilterSnapshot{Type: f.Type, MinPrice: f.MinPrice, MaxPrice: f.MaxPrice, Sort: string(f.Sort)}
}

func (s FilterSnapshot) ToDomain() (bike.Filter, error) {
	return bike.NewFilter(s.Type, s.MinPrice, s.MaxPrice, s.Sort)
}

// BikeFromDomain converts a bike for transport or storage.
func BikeFromDomain(b *bike.Bike) BikeSnapshot {
	pricing := b.Pricing()
	s := BikeSnapshot{
		ID:         b.ID(),
		Name:       b.Name(),
		Type:       b.Type(),
		LocationID: b.LocationID(),
		Rating:     b.Rating(),
		PerDay:     pricing.PerDay(),
	}
	if v, ok := pricing.Weekly(); ok {
		s.Weekly = &v
	}
	if v, ok := pricing.Monthly(); ok {
		s.Monthly = &v
	}
	if v, ok := pricing.DeliveryFee(); ok {
		s.DeliveryFee = &v
	}
	return s
}

func (s BikeSnapshot) ToDomain() (*bike.Bike, error) {
	var opts []bike.PricingOption
	if s.Weekly != nil {
		opts = append(opts, bike.WithWeekly(*s.Weekly))
	}
	if s.Monthly != nil {
		opts = append(opts, bike.WithMonthly(*s.Monthly))
	}
	if s.DeliveryFee != nil {
		opts = append(opts, bike.WithDeliveryFee(*s.DeliveryFee))
	}

	pricing, err := bike.NewPricing(s.PerDay, opts...)
	if err != nil {
		return nil, err
	}
	return bike.NewBike(s.ID, s.Name, s.Type, s.LocationID, s.Rating, pricing)
}

func wrap(part string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", part, err)
}
