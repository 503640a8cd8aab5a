package queries

import (
	"context"
	"encoding/json"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/domain/services"
	"bikerental/internal/pkg/errs"

	"gorm.io/gorm"
)

// CountdownReader reports the seconds left on a running redirect countdown.
type CountdownReader interface {
	Remaining(wizardID kernel.UUID) (int, bool)
}

// GetWizardQueryHandler reads the wizard row directly and builds the view
// model, bypassing the repository.
type GetWizardQueryHandler struct {
	db         *gorm.DB
	calculator services.PriceCalculator
	countdowns CountdownReader
	redirectTo string
}

func NewGetWizardQueryHandler(db *gorm.DB, countdowns CountdownReader, redirectTo string) GetWizardQueryHandler {
	return GetWizardQueryHandler{
		db:         db,
		calculator: services.NewPriceCalculator(),
		countdowns: countdowns,
		redirectTo: redirectTo,
	}
}

func (h GetWizardQueryHandler) Handle(ctx context.Context, query GetWizardQuery) (GetWizardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWizardQueryResponse{}, err
	}

	w, err := h.load(ctx, query.WizardID())
	if err != nil {
		return GetWizardQueryResponse{}, err
	}

	s := w.Snapshot()
	resp := GetWizardQueryResponse{
		ID:           s.ID,
		Version:      s.Version,
		Step:         int(s.Step),
		StepName:     s.Step.String(),
		View:         string(w.View()),
		Pickup:       s.Pickup,
		Dropoff:      s.Dropoff,
		Filter:       s.Filter,
		Bikes:        s.Bikes,
		BikesLoading: s.BikesLoading,
		Submitting:   s.Submitting,
		Period:       s.Period,
		Partner:      s.Partner,
		Booking:      s.Booking,
		ErrorMessage: s.ErrorMessage,
	}
	if resp.Bikes == nil {
		resp.Bikes = []wizard.BikeSnapshot{}
	}
	if s.SelectedBike != nil {
		resp.SelectedBikeID = s.SelectedBike.ID
	}
	if w.Partner() != nil {
		resp.DropoffLabel = w.DropoffLabel()
	}

	if period, ok := w.RentalPeriod(); ok && w.SelectedBike() != nil {
		if quote, quoteErr := h.calculator.Quote(w.SelectedBike(), period); quoteErr == nil {
			resp.Quote = &quote
		}
	}

	if w.View() == wizard.ViewBookingSucceeded && h.countdowns != nil {
		if remaining, ok := h.countdowns.Remaining(w.ID()); ok {
			resp.Redirect = &Redirect{To: h.redirectTo, SecondsRemaining: remaining}
		}
	}

	return resp, nil
}

func (h GetWizardQueryHandler) load(ctx context.Context, id kernel.UUID) (*wizard.Wizard, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			version,
			state
		FROM wizards
		WHERE id = ?
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("wizard", id.String())
	}

	var version int64
	var state string
	if err = rows.Scan(&version, &state); err != nil {
		return nil, err
	}

	var s wizard.Snapshot
	if err = json.Unmarshal([]byte(state), &s); err != nil {
		return nil, err
	}
	s.ID = id.String()
	s.Version = version

	return wizard.RestoreWizard(s)
}
