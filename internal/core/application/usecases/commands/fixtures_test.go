package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/partner"
	"bikerental/internal/core/domain/model/wizard"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBike(t *testing.T, id string) *bike.Bike {
	t.Helper()
	pricing, err := bike.NewPricing(1000, bike.WithDeliveryFee(200))
	require.NoError(t, err)
	b, err := bike.NewBike(id, "Bike "+id, "city", "loc-1", 4.5, pricing)
	require.NoError(t, err)
	return b
}

func testLocations(t *testing.T) (kernel.Location, kernel.Location) {
	t.Helper()
	pickup, err := kernel.NewLocation("loc-1", "Central", "Main st 1")
	require.NoError(t, err)
	dropoff, err := kernel.NewLocation("loc-2", "Harbour", "")
	require.NoError(t, err)
	return pickup, dropoff
}

func testPartner(t *testing.T) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner("p-1", "Acme", "Dock 4", "")
	require.NoError(t, err)
	return p
}

func newTestWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	w, err := wizard.NewWizard(kernel.NewUUID())
	require.NoError(t, err)
	return w
}

// confirmStepWizard is a wizard on step 5: bike b-1 for 3 days from
// 2024-01-01 10:00 with delivery, dropping off at Acme.
func confirmStepWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	w := newTestWizard(t)
	pickup, dropoff := testLocations(t)
	require.NoError(t, w.Apply(wizard.LocationsSelected{Pickup: pickup, Dropoff: dropoff}))
	require.NoError(t, w.Apply(wizard.BikesLoaded{Token: w.FetchToken(), Bikes: []*bike.Bike{testBike(t, "b-1")}}))
	require.NoError(t, w.Apply(wizard.BikeSelected{BikeID: "b-1"}))
	period, err := booking.NewRentalPeriod("2024-01-01", "10:00", "2024-01-04", "10:00", "Main st 1")
	require.NoError(t, err)
	require.NoError(t, w.Apply(wizard.RentalPeriodSet{Period: period}))
	require.NoError(t, w.Apply(wizard.DropoffResolved{Partner: testPartner(t)}))
	return w
}

// partnerStepWizard is confirmStepWizard one step back.
func partnerStepWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	w := confirmStepWizard(t)
	require.NoError(t, w.Apply(wizard.SteppedBack{}))
	return w
}
