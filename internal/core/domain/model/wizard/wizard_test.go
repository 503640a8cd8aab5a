package wizard_test

import (
	"testing"
	"time"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/partner"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBike(t *testing.T, id string) *bike.Bike {
	t.Helper()
	pricing, err := bike.NewPricing(1000, bike.WithDeliveryFee(200))
	require.NoError(t, err)
	b, err := bike.NewBike(id, "Bike "+id, "city", "loc-1", 4, pricing)
	require.NoError(t, err)
	return b
}

func locations(t *testing.T) wizard.LocationsSelected {
	t.Helper()
	pickup, err := kernel.NewLocation("loc-1", "Central", "Main st 1")
	require.NoError(t, err)
	dropoff, err := kernel.NewLocation("loc-2", "Harbour", "")
	require.NoError(t, err)
	return wizard.LocationsSelected{Pickup: pickup, Dropoff: dropoff}
}

func newWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	w, err := wizard.NewWizard(kernel.NewUUID())
	require.NoError(t, err)
	return w
}

// onBikeStep returns a wizard on step 2 with the given bikes loaded.
func onBikeStep(t *testing.T, bikes ...*bike.Bike) *wizard.Wizard {
	t.Helper()
	w := newWizard(t)
	require.NoError(t, w.Apply(locations(t)))
	require.NoError(t, w.Apply(wizard.BikesLoaded{Token: w.FetchToken(), Bikes: bikes}))
	return w
}

// onConfirmStep returns a wizard on step 5 with every field set.
func onConfirmStep(t *testing.T) *wizard.Wizard {
	t.Helper()
	w := onBikeStep(t, newBike(t, "b-1"), newBike(t, "b-2"))
	require.NoError(t, w.Apply(wizard.BikeSelected{BikeID: "b-2"}))
	period, err := booking.NewRentalPeriod("2024-01-01", "09:00", "2024-01-03", "", "Main st 1")
	require.NoError(t, err)
	require.NoError(t, w.Apply(wizard.RentalPeriodSet{Period: period}))
	p, err := partner.NewPartner("p-1", "Acme", "", "Dock 4")
	require.NoError(t, err)
	require.NoError(t, w.Apply(wizard.DropoffResolved{Partner: p}))
	return w
}

var submissionStart = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// startSubmission marks w as waiting for the gateway and returns the token.
func startSubmission(t *testing.T, w *wizard.Wizard) uint64 {
	t.Helper()
	require.NoError(t, w.Apply(wizard.SubmissionStarted{At: submissionStart}))
	return w.SubmissionToken()
}

func TestNewWizard(t *testing.T) {
	t.Run("should start on location selection", func(t *testing.T) {
		w := newWizard(t)

		assert.Equal(t, wizard.SelectLocations, w.Step())
		assert.Equal(t, wizard.ViewSteps, w.View())
		assert.Zero(t, w.FetchToken())
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := wizard.NewWizard(kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		w := &wizard.Wizard{}

		require.ErrorIs(t, w.Apply(wizard.ErrorDismissed{}), wizard.ErrWizardIsNotConstructed)
	})
}

func TestWizard_ForwardFlow(t *testing.T) {
	w := onConfirmStep(t)

	assert.Equal(t, wizard.Confirm, w.Step())
	pickup, ok := w.Pickup()
	require.True(t, ok)
	assert.Equal(t, "loc-1", pickup.ID())
	assert.Equal(t, "b-2", w.SelectedBike().ID())
	period, ok := w.RentalPeriod()
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", period.StartDate())
	assert.Equal(t, "Acme - Dock 4", w.DropoffLabel())
}

func TestWizard_LocationsSelected(t *testing.T) {
	t.Run("should advance and start a fetch", func(t *testing.T) {
		w := newWizard(t)

		require.NoError(t, w.Apply(locations(t)))

		assert.Equal(t, wizard.SelectBike, w.Step())
		assert.True(t, w.BikesLoading())
		assert.Equal(t, uint64(1), w.FetchToken())
		assert.Equal(t, wizard.ViewSteps, w.View())
	})

	t.Run("should reject unconstructed locations", func(t *testing.T) {
		w := newWizard(t)

		err := w.Apply(wizard.LocationsSelected{})

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
		assert.Equal(t, wizard.SelectLocations, w.Step())
	})

	t.Run("should reject on other steps", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))

		err := w.Apply(locations(t))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWizard_BikeFetch(t *testing.T) {
	t.Run("should show bikes when at least one is loaded", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))

		assert.Equal(t, wizard.ViewSteps, w.View())
		assert.Len(t, w.Bikes(), 1)
		assert.False(t, w.BikesLoading())
	})

	t.Run("should show no bikes available for empty result", func(t *testing.T) {
		w := onBikeStep(t)

		assert.Equal(t, wizard.ViewNoBikesAvailable, w.View())
	})

	t.Run("should not show no bikes while a fetch is in flight", func(t *testing.T) {
		w := onBikeStep(t)

		require.NoError(t, w.Apply(wizard.BikesRequested{Filter: bike.Filter{Sort: bike.SortRating}}))

		assert.Equal(t, wizard.ViewSteps, w.View())
		assert.Equal(t, bike.SortRating, w.Filter().Sort)
	})

	t.Run("should discard result of a superseded fetch", func(t *testing.T) {
		w := newWizard(t)
		require.NoError(t, w.Apply(locations(t)))
		staleToken := w.FetchToken()
		require.NoError(t, w.Apply(wizard.BikesRequested{Filter: bike.Filter{Type: "cargo"}}))

		err := w.Apply(wizard.BikesLoaded{Token: staleToken, Bikes: []*bike.Bike{newBike(t, "old")}})

		require.ErrorIs(t, err, wizard.ErrFetchIsStale)
		assert.Empty(t, w.Bikes())
		assert.True(t, w.BikesLoading())
	})

	t.Run("should discard result arriving after back and forward navigation", func(t *testing.T) {
		w := newWizard(t)
		require.NoError(t, w.Apply(locations(t)))
		slowToken := w.FetchToken()
		require.NoError(t, w.Apply(wizard.SteppedBack{}))
		require.NoError(t, w.Apply(locations(t)))

		err := w.Apply(wizard.BikesLoaded{Token: slowToken})

		require.ErrorIs(t, err, wizard.ErrFetchIsStale)
		require.NoError(t, w.Apply(wizard.BikesLoaded{Token: w.FetchToken(), Bikes: []*bike.Bike{newBike(t, "b-1")}}))
		assert.Len(t, w.Bikes(), 1)
	})

	t.Run("should keep step and show error on failure", func(t *testing.T) {
		w := newWizard(t)
		require.NoError(t, w.Apply(locations(t)))

		require.NoError(t, w.Apply(wizard.BikesFailed{Token: w.FetchToken(), Message: "catalog down"}))

		assert.Equal(t, wizard.SelectBike, w.Step())
		assert.Equal(t, "catalog down", w.ErrorMessage())
		assert.False(t, w.BikesLoading())
		assert.Equal(t, wizard.ViewSteps, w.View())

		require.NoError(t, w.Apply(wizard.ErrorDismissed{}))
		assert.Empty(t, w.ErrorMessage())
	})

	t.Run("should reject invalid filter", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))
		token := w.FetchToken()
		minPrice, maxPrice := int64(500), int64(100)

		err := w.Apply(wizard.BikesRequested{Filter: bike.Filter{MinPrice: &minPrice, MaxPrice: &maxPrice}})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, token, w.FetchToken())
	})
}

func TestWizard_BikeSelected(t *testing.T) {
	t.Run("should reject bike not in the list", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))

		err := w.Apply(wizard.BikeSelected{BikeID: "b-9"})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, wizard.SelectBike, w.Step())
	})

	t.Run("should make late results stale", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))
		require.NoError(t, w.Apply(wizard.BikesRequested{Filter: bike.Filter{Type: "city"}}))
		token := w.FetchToken()

		require.NoError(t, w.Apply(wizard.BikeSelected{BikeID: "b-1"}))

		require.ErrorIs(t, w.Apply(wizard.BikesLoaded{Token: token}), wizard.ErrFetchIsStale)
		assert.Equal(t, wizard.SetRentalPeriod, w.Step())
	})
}

func TestWizard_SteppedBack(t *testing.T) {
	t.Run("should keep fields when going back and forward", func(t *testing.T) {
		w := onConfirmStep(t)
		before := w.Snapshot()

		require.NoError(t, w.Apply(wizard.SteppedBack{}))
		assert.Equal(t, wizard.SelectDropoffPartner, w.Step())
		require.NoError(t, w.Apply(wizard.SteppedBack{}))
		assert.Equal(t, wizard.SetRentalPeriod, w.Step())

		period, ok := w.RentalPeriod()
		require.True(t, ok)
		require.NoError(t, w.Apply(wizard.RentalPeriodSet{Period: period}))
		require.NoError(t, w.Apply(wizard.DropoffResolved{Partner: w.Partner()}))

		after := w.Snapshot()
		assert.Equal(t, before.Period, after.Period)
		assert.Equal(t, before.SelectedBike, after.SelectedBike)
		assert.Equal(t, before.Partner, after.Partner)
		assert.Equal(t, before.Pickup, after.Pickup)
		assert.Equal(t, wizard.Confirm, w.Step())
	})

	t.Run("should keep selected bike through a refetch", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"), newBike(t, "b-2"))
		require.NoError(t, w.Apply(wizard.BikeSelected{BikeID: "b-2"}))
		require.NoError(t, w.Apply(wizard.SteppedBack{}))
		require.NoError(t, w.Apply(wizard.SteppedBack{}))
		require.NoError(t, w.Apply(locations(t)))

		require.NoError(t, w.Apply(wizard.BikesLoaded{
			Token: w.FetchToken(),
			Bikes: []*bike.Bike{newBike(t, "b-1"), newBike(t, "b-2")},
		}))

		require.NotNil(t, w.SelectedBike())
		assert.Equal(t, "b-2", w.SelectedBike().ID())
	})

	t.Run("should not go back from first step", func(t *testing.T) {
		w := newWizard(t)

		require.ErrorIs(t, w.Apply(wizard.SteppedBack{}), errs.ErrValueIsInvalid)
	})

	t.Run("should not go back from no bikes available", func(t *testing.T) {
		w := onBikeStep(t)

		require.ErrorIs(t, w.Apply(wizard.SteppedBack{}), errs.ErrValueIsInvalid)
		assert.Equal(t, wizard.ViewNoBikesAvailable, w.View())
	})
}

func TestWizard_LocationReset(t *testing.T) {
	t.Run("should return to location selection", func(t *testing.T) {
		w := onBikeStep(t)

		require.NoError(t, w.Apply(wizard.LocationReset{}))

		assert.Equal(t, wizard.SelectLocations, w.Step())
		assert.Equal(t, wizard.ViewSteps, w.View())
		assert.False(t, w.BikesLoaded())
	})

	t.Run("should only be allowed on no bikes available", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))

		require.ErrorIs(t, w.Apply(wizard.LocationReset{}), errs.ErrValueIsInvalid)
	})
}

func TestWizard_RentalPeriodSet(t *testing.T) {
	t.Run("should reject unconstructed period", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))
		require.NoError(t, w.Apply(wizard.BikeSelected{BikeID: "b-1"}))

		err := w.Apply(wizard.RentalPeriodSet{})

		require.ErrorIs(t, err, booking.ErrRentalPeriodIsNotConstructed)
		assert.Equal(t, wizard.SetRentalPeriod, w.Step())
	})
}

func TestWizard_Dropoff(t *testing.T) {
	t.Run("should stay on step and keep state when resolution fails", func(t *testing.T) {
		w := onConfirmStep(t)
		require.NoError(t, w.Apply(wizard.SteppedBack{}))

		require.NoError(t, w.Apply(wizard.DropoffFailed{Message: "partner not found"}))

		assert.Equal(t, wizard.SelectDropoffPartner, w.Step())
		assert.Equal(t, "partner not found", w.ErrorMessage())
		assert.NotNil(t, w.SelectedBike())
	})

	t.Run("should reject unconstructed partner", func(t *testing.T) {
		w := onConfirmStep(t)
		require.NoError(t, w.Apply(wizard.SteppedBack{}))

		require.ErrorIs(t, w.Apply(wizard.DropoffResolved{}), partner.ErrPartnerIsNotConstructed)
	})
}

func TestWizard_Submission(t *testing.T) {
	t.Run("should keep state after failure", func(t *testing.T) {
		w := onConfirmStep(t)
		token := startSubmission(t, w)

		require.NoError(t, w.Apply(wizard.SubmissionFailed{Token: token, Message: "bike already booked"}))

		assert.Equal(t, wizard.Confirm, w.Step())
		assert.False(t, w.Submitting())
		assert.Equal(t, "bike already booked", w.ErrorMessage())
		assert.Equal(t, wizard.ViewSteps, w.View())
	})

	t.Run("should succeed and become terminal", func(t *testing.T) {
		w := onConfirmStep(t)
		first := startSubmission(t, w)
		require.NoError(t, w.Apply(wizard.SubmissionFailed{Token: first, Message: "retry"}))
		second := startSubmission(t, w)

		require.NoError(t, w.Apply(wizard.BookingSubmitted{Token: second, Booking: &booking.Booking{ID: "bk-1"}}))

		assert.NotEqual(t, first, second)
		assert.Equal(t, wizard.ViewBookingSucceeded, w.View())
		assert.False(t, w.Submitting())
		assert.Empty(t, w.ErrorMessage())
		assert.Equal(t, "bk-1", w.Booking().ID)
		require.ErrorIs(t, w.Apply(wizard.SteppedBack{}), wizard.ErrBookingIsCompleted)
		require.NoError(t, w.Apply(wizard.ErrorDismissed{}))
	})

	t.Run("should reject submission before confirm step", func(t *testing.T) {
		w := onBikeStep(t, newBike(t, "b-1"))

		err := w.Apply(wizard.SubmissionStarted{At: submissionStart})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, w.Submitting())
	})

	t.Run("should block changes while pending", func(t *testing.T) {
		w := onConfirmStep(t)
		token := startSubmission(t, w)

		for _, event := range []wizard.Event{
			wizard.SubmissionStarted{At: submissionStart.Add(time.Second)},
			wizard.SteppedBack{},
			wizard.LocationReset{},
			wizard.BikeSelected{BikeID: "b-1"},
		} {
			require.ErrorIs(t, w.Apply(event), wizard.ErrSubmissionIsPending)
		}
		require.NoError(t, w.Apply(wizard.ErrorDismissed{}))

		assert.Equal(t, wizard.Confirm, w.Step())
		assert.True(t, w.Submitting())
		assert.Equal(t, token, w.SubmissionToken())
	})

	t.Run("should reject results without a pending submission", func(t *testing.T) {
		w := onConfirmStep(t)

		err := w.Apply(wizard.BookingSubmitted{Token: w.SubmissionToken(), Booking: &booking.Booking{ID: "bk-1"}})

		require.ErrorIs(t, err, wizard.ErrSubmissionIsStale)
		assert.Nil(t, w.Booking())
	})

	t.Run("should reject results of an earlier submission", func(t *testing.T) {
		w := onConfirmStep(t)
		first := startSubmission(t, w)
		require.NoError(t, w.Apply(wizard.SubmissionFailed{Token: first, Message: "retry"}))
		startSubmission(t, w)

		err := w.Apply(wizard.BookingSubmitted{Token: first, Booking: &booking.Booking{ID: "bk-1"}})

		require.ErrorIs(t, err, wizard.ErrSubmissionIsStale)
		assert.True(t, w.Submitting())
		assert.Nil(t, w.Booking())
	})

	t.Run("should let a new submission take over an expired lease", func(t *testing.T) {
		w := onConfirmStep(t)
		abandoned := startSubmission(t, w)

		require.NoError(t, w.Apply(wizard.SubmissionStarted{At: submissionStart.Add(wizard.SubmissionLease)}))

		assert.True(t, w.Submitting())
		require.ErrorIs(t, w.Apply(wizard.SubmissionFailed{Token: abandoned, Message: "late"}), wizard.ErrSubmissionIsStale)
		require.NoError(t, w.Apply(wizard.BookingSubmitted{Token: w.SubmissionToken(), Booking: &booking.Booking{ID: "bk-2"}}))
		assert.Equal(t, "bk-2", w.Booking().ID)
	})
}

func TestWizard_RequireStep(t *testing.T) {
	w := onConfirmStep(t)

	require.NoError(t, w.RequireStep(wizard.Confirm, "submit"))
	require.ErrorIs(t, w.RequireStep(wizard.SelectBike, "select a bike"), errs.ErrValueIsInvalid)

	token := startSubmission(t, w)
	require.NoError(t, w.Apply(wizard.BookingSubmitted{Token: token, Booking: &booking.Booking{ID: "bk-1"}}))
	require.ErrorIs(t, w.RequireStep(wizard.Confirm, "submit"), wizard.ErrBookingIsCompleted)
}
