package queries_test

import (
	"context"
	"testing"
	"time"

	"bikerental/internal/adapters/out/postgres/wizardrepo"
	"bikerental/internal/core/application/usecases/queries"
	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/partner"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type fixedCountdowns map[kernel.UUID]int

func (f fixedCountdowns) Remaining(id kernel.UUID) (int, bool) {
	v, ok := f[id]
	return v, ok
}

type QueryHandlersTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repo       *wizardrepo.GormWizardRepository
	countdowns fixedCountdowns
	wizard     queries.GetWizardQueryHandler
	estimates  queries.GetBikeEstimatesQueryHandler
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&wizardrepo.WizardDTO{}))

	suite.repo = wizardrepo.NewGormWizardRepository(db, &mockAggregateTracker{})
	suite.countdowns = fixedCountdowns{}
	suite.wizard = queries.NewGetWizardQueryHandler(db, suite.countdowns, "/dashboard")
	suite.estimates = queries.NewGetBikeEstimatesQueryHandler(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE wizards").Error)
	for id := range suite.countdowns {
		delete(suite.countdowns, id)
	}
}

func (suite *QueryHandlersTestSuite) TestGetWizard_FreshWizard() {
	w := suite.store(suite.newWizard())

	view := suite.getWizard(w.ID())

	suite.Equal(w.ID().String(), view.ID)
	suite.Equal(int64(1), view.Version)
	suite.Equal(1, view.Step)
	suite.Equal("SelectLocations", view.StepName)
	suite.Equal("steps", view.View)
	suite.NotNil(view.Bikes)
	suite.Empty(view.Bikes)
	suite.Nil(view.Quote)
	suite.Nil(view.Redirect)
}

func (suite *QueryHandlersTestSuite) TestGetWizard_ConfirmStepCarriesQuote() {
	w := suite.store(suite.confirmStepWizard())

	view := suite.getWizard(w.ID())

	suite.Equal(5, view.Step)
	suite.Equal("b-1", view.SelectedBikeID)
	suite.Equal("Acme - Dock 4", view.DropoffLabel)
	suite.Require().NotNil(view.Quote)
	suite.Equal(3, view.Quote.Days)
	suite.Equal(int64(3000), view.Quote.Subtotal)
	suite.Equal(int64(200), view.Quote.DeliveryFee)
	suite.Equal(int64(3200), view.Quote.Total)
}

func (suite *QueryHandlersTestSuite) TestGetWizard_NoBikesAvailable() {
	w := suite.newWizard()
	pickup, dropoff := suite.locations()
	suite.Require().NoError(w.Apply(wizard.LocationsSelected{Pickup: pickup, Dropoff: dropoff}))
	suite.Require().NoError(w.Apply(wizard.BikesLoaded{Token: w.FetchToken(), Bikes: nil}))
	suite.store(w)

	view := suite.getWizard(w.ID())

	suite.Equal("no-bikes-available", view.View)
}

func (suite *QueryHandlersTestSuite) TestGetWizard_SucceededWithCountdown() {
	w := suite.confirmStepWizard()
	suite.Require().NoError(w.Apply(wizard.SubmissionStarted{At: time.Now()}))
	suite.Require().NoError(w.Apply(wizard.BookingSubmitted{Token: w.SubmissionToken(), Booking: &booking.Booking{
		ID:              "bk-1",
		Status:          "pending",
		BikeID:          "b-1",
		TotalPrice:      3200,
		DropoffLocation: "Acme - Dock 4",
	}}))
	suite.store(w)
	suite.countdowns[w.ID()] = 3

	view := suite.getWizard(w.ID())

	suite.Equal("booking-succeeded", view.View)
	suite.Require().NotNil(view.Booking)
	suite.Equal("bk-1", view.Booking.ID)
	suite.Require().NotNil(view.Redirect)
	suite.Equal("/dashboard", view.Redirect.To)
	suite.Equal(3, view.Redirect.SecondsRemaining)
}

func (suite *QueryHandlersTestSuite) TestGetWizard_UnknownWizard() {
	query, err := queries.NewGetWizardQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.wizard.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetBikeEstimates_UsesFallbacks() {
	w := suite.newWizard()
	pickup, dropoff := suite.locations()
	suite.Require().NoError(w.Apply(wizard.LocationsSelected{Pickup: pickup, Dropoff: dropoff}))

	plain, err := bike.NewPricing(1000)
	suite.Require().NoError(err)
	discounted, err := bike.NewPricing(1000, bike.WithWeekly(5000), bike.WithMonthly(18000))
	suite.Require().NoError(err)
	b1, err := bike.NewBike("b-1", "Plain", "city", "loc-1", 4, plain)
	suite.Require().NoError(err)
	b2, err := bike.NewBike("b-2", "Discounted", "city", "loc-1", 4, discounted)
	suite.Require().NoError(err)
	suite.Require().NoError(w.Apply(wizard.BikesLoaded{Token: w.FetchToken(), Bikes: []*bike.Bike{b1, b2}}))
	suite.store(w)

	estimates := suite.getEstimates(w.ID())

	suite.Equal([]queries.GetBikeEstimatesQueryResponse{
		{BikeID: "b-1", Name: "Plain", PerDay: 1000, Weekly: 6000, Monthly: 25000},
		{BikeID: "b-2", Name: "Discounted", PerDay: 1000, Weekly: 5000, Monthly: 18000},
	}, estimates)
}

func (suite *QueryHandlersTestSuite) TestGetBikeEstimates_NoBikesLoaded() {
	w := suite.store(suite.newWizard())

	estimates := suite.getEstimates(w.ID())

	suite.NotNil(estimates)
	suite.Empty(estimates)
}

func (suite *QueryHandlersTestSuite) TestGetBikeEstimates_UnknownWizard() {
	query, err := queries.NewGetBikeEstimatesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.estimates.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) getWizard(id kernel.UUID) queries.GetWizardQueryResponse {
	query, err := queries.NewGetWizardQuery(id)
	suite.Require().NoError(err)
	view, err := suite.wizard.Handle(context.Background(), query)
	suite.Require().NoError(err)
	return view
}

func (suite *QueryHandlersTestSuite) getEstimates(id kernel.UUID) []queries.GetBikeEstimatesQueryResponse {
	query, err := queries.NewGetBikeEstimatesQuery(id)
	suite.Require().NoError(err)
	estimates, err := suite.estimates.Handle(context.Background(), query)
	suite.Require().NoError(err)
	return estimates
}

func (suite *QueryHandlersTestSuite) store(w *wizard.Wizard) *wizard.Wizard {
	suite.Require().NoError(suite.repo.Add(context.Background(), w))
	return w
}

func (suite *QueryHandlersTestSuite) newWizard() *wizard.Wizard {
	w, err := wizard.NewWizard(kernel.NewUUID())
	suite.Require().NoError(err)
	return w
}

func (suite *QueryHandlersTestSuite) locations() (kernel.Location, kernel.Location) {
	pickup, err := kernel.NewLocation("loc-1", "Central", "Main st 1")
	suite.Require().NoError(err)
	dropoff, err := kernel.NewLocation("loc-2", "Harbour", "")
	suite.Require().NoError(err)
	return pickup, dropoff
}

func (suite *QueryHandlersTestSuite) confirmStepWizard() *wizard.Wizard {
	w := suite.newWizard()
	pickup, dropoff := suite.locations()
	suite.Require().NoError(w.Apply(wizard.LocationsSelected{Pickup: pickup, Dropoff: dropoff}))

	pricing, err := bike.NewPricing(1000, bike.WithDeliveryFee(200))
	suite.Require().NoError(err)
	b, err := bike.NewBike("b-1", "Bike b-1", "city", "loc-1", 4.5, pricing)
	suite.Require().NoError(err)
	suite.Require().NoError(w.Apply(wizard.BikesLoaded{Token: w.FetchToken(), Bikes: []*bike.Bike{b}}))
	suite.Require().NoError(w.Apply(wizard.BikeSelected{BikeID: "b-1"}))

	period, err := booking.NewRentalPeriod("2024-01-01", "10:00", "2024-01-04", "10:00", "Main st 1")
	suite.Require().NoError(err)
	suite.Require().NoError(w.Apply(wizard.RentalPeriodSet{Period: period}))

	p, err := partner.NewPartner("p-1", "Acme", "Dock 4", "")
	suite.Require().NoError(err)
	suite.Require().NoError(w.Apply(wizard.DropoffResolved{Partner: p}))
	return w
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
