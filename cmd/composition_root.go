package cmd

import (
	"log/slog"
	"time"

	api "bikerental/internal/adapters/in/http"
	"bikerental/internal/adapters/out/postgres"
	"bikerental/internal/adapters/out/redis"
	"bikerental/internal/adapters/out/rest"
	"bikerental/internal/core/application/usecases/commands"
	"bikerental/internal/core/application/usecases/queries"
	"bikerental/internal/core/ports"
	"bikerental/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	backendBurst = 5
	redirectTick = time.Second
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	auth      *api.JWTAuth
	parked    ports.ParkedWizardStore
	notifier  ports.Notifier
	catalog   ports.CatalogService
	partners  ports.PartnerDirectory
	gateway   ports.BookingGateway
	redirects *jobs.RedirectScheduler
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	rdb *goredis.Client,
	notifier ports.Notifier,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	backend, err := rest.NewClient(rest.ClientConfig{
		BaseURL:   configs.BackendBaseURL,
		Timeout:   configs.BackendTimeout,
		RateLimit: configs.BackendRateLimit,
		Burst:     backendBurst,
	}, logger)
	if err != nil {
		return nil, err
	}

	auth, err := api.NewJWTAuth(configs.JWTSecret, configs.LoginURL, logger)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		auth:       auth,
		parked:     redis.NewParkedWizardStore(rdb),
		notifier:   notifier,
		catalog:    rest.NewCatalogClient(backend),
		partners:   rest.NewPartnerClient(backend),
		gateway:    rest.NewBookingClient(backend),
	}

	closer := c.CreateCloseWizardCommandHandler()
	c.redirects, err = jobs.NewRedirectScheduler(&closer, configs.RedirectCountdownSeconds, redirectTick, logger)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) Auth() *api.JWTAuth {
	return c.auth
}

func (c *CompositionRoot) Redirects() *jobs.RedirectScheduler {
	return c.redirects
}

func (c *CompositionRoot) wizardUoWFactory() commands.WizardUoWFactory {
	return FuncWizardUoWFactory(func() commands.WizardUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStartWizardCommandHandler() commands.StartWizardCommandHandler {
	return commands.NewStartWizardCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreateSelectLocationsCommandHandler() commands.SelectLocationsCommandHandler {
	return commands.NewSelectLocationsCommandHandler(c.wizardUoWFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateRefreshBikesCommandHandler() commands.RefreshBikesCommandHandler {
	return commands.NewRefreshBikesCommandHandler(c.wizardUoWFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateSelectBikeCommandHandler() commands.SelectBikeCommandHandler {
	return commands.NewSelectBikeCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreateSetRentalPeriodCommandHandler() commands.SetRentalPeriodCommandHandler {
	return commands.NewSetRentalPeriodCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreateSelectDropoffPartnerCommandHandler() commands.SelectDropoffPartnerCommandHandler {
	return commands.NewSelectDropoffPartnerCommandHandler(c.wizardUoWFactory(), c.partners, c.logger)
}

func (c *CompositionRoot) CreateConfirmBookingCommandHandler() commands.ConfirmBookingCommandHandler {
	return commands.NewConfirmBookingCommandHandler(
		c.wizardUoWFactory(),
		c.auth,
		c.parked,
		c.configs.ParkedWizardTTL,
		c.gateway,
		c.notifier,
		c.redirects,
		c.logger,
	)
}

func (c *CompositionRoot) CreateResumeWizardCommandHandler() commands.ResumeWizardCommandHandler {
	return commands.NewResumeWizardCommandHandler(c.wizardUoWFactory(), c.parked, c.logger)
}

func (c *CompositionRoot) CreateGoBackCommandHandler() commands.GoBackCommandHandler {
	return commands.NewGoBackCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreateChooseDifferentLocationCommandHandler() commands.ChooseDifferentLocationCommandHandler {
	return commands.NewChooseDifferentLocationCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreateDismissErrorCommandHandler() commands.DismissErrorCommandHandler {
	return commands.NewDismissErrorCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreateCloseWizardCommandHandler() commands.CloseWizardCommandHandler {
	return commands.NewCloseWizardCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreatePurgeIdleWizardsCommandHandler() commands.PurgeIdleWizardsCommandHandler {
	return commands.NewPurgeIdleWizardsCommandHandler(c.wizardUoWFactory())
}

func (c *CompositionRoot) CreateGetWizardQueryHandler() queries.GetWizardQueryHandler {
	return queries.NewGetWizardQueryHandler(c.gormDB, c.redirects, c.configs.DashboardPath)
}

func (c *CompositionRoot) CreateGetBikeEstimatesQueryHandler() queries.GetBikeEstimatesQueryHandler {
	return queries.NewGetBikeEstimatesQueryHandler(c.gormDB)
}

// CreateHandlers wires every use case the HTTP server dispatches to.
func (c *CompositionRoot) CreateHandlers() api.Handlers {
	startWizard := c.CreateStartWizardCommandHandler()
	selectLocations := c.CreateSelectLocationsCommandHandler()
	refreshBikes := c.CreateRefreshBikesCommandHandler()
	selectBike := c.CreateSelectBikeCommandHandler()
	setRentalPeriod := c.CreateSetRentalPeriodCommandHandler()
	selectPartner := c.CreateSelectDropoffPartnerCommandHandler()
	confirmBooking := c.CreateConfirmBookingCommandHandler()
	resumeWizard := c.CreateResumeWizardCommandHandler()
	goBack := c.CreateGoBackCommandHandler()
	chooseLocation := c.CreateChooseDifferentLocationCommandHandler()
	dismissError := c.CreateDismissErrorCommandHandler()
	closeWizard := c.CreateCloseWizardCommandHandler()

	return api.Handlers{
		StartWizard:             &startWizard,
		SelectLocations:         &selectLocations,
		RefreshBikes:            &refreshBikes,
		SelectBike:              &selectBike,
		SetRentalPeriod:         &setRentalPeriod,
		SelectDropoffPartner:    &selectPartner,
		ConfirmBooking:          &confirmBooking,
		ResumeWizard:            &resumeWizard,
		GoBack:                  &goBack,
		ChooseDifferentLocation: &chooseLocation,
		DismissError:            &dismissError,
		CloseWizard:             &closeWizard,
		GetWizard:               c.CreateGetWizardQueryHandler(),
		GetBikeEstimates:        c.CreateGetBikeEstimatesQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	purge := c.CreatePurgeIdleWizardsCommandHandler()
	cleanup := jobs.NewWizardCleanupJob(&purge, jobs.DefaultCleanupSchedule, c.configs.WizardIdleTTL, c.logger)
	return jobs.NewJobManager(cleanup, c.redirects)
}

type FuncWizardUoWFactory func() commands.WizardUoW

func (f FuncWizardUoWFactory) Create() commands.WizardUoW {
	return f()
}
