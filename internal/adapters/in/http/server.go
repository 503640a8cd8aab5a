// Package http exposes the booking wizard as a JSON API on echo. Every
// user interaction is one request against a wizard session; mutating
// endpoints answer with the refreshed wizard view.
package http

import (
	"context"
	"net/http"

	"bikerental/internal/core/application/usecases/commands"
	"bikerental/internal/core/application/usecases/queries"
	"bikerental/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type commandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type queryHandler[Q any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	StartWizard             commandHandler[commands.StartWizardCommand]
	SelectLocations         commandHandler[commands.SelectLocationsCommand]
	RefreshBikes            commandHandler[commands.RefreshBikesCommand]
	SelectBike              commandHandler[commands.SelectBikeCommand]
	SetRentalPeriod         commandHandler[commands.SetRentalPeriodCommand]
	SelectDropoffPartner    commandHandler[commands.SelectDropoffPartnerCommand]
	ConfirmBooking          queryHandler[commands.ConfirmBookingCommand, commands.ConfirmBookingResult]
	ResumeWizard            queryHandler[commands.ResumeWizardCommand, kernel.UUID]
	GoBack                  commandHandler[commands.GoBackCommand]
	ChooseDifferentLocation commandHandler[commands.ChooseDifferentLocationCommand]
	DismissError            commandHandler[commands.DismissErrorCommand]
	CloseWizard             commandHandler[commands.CloseWizardCommand]

	GetWizard        queryHandler[queries.GetWizardQuery, queries.GetWizardQueryResponse]
	GetBikeEstimates queryHandler[queries.GetBikeEstimatesQuery, []queries.GetBikeEstimatesQueryResponse]
}

// countdownCanceller stops a running redirect countdown.
type countdownCanceller interface {
	Cancel(wizardID kernel.UUID)
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	handlers   Handlers
	countdowns countdownCanceller
}

func NewServer(handlers Handlers, countdowns countdownCanceller) *Server {
	return &Server{
		handlers:   handlers,
		countdowns: countdowns,
	}
}

// RegisterRoutes mounts the wizard API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/wizards", s.StartWizard)
	api.POST("/wizards/resume", s.ResumeWizard)
	api.GET("/wizards/:id", s.GetWizard)
	api.DELETE("/wizards/:id", s.CloseWizard)
	api.GET("/wizards/:id/estimates", s.GetBikeEstimates)
	api.PUT("/wizards/:id/locations", s.SelectLocations)
	api.PUT("/wizards/:id/filter", s.RefreshBikes)
	api.PUT("/wizards/:id/bike", s.SelectBike)
	api.PUT("/wizards/:id/period", s.SetRentalPeriod)
	api.PUT("/wizards/:id/partner", s.SelectDropoffPartner)
	api.POST("/wizards/:id/confirm", s.ConfirmBooking)
	api.POST("/wizards/:id/back", s.GoBack)
	api.POST("/wizards/:id/reset-location", s.ChooseDifferentLocation)
	api.DELETE("/wizards/:id/error", s.DismissError)
}
