package http

import (
	"errors"
	"net/http"

	"bikerental/internal/core/application/usecases/commands"
	"bikerental/internal/core/application/usecases/queries"
	"bikerental/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// StartWizard handles POST /api/v1/wizards.
func (s *Server) StartWizard(c echo.Context) error {
	id := kernel.NewUUID()
	cmd, err := commands.NewStartWizardCommand(id)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.StartWizard.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/wizards/"+id.String())
	return c.JSON(http.StatusCreated, StartWizardResponse{ID: id.String()})
}

// GetWizard handles GET /api/v1/wizards/:id.
func (s *Server) GetWizard(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}
	return s.respondView(c, id)
}

// GetBikeEstimates handles GET /api/v1/wizards/:id/estimates.
func (s *Server) GetBikeEstimates(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	query, err := queries.NewGetBikeEstimatesQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	estimates, err := s.handlers.GetBikeEstimates.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, estimates)
}

// SelectLocations handles PUT /api/v1/wizards/:id/locations.
func (s *Server) SelectLocations(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	var req SelectLocationsRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pickup, pickupErr := req.Pickup.toDomain()
	dropoff, dropoffErr := req.Dropoff.toDomain()
	if err = errors.Join(pickupErr, dropoffErr); err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewSelectLocationsCommand(id, pickup, dropoff)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.SelectLocations.Handle(c.Request().Context(), cmd)
	})
}

// RefreshBikes handles PUT /api/v1/wizards/:id/filter.
func (s *Server) RefreshBikes(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	var req FilterRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	filter, err := req.toDomain()
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewRefreshBikesCommand(id, filter)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.RefreshBikes.Handle(c.Request().Context(), cmd)
	})
}

// SelectBike handles PUT /api/v1/wizards/:id/bike.
func (s *Server) SelectBike(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	var req SelectBikeRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSelectBikeCommand(id, req.BikeID)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.SelectBike.Handle(c.Request().Context(), cmd)
	})
}

// SetRentalPeriod handles PUT /api/v1/wizards/:id/period.
func (s *Server) SetRentalPeriod(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	var req RentalPeriodRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	period, err := req.toDomain()
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewSetRentalPeriodCommand(id, period)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.SetRentalPeriod.Handle(c.Request().Context(), cmd)
	})
}

// SelectDropoffPartner handles PUT /api/v1/wizards/:id/partner.
func (s *Server) SelectDropoffPartner(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	var req SelectPartnerRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSelectDropoffPartnerCommand(id, req.PartnerID)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.SelectDropoffPartner.Handle(c.Request().Context(), cmd)
	})
}

// ConfirmBooking handles POST /api/v1/wizards/:id/confirm. Anonymous
// callers get a login URL instead of a submission.
func (s *Server) ConfirmBooking(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	var req ConfirmRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewConfirmBookingCommand(id, req.ReturnTo)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.handlers.ConfirmBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	if result.LoginURL != "" {
		return c.JSON(http.StatusOK, ConfirmResponse{LoginURL: result.LoginURL, ResumeToken: result.ResumeToken})
	}

	view, err := s.view(c, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ConfirmResponse{Booking: result.Booking, Wizard: &view})
}

// ResumeWizard handles POST /api/v1/wizards/resume, restoring a wizard
// parked before the login redirect.
func (s *Server) ResumeWizard(c echo.Context) error {
	var req ResumeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ResumeToken == "" {
		req.ResumeToken = c.QueryParam(commands.ResumeParam)
	}

	cmd, err := commands.NewResumeWizardCommand(req.ResumeToken)
	if err != nil {
		return respondError(c, err)
	}

	id, err := s.handlers.ResumeWizard.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return s.respondView(c, id)
}

// GoBack handles POST /api/v1/wizards/:id/back.
func (s *Server) GoBack(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	cmd, err := commands.NewGoBackCommand(id)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.GoBack.Handle(c.Request().Context(), cmd)
	})
}

// ChooseDifferentLocation handles POST /api/v1/wizards/:id/reset-location.
func (s *Server) ChooseDifferentLocation(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	cmd, err := commands.NewChooseDifferentLocationCommand(id)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.ChooseDifferentLocation.Handle(c.Request().Context(), cmd)
	})
}

// DismissError handles DELETE /api/v1/wizards/:id/error.
func (s *Server) DismissError(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	cmd, err := commands.NewDismissErrorCommand(id)
	if err != nil {
		return respondError(c, err)
	}

	return s.dispatch(c, id, func() error {
		return s.handlers.DismissError.Handle(c.Request().Context(), cmd)
	})
}

// CloseWizard handles DELETE /api/v1/wizards/:id. Navigating away from the
// success screen lands here too, so a running countdown is cancelled first.
func (s *Server) CloseWizard(c echo.Context) error {
	id, err := wizardID(c)
	if err != nil {
		return badRequest(c, "Invalid wizard id")
	}

	cmd, err := commands.NewCloseWizardCommand(id)
	if err != nil {
		return respondError(c, err)
	}

	if s.countdowns != nil {
		s.countdowns.Cancel(id)
	}

	if err = s.handlers.CloseWizard.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// dispatch runs a command and answers with the refreshed wizard view.
func (s *Server) dispatch(c echo.Context, id kernel.UUID, run func() error) error {
	if err := run(); err != nil {
		return respondError(c, err)
	}
	return s.respondView(c, id)
}

func (s *Server) respondView(c echo.Context, id kernel.UUID) error {
	view, err := s.view(c, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) view(c echo.Context, id kernel.UUID) (queries.GetWizardQueryResponse, error) {
	query, err := queries.NewGetWizardQuery(id)
	if err != nil {
		return queries.GetWizardQueryResponse{}, err
	}
	return s.handlers.GetWizard.Handle(c.Request().Context(), query)
}

// wizardID binds the :id path segment the way the generated OpenAPI
// servers do.
func wizardID(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(id.String())
}
