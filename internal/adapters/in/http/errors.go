package http

import (
	"errors"
	"net/http"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx answer.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, wizard.ErrBookingIsCompleted),
		errors.Is(err, wizard.ErrSubmissionIsPending),
		errors.Is(err, wizard.ErrSubmissionIsStale):
		return http.StatusConflict
	case errors.Is(err, errs.ErrExternalServiceFail):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()

	var external *errs.ExternalServiceError
	switch {
	case errors.As(err, &external):
		message = external.UserMessage()
	case status == http.StatusInternalServerError:
		c.Logger().Error(err)
		message = http.StatusText(status)
	}

	return c.JSON(status, Error{Code: status, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
