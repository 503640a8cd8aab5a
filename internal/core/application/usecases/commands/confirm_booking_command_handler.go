package commands

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"bikerental/internal/core/domain/model/booking"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/domain/services"
	"bikerental/internal/core/ports"
)

// ResumeParam is the query parameter carrying the resume token on the
// post-login return URL.
const ResumeParam = "resume"

// ConfirmBookingCommandHandler submits the booking on step 5.
//
// Anonymous callers never reach the gateway: the wizard snapshot is parked
// and a login URL is returned whose return address carries the resume token.
// Authenticated callers get the total recomputed and the request validated
// locally. The wizard is then marked as submitting, which blocks a second
// confirm and any navigation until the gateway answers. The gateway is
// called outside any transaction and its outcome is applied only if it
// still belongs to the submission started here. A gateway failure is
// recorded on the wizard and the user may retry.
//
// Example:
//
//	cmd, _ := NewConfirmBookingCommand(wizardID, "/book")
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if result.LoginURL != "" {
//	    // redirect the user to result.LoginURL
//	}
type ConfirmBookingCommandHandler struct {
	uowFactory WizardUoWFactory
	auth       ports.Auth
	parked     ports.ParkedWizardStore
	parkTTL    time.Duration
	gateway    ports.BookingGateway
	notifier   ports.Notifier
	scheduler  ports.RedirectScheduler
	calculator services.PriceCalculator
	now        func() time.Time
	logger     *slog.Logger
}

func NewConfirmBookingCommandHandler(
	uowFactory WizardUoWFactory,
	auth ports.Auth,
	parked ports.ParkedWizardStore,
	parkTTL time.Duration,
	gateway ports.BookingGateway,
	notifier ports.Notifier,
	scheduler ports.RedirectScheduler,
	logger *slog.Logger,
) ConfirmBookingCommandHandler {
	return ConfirmBookingCommandHandler{
		uowFactory: uowFactory,
		auth:       auth,
		parked:     parked,
		parkTTL:    parkTTL,
		gateway:    gateway,
		notifier:   notifier,
		scheduler:  scheduler,
		calculator: services.NewPriceCalculator(),
		now:        time.Now,
		logger:     logger.With("component", "ConfirmBookingCommandHandler"),
	}
}

func (h *ConfirmBookingCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmBookingCommand,
) (ConfirmBookingResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmBookingResult{}, err
	}

	w, err := loadWizard(ctx, h.uowFactory, cmd.WizardID())
	if err != nil {
		return ConfirmBookingResult{}, err
	}
	if err = w.RequireStep(wizard.Confirm, "submit the booking"); err != nil {
		return ConfirmBookingResult{}, err
	}

	principal, ok := h.auth.Principal(ctx)
	if !ok {
		return h.park(ctx, w, cmd.ReturnTo())
	}

	return h.submit(ctx, w.ID(), principal)
}

func (h *ConfirmBookingCommandHandler) park(
	ctx context.Context,
	w *wizard.Wizard,
	returnTo string,
) (ConfirmBookingResult, error) {
	token, err := h.parked.Park(ctx, w.Snapshot(), h.parkTTL)
	if err != nil {
		return ConfirmBookingResult{}, err
	}

	h.logger.InfoContext(ctx, "wizard parked for login",
		"wizard_id", w.ID().String(),
		"ttl", h.parkTTL.String(),
	)

	return ConfirmBookingResult{
		LoginURL:    h.auth.LoginURL(withResumeToken(returnTo, token)),
		ResumeToken: token,
	}, nil
}

func (h *ConfirmBookingCommandHandler) submit(
	ctx context.Context,
	wizardID kernel.UUID,
	principal ports.Principal,
) (ConfirmBookingResult, error) {
	var (
		req   booking.Request
		token uint64
	)
	w, err := applyInTx(ctx, h.uowFactory, wizardID, func(w *wizard.Wizard) error {
		// A quote fails only for fields PrepareSubmission reports itself.
		var total int64
		if quote, quoteErr := h.calculator.Quote(w.SelectedBike(), h.period(w)); quoteErr == nil {
			total = quote.Total
		}

		prepared, err := w.PrepareSubmission(principal.UserID, total)
		if err != nil {
			return err
		}
		if err = w.Apply(wizard.SubmissionStarted{At: h.now()}); err != nil {
			return err
		}

		req, token = prepared, w.SubmissionToken()
		return nil
	})
	if err != nil {
		return ConfirmBookingResult{}, err
	}

	created, gatewayErr := h.gateway.Create(ctx, principal, req)

	// The outcome is recorded even when the caller has gone away.
	recordCtx := context.WithoutCancel(ctx)
	if gatewayErr != nil {
		h.logger.WarnContext(ctx, "booking submission failed",
			"wizard_id", wizardID.String(),
			"error", gatewayErr,
		)
		message := userMessage(gatewayErr)
		failed := wizard.SubmissionFailed{Token: token, Message: message}
		if err = applyEvent(recordCtx, h.uowFactory, wizardID, failed); err != nil {
			return ConfirmBookingResult{}, err
		}
		return ConfirmBookingResult{ErrorMessage: message}, nil
	}

	submitted := wizard.BookingSubmitted{Token: token, Booking: created}
	if err = applyEvent(recordCtx, h.uowFactory, wizardID, submitted); err != nil {
		h.logger.ErrorContext(ctx, "created booking could not be recorded on the wizard",
			"wizard_id", wizardID.String(),
			"booking_id", created.ID,
			"error", err,
		)
		return ConfirmBookingResult{}, err
	}

	h.logger.InfoContext(ctx, "booking created",
		"wizard_id", w.ID().String(),
		"booking_id", created.ID,
		"total", created.TotalPrice,
	)

	if err = h.notifier.BookingCreated(ctx, bookingCreatedEvent(w, principal, req, created)); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish booking created event",
			"wizard_id", w.ID().String(),
			"booking_id", created.ID,
			"error", err,
		)
	}

	if err = h.scheduler.Schedule(ctx, w.ID()); err != nil {
		h.logger.ErrorContext(ctx, "failed to schedule redirect",
			"wizard_id", w.ID().String(),
			"error", err,
		)
	}

	return ConfirmBookingResult{
		Booking: &BookingSummary{
			ID:              created.ID,
			Status:          created.Status,
			TotalPrice:      created.TotalPrice,
			DropoffLocation: created.DropoffLocation,
		},
	}, nil
}

// period returns the captured period; PrepareSubmission reports it missing.
func (h *ConfirmBookingCommandHandler) period(w *wizard.Wizard) booking.RentalPeriod {
	period, _ := w.RentalPeriod()
	return period
}

func bookingCreatedEvent(
	w *wizard.Wizard,
	principal ports.Principal,
	req booking.Request,
	created *booking.Booking,
) ports.BookingCreatedEvent {
	return ports.BookingCreatedEvent{
		WizardID:        w.ID().String(),
		BookingID:       created.ID,
		UserID:          principal.UserID,
		BikeID:          req.BikeID(),
		StartTime:       req.StartISO(),
		EndTime:         req.EndISO(),
		DropoffLocation: req.DropoffLocation(),
		TotalPrice:      req.TotalPrice(),
		OccurredAt:      time.Now().UTC(),
	}
}

// withResumeToken appends the resume token to returnTo, keeping its query.
func withResumeToken(returnTo string, token string) string {
	u, err := url.Parse(returnTo)
	if err != nil {
		return "/?" + url.Values{ResumeParam: {token}}.Encode()
	}
	q := u.Query()
	q.Set(ResumeParam, token)
	u.RawQuery = q.Encode()
	return u.String()
}
