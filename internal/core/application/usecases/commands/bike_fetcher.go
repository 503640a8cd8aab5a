package commands

import (
	"context"
	"errors"
	"log/slog"

	"bikerental/internal/core/domain/model/bike"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/ports"
)

// bikeFetcher runs the two-transaction bike fetch. The first transaction
// applies the triggering event and captures the fetch token. The catalog is
// called outside any transaction. The second transaction applies the result
// only while the token is still current.
type bikeFetcher struct {
	uowFactory WizardUoWFactory
	catalog    ports.CatalogService
	logger     *slog.Logger
}

func (f bikeFetcher) fetch(ctx context.Context, wizardID kernel.UUID, trigger wizard.Event) error {
	var (
		token      uint64
		locationID string
		filter     bike.Filter
	)

	_, err := applyInTx(ctx, f.uowFactory, wizardID, func(w *wizard.Wizard) error {
		if err := w.Apply(trigger); err != nil {
			return err
		}
		pickup, _ := w.Pickup()
		token, locationID, filter = w.FetchToken(), pickup.ID(), w.Filter()
		return nil
	})
	if err != nil {
		return err
	}

	var result wizard.Event
	bikes, err := f.catalog.ListAvailable(ctx, locationID, filter)
	if err != nil {
		f.logger.WarnContext(ctx, "bike fetch failed",
			"wizard_id", wizardID.String(),
			"location_id", locationID,
			"error", err,
		)
		result = wizard.BikesFailed{Token: token, Message: userMessage(err)}
	} else {
		result = wizard.BikesLoaded{Token: token, Bikes: bikes}
	}

	err = applyEvent(ctx, f.uowFactory, wizardID, result)
	if errors.Is(err, wizard.ErrFetchIsStale) {
		f.logger.InfoContext(ctx, "discarding stale bike fetch",
			"wizard_id", wizardID.String(),
			"token", token,
		)
		return nil
	}

	return err
}
