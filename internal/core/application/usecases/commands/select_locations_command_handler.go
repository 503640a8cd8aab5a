package commands

import (
	"context"
	"log/slog"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/ports"
)

// SelectLocationsCommandHandler advances to bike selection and loads the
// bikes available at the pickup location.
//
// A catalog failure is not returned: it is recorded on the wizard as a
// step-local message and the step stays on bike selection.
type SelectLocationsCommandHandler struct {
	fetcher bikeFetcher
}

func NewSelectLocationsCommandHandler(
	uowFactory WizardUoWFactory,
	catalog ports.CatalogService,
	logger *slog.Logger,
) SelectLocationsCommandHandler {
	return SelectLocationsCommandHandler{
		fetcher: bikeFetcher{
			uowFactory: uowFactory,
			catalog:    catalog,
			logger:     logger.With("component", "SelectLocationsCommandHandler"),
		},
	}
}

func (h *SelectLocationsCommandHandler) Handle(ctx context.Context, cmd SelectLocationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.fetcher.fetch(ctx, cmd.WizardID(), wizard.LocationsSelected{
		Pickup:  cmd.Pickup(),
		Dropoff: cmd.Dropoff(),
	})
}
