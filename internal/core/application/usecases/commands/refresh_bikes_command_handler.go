package commands

import (
	"context"
	"log/slog"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/core/ports"
)

type RefreshBikesCommandHandler struct {
	fetcher bikeFetcher
}

func NewRefreshBikesCommandHandler(
	uowFactory WizardUoWFactory,
	catalog ports.CatalogService,
	logger *slog.Logger,
) RefreshBikesCommandHandler {
	return RefreshBikesCommandHandler{
		fetcher: bikeFetcher{
			uowFactory: uowFactory,
			catalog:    catalog,
			logger:     logger.With("component", "RefreshBikesCommandHandler"),
		},
	}
}

func (h *RefreshBikesCommandHandler) Handle(ctx context.Context, cmd RefreshBikesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.fetcher.fetch(ctx, cmd.WizardID(), wizard.BikesRequested{Filter: cmd.Filter()})
}
