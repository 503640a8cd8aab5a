// Package ports defines the contracts between the wizard core and the
// outside world: REST collaborators, authentication, notifications,
// persistence and scheduling.
package ports

import (
	"context"

	"bikerental/internal/core/domain/model/bike"
)

// CatalogService lists bikes bookable at a location.
type CatalogService interface {
	// ListAvailable returns the bikes at locationID narrowed by filter. An
	// empty slice is a valid answer, not an error.
	ListAvailable(ctx context.Context, locationID string, filter bike.Filter) ([]*bike.Bike, error)
}
