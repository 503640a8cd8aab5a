package ports

import (
	"context"

	"bikerental/internal/core/domain/model/partner"
)

// PartnerDirectory resolves partner records for drop-off selection.
type PartnerDirectory interface {
	// GetByID returns errs.ErrObjectNotFound when the id is unknown.
	GetByID(ctx context.Context, partnerID string) (*partner.Partner, error)
}
