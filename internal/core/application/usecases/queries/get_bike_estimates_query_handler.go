package queries

import (
	"context"
	"encoding/json"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetBikeEstimatesQueryHandler reads the loaded bikes straight from the
// stored wizard state.
type GetBikeEstimatesQueryHandler struct {
	db *gorm.DB
}

func NewGetBikeEstimatesQueryHandler(db *gorm.DB) GetBikeEstimatesQueryHandler {
	return GetBikeEstimatesQueryHandler{db: db}
}

// Handle returns one estimate per loaded bike, in list order. A wizard
// without loaded bikes yields an empty slice.
func (h GetBikeEstimatesQueryHandler) Handle(
	ctx context.Context,
	query GetBikeEstimatesQuery,
) ([]GetBikeEstimatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(state->'bikes', '[]'::jsonb)::text
		FROM wizards
		WHERE id = ?
	`, query.WizardID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("wizard", query.WizardID().String())
	}

	var raw string
	if err = rows.Scan(&raw); err != nil {
		return nil, err
	}

	var snapshots []wizard.BikeSnapshot
	if err = json.Unmarshal([]byte(raw), &snapshots); err != nil {
		return nil, err
	}

	estimates := make([]GetBikeEstimatesQueryResponse, 0, len(snapshots))
	for _, s := range snapshots {
		b, bikeErr := s.ToDomain()
		if bikeErr != nil {
			return nil, bikeErr
		}
		pricing := b.Pricing()
		estimates = append(estimates, GetBikeEstimatesQueryResponse{
			BikeID:  b.ID(),
			Name:    b.Name(),
			PerDay:  pricing.PerDay(),
			Weekly:  pricing.WeeklyEstimate(),
			Monthly: pricing.MonthlyEstimate(),
		})
	}

	return estimates, rows.Err()
}
