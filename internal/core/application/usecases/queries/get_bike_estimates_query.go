package queries

import (
	"errors"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/guard"
)

var ErrGetBikeEstimatesQueryIsNotConstructed = errors.New(
	"GetBikeEstimatesQuery must be created via NewGetBikeEstimatesQuery constructor",
)

// GetBikeEstimatesQuery lists the weekly and monthly price hints of the
// bikes currently loaded in a wizard. The hints are never charged.
type GetBikeEstimatesQuery struct {
	wizardID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBikeEstimatesQuery(wizardID kernel.UUID) (GetBikeEstimatesQuery, error) {
	if err := wizardID.Validate(); err != nil {
		return GetBikeEstimatesQuery{}, err
	}

	return GetBikeEstimatesQuery{wizardID: wizardID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBikeEstimatesQuery) Validate() error {
	return q.guard.Validate(ErrGetBikeEstimatesQueryIsNotConstructed)
}

func (q GetBikeEstimatesQuery) WizardID() kernel.UUID {
	return q.wizardID
}

type GetBikeEstimatesQueryResponse struct {
	BikeID  string `json:"bikeId"`
	Name    string `json:"name"`
	PerDay  int64  `json:"perDay"`
	Weekly  int64  `json:"weekly"`
	Monthly int64  `json:"monthly"`
}
