package queries_test

import (
	"testing"

	"bikerental/internal/core/application/usecases/queries"
	"bikerental/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetWizardQuery(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetWizardQuery(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.WizardID())
}

func TestNewGetWizardQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetWizardQuery(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetBikeEstimatesQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetBikeEstimatesQuery(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetWizardQuery{}.Validate(), queries.ErrGetWizardQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetBikeEstimatesQuery{}.Validate(), queries.ErrGetBikeEstimatesQueryIsNotConstructed)
}
