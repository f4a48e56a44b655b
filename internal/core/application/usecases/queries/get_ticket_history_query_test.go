package queries_test

import (
	"testing"

	"orchestrator/internal/core/application/usecases/queries"
	"orchestrator/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTicketHistoryQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetTicketHistoryQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.TicketID())
}

func TestNewGetTicketHistoryQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetTicketHistoryQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetTicketHistoryQuery_UnconstructedFailsValidation(t *testing.T) {
	var query queries.GetTicketHistoryQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetTicketHistoryQueryIsNotConstructed)
}
