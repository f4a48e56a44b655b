package agent_test

import (
	"testing"
	"time"

	"orchestrator/internal/core/domain/model/agent"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	t.Run("nil payload yields defaults", func(t *testing.T) {
		result, err := agent.ParseResult(nil)

		require.NoError(t, err)
		assert.Empty(t, result.Diff)
		assert.Nil(t, result.Confidence)
		assert.Empty(t, result.RequiredFields)
	})

	t.Run("empty payload yields defaults", func(t *testing.T) {
		result, err := agent.ParseResult(ticket.Payload{})

		require.NoError(t, err)
		assert.Empty(t, result.Diff)
		assert.Nil(t, result.Confidence)
		assert.Empty(t, result.RequiredFields)
	})

	t.Run("full payload is extracted", func(t *testing.T) {
		payload := ticket.Payload{
			"ok":              true,
			"diff":            map[string]any{"weight_kg": 12.5},
			"confidence":      0.42,
			"required_fields": []any{"inn", "payment_terms"},
		}

		result, err := agent.ParseResult(payload)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"weight_kg": 12.5}, result.Diff)
		require.NotNil(t, result.Confidence)
		assert.InDelta(t, 0.42, result.Confidence.Value(), 0)
		assert.Equal(t, []string{"inn", "payment_terms"}, result.RequiredFields)
	})

	t.Run("non-numeric confidence counts as absent", func(t *testing.T) {
		for _, v := range []any{"0.5", true, nil, map[string]any{}} {
			result, err := agent.ParseResult(ticket.Payload{"confidence": v})
			require.NoError(t, err)
			assert.Nil(t, result.Confidence, "%v", v)
		}
	})

	t.Run("out-of-range confidence is rejected", func(t *testing.T) {
		for _, v := range []float64{-0.1, 1.5} {
			_, err := agent.ParseResult(ticket.Payload{"confidence": v})
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("non-map diff is ignored", func(t *testing.T) {
		result, err := agent.ParseResult(ticket.Payload{"diff": "garbage"})
		require.NoError(t, err)
		assert.Empty(t, result.Diff)
	})

	t.Run("non-string required fields are skipped", func(t *testing.T) {
		result, err := agent.ParseResult(ticket.Payload{
			"required_fields": []any{"inn", 42, "vat"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"inn", "vat"}, result.RequiredFields)
	})
}

func TestResult_ConfidenceValue(t *testing.T) {
	t.Run("nil when absent", func(t *testing.T) {
		assert.Nil(t, agent.Result{}.ConfidenceValue())
	})

	t.Run("raw score when present", func(t *testing.T) {
		c, err := kernel.NewConfidence(0.3)
		require.NoError(t, err)

		value := agent.Result{Confidence: &c}.ConfidenceValue()
		require.NotNil(t, value)
		assert.InDelta(t, 0.3, *value, 0)
	})
}

func TestNewLogEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ticketID := kernel.NewUUID()

	input := agent.Input{
		Context: agent.Context{TicketID: ticketID.String(), Status: "compliance"},
		TraceID: "trace-1",
		Payload: ticket.Payload{"ok": true},
	}
	output := agent.Output{Diff: map[string]any{}, RequiredFields: []string{}}

	t.Run("valid entry", func(t *testing.T) {
		entry, err := agent.NewLogEntry(ticketID, agent.Name, input, output, agent.StatusOK, now, "trace-1")

		require.NoError(t, err)
		assert.NoError(t, entry.Validate())
		assert.Equal(t, agent.Name, entry.AgentName())
		assert.Equal(t, agent.StatusOK, entry.Status())
		assert.Equal(t, input, entry.Input())
		assert.Equal(t, output, entry.Output())
		assert.Equal(t, "trace-1", entry.TraceID())
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := agent.NewLogEntry(zeroID, agent.Name, input, output, agent.StatusOK, now, "trace-1")
		require.Error(t, err)

		_, err = agent.NewLogEntry(ticketID, "", input, output, agent.StatusOK, now, "trace-1")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = agent.NewLogEntry(ticketID, agent.Name, input, output, "", now, "trace-1")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = agent.NewLogEntry(ticketID, agent.Name, input, output, agent.StatusOK, time.Time{}, "trace-1")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = agent.NewLogEntry(ticketID, agent.Name, input, output, agent.StatusOK, now, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var entry agent.LogEntry
		require.ErrorIs(t, entry.Validate(), agent.ErrLogEntryIsNotConstructed)
	})
}
