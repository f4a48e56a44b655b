package ticket_test

import (
	"testing"

	"orchestrator/internal/core/domain/model/ticket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allEvents() []ticket.Event {
	return []ticket.Event{
		ticket.EventUserProvided,
		ticket.EventFileUploaded,
		ticket.EventAgentResult,
		ticket.EventOperatorAction,
	}
}

// definedTransitions mirrors the tabulated state machine so the tests can
// check the table exhaustively in both directions.
var definedTransitions = map[ticket.Status]map[ticket.Event]ticket.Status{
	ticket.New:             {ticket.EventUserProvided: ticket.Collecting},
	ticket.Collecting:      {ticket.EventFileUploaded: ticket.WaitingDocs},
	ticket.WaitingDocs:     {ticket.EventAgentResult: ticket.Compliance},
	ticket.Compliance:      {ticket.EventAgentResult: ticket.CostReady},
	ticket.CostReady:       {ticket.EventOperatorAction: ticket.Confirmed},
	ticket.Confirmed:       {ticket.EventOperatorAction: ticket.ReadyToDispatch},
	ticket.ReadyToDispatch: {ticket.EventOperatorAction: ticket.Archived},
}

func TestStatus_Next_DefinedPairs(t *testing.T) {
	for from, events := range definedTransitions {
		for event, want := range events {
			next, err := from.Next(event, nil)
			require.NoError(t, err, "%s x %s", from, event)
			assert.Equal(t, want, next, "%s x %s", from, event)
		}
	}
}

func TestStatus_Next_UndefinedPairsConflict(t *testing.T) {
	for _, from := range allValidStatuses() {
		for _, event := range allEvents() {
			if _, defined := definedTransitions[from][event]; defined {
				continue
			}

			_, err := from.Next(event, nil)
			require.Error(t, err, "%s x %s", from, event)
			assert.ErrorIs(t, err, ticket.ErrInvalidTransition)

			var conflict *ticket.InvalidTransitionError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, from, conflict.Status)
			assert.Equal(t, event, conflict.Event)
		}
	}
}

func TestStatus_Next_UnknownEventConflicts(t *testing.T) {
	_, err := ticket.New.Next(ticket.Event("made_up"), nil)
	require.ErrorIs(t, err, ticket.ErrInvalidTransition)
}

func TestStatus_Next_TerminalStatesHaveNoTransitions(t *testing.T) {
	for _, from := range []ticket.Status{ticket.Archived, ticket.Blocked} {
		for _, event := range allEvents() {
			_, err := from.Next(event, nil)
			require.ErrorIs(t, err, ticket.ErrInvalidTransition, "%s x %s", from, event)
		}
	}
}

func TestStatus_Next_ComplianceBranchesOnOK(t *testing.T) {
	t.Run("ok=false blocks regardless of other fields", func(t *testing.T) {
		payloads := []ticket.Payload{
			{"ok": false},
			{"ok": false, "confidence": 0.99},
			{"ok": false, "confidence": 0.1, "diff": map[string]any{"a": 1}},
		}
		for _, p := range payloads {
			next, err := ticket.Compliance.Next(ticket.EventAgentResult, p)
			require.NoError(t, err)
			assert.Equal(t, ticket.Blocked, next)
		}
	})

	t.Run("anything but an explicit false proceeds to cost_ready", func(t *testing.T) {
		payloads := []ticket.Payload{
			nil,
			{},
			{"ok": true},
			{"ok": "false"}, // string, not a boolean: no coercion
			{"ok": 0},
			{"confidence": 0.2},
		}
		for _, p := range payloads {
			next, err := ticket.Compliance.Next(ticket.EventAgentResult, p)
			require.NoError(t, err)
			assert.Equal(t, ticket.CostReady, next, "%v", p)
		}
	})
}

func TestStatus_CanApply(t *testing.T) {
	assert.True(t, ticket.New.CanApply(ticket.EventUserProvided))
	assert.False(t, ticket.New.CanApply(ticket.EventOperatorAction))
	assert.False(t, ticket.Archived.CanApply(ticket.EventUserProvided))
}
