// Package agent contains the typed shape of agent_result event payloads and
// the specialized log record written when such events are processed.
//
// Automated agents report their work as a diff of extracted fields, a
// confidence score, and the list of fields they could not resolve. The
// orchestration engine records every result and escalates low-confidence ones
// to a human operator.
package agent

import (
	"errors"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

// Name is the agent identity recorded for results flowing through the
// orchestration entry point.
const Name = "orch"

// StatusOK is the processing status recorded for successfully handled results.
const StatusOK = "ok"

// Result is the validated shape of an agent_result payload.
// All fields are optional in the raw payload; absent fields take their
// documented defaults (empty diff, nil confidence, no required fields).
type Result struct {
	// Diff is the structured change set the agent produced.
	Diff map[string]any

	// Confidence is the agent's score for the result, nil when the agent
	// reported none. Only numeric payload values become a score; anything
	// else counts as absent.
	Confidence *kernel.Confidence

	// RequiredFields lists the fields the agent could not resolve.
	RequiredFields []string
}

// ParseResult extracts the typed agent result from a raw event payload.
// It is called at the boundary, before the payload reaches the transition
// table, so malformed agent_result payloads fail the whole emit as a
// validation error rather than corrupting the trail.
//
// Defaults mirror the engine's contract: missing diff becomes an empty map,
// non-numeric or missing confidence becomes nil, missing required_fields
// becomes an empty list. A numeric confidence outside [0..1] is rejected.
func ParseResult(payload ticket.Payload) (Result, error) {
	result := Result{
		Diff:           map[string]any{},
		RequiredFields: []string{},
	}
	if payload == nil {
		return result, nil
	}

	if diff, ok := payload["diff"].(map[string]any); ok {
		result.Diff = diff
	}

	if raw, ok := payload["confidence"].(float64); ok {
		confidence, err := kernel.NewConfidence(raw)
		if err != nil {
			return Result{}, err
		}
		result.Confidence = &confidence
	}

	if raw, ok := payload["required_fields"].([]any); ok {
		for _, field := range raw {
			if s, isString := field.(string); isString {
				result.RequiredFields = append(result.RequiredFields, s)
			}
		}
	}
	if raw, ok := payload["required_fields"].([]string); ok {
		result.RequiredFields = append(result.RequiredFields, raw...)
	}

	return result, nil
}

// ConfidenceValue returns the raw confidence score, nil when absent.
// Used where the persistence layer needs the plain number.
func (r Result) ConfidenceValue() *float64 {
	if r.Confidence == nil {
		return nil
	}
	v := r.Confidence.Value()
	return &v
}

var ErrLogEntryIsNotConstructed = errors.New("LogEntry must be created via NewLogEntry constructor")

// LogEntry is the append-only record of one processed agent result: the input
// context the agent saw, the output it produced, and the trace identifier of
// the emit invocation. Written only while handling agent_result events.
type LogEntry struct { //nolint:recvcheck //using for validation
	ticketID  kernel.UUID
	agentName string
	input     Input
	output    Output
	status    string
	ts        time.Time
	traceID   string

	guard guard.ConstructorGuard
}

// Input captures the context handed to the agent-like process.
type Input struct {
	Context Context        `json:"context"`
	TraceID string         `json:"trace_id"`
	Payload ticket.Payload `json:"payload"`
}

// Context identifies the ticket and its status before the transition.
type Context struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
}

// Output captures what the agent produced.
type Output struct {
	Diff           map[string]any `json:"diff"`
	Confidence     *float64       `json:"confidence"`
	RequiredFields []string       `json:"required_fields"`
}

// NewLogEntry creates an agent log record for a processed result.
func NewLogEntry(
	ticketID kernel.UUID,
	agentName string,
	input Input,
	output Output,
	status string,
	ts time.Time,
	traceID string,
) (LogEntry, error) {
	if err := ticketID.Validate(); err != nil {
		return LogEntry{}, err
	}
	if agentName == "" {
		return LogEntry{}, errs.NewValueIsRequiredError("agentName")
	}
	if status == "" {
		return LogEntry{}, errs.NewValueIsRequiredError("status")
	}
	if ts.IsZero() {
		return LogEntry{}, errs.NewValueIsRequiredError("ts")
	}
	if traceID == "" {
		return LogEntry{}, errs.NewValueIsRequiredError("traceId")
	}

	return LogEntry{
		ticketID:  ticketID,
		agentName: agentName,
		input:     input,
		output:    output,
		status:    status,
		ts:        ts,
		traceID:   traceID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through the constructor.
func (l LogEntry) Validate() error {
	return l.guard.Validate(ErrLogEntryIsNotConstructed)
}

// TicketID returns the ticket the result belongs to.
func (l LogEntry) TicketID() kernel.UUID {
	return l.ticketID
}

// AgentName returns the recorded agent identity.
func (l LogEntry) AgentName() string {
	return l.agentName
}

// Input returns the context handed to the agent.
func (l LogEntry) Input() Input {
	return l.input
}

// Output returns what the agent produced.
func (l LogEntry) Output() Output {
	return l.output
}

// Status returns the processing status tag, e.g. "ok".
func (l LogEntry) Status() string {
	return l.status
}

// Ts returns the record timestamp.
func (l LogEntry) Ts() time.Time {
	return l.ts
}

// TraceID returns the correlation identifier of the emit invocation.
func (l LogEntry) TraceID() string {
	return l.traceID
}
