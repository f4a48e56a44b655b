package commands

import (
	"errors"

	"orchestrator/internal/core/domain/model/agent"
	"orchestrator/internal/core/domain/model/audit"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

var (
	ErrEmitCommandIsNotConstructed = errors.New(
		"EmitCommand must be created via NewEmitCommand constructor",
	)
)

// EmitCommand represents one event submitted to the orchestration engine:
// the event name, the ticket it targets (absent for ticket creation), the
// structured payload, the caller identity, and the trace identifier that will
// correlate every record the invocation produces.
//
// For agent_result events the payload is parsed into its typed shape at
// construction, so malformed agent payloads are rejected at the boundary
// before any state is touched.
//
// Example:
//
//	cmd, err := commands.NewEmitCommand(traceID, ticket.EventAgentResult, &ticketID,
//	    ticket.Payload{"ok": true, "confidence": 0.95}, "ops@example.com")
//	if err != nil {
//	    return fmt.Errorf("invalid emit request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type EmitCommand struct { //nolint:recvcheck //using for validation
	traceID     string
	event       ticket.Event
	ticketID    *kernel.UUID
	payload     ticket.Payload
	actor       string
	agentResult *agent.Result

	guard guard.ConstructorGuard
}

// NewEmitCommand creates a command to apply an event to a ticket.
// The trace id and event name are required; the ticket id is optional
// (omission means "create a new ticket"); an empty actor defaults to the
// system identity. agent_result payloads are validated here.
func NewEmitCommand(
	traceID string,
	event ticket.Event,
	ticketID *kernel.UUID,
	payload ticket.Payload,
	actor string,
) (EmitCommand, error) {
	if traceID == "" {
		return EmitCommand{}, errs.NewValueIsRequiredError("traceId")
	}
	if event == "" {
		return EmitCommand{}, errs.NewValueIsRequiredError("event")
	}
	if ticketID != nil {
		if err := ticketID.Validate(); err != nil {
			return EmitCommand{}, err
		}
	}
	if actor == "" {
		actor = audit.ActorSystem
	}
	if payload == nil {
		payload = ticket.Payload{}
	}

	cmd := EmitCommand{
		traceID:  traceID,
		event:    event,
		ticketID: ticketID,
		payload:  payload,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}

	if event == ticket.EventAgentResult {
		result, err := agent.ParseResult(payload)
		if err != nil {
			return EmitCommand{}, err
		}
		cmd.agentResult = &result
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrEmitCommandIsNotConstructed if validation fails.
func (c EmitCommand) Validate() error {
	return c.guard.Validate(ErrEmitCommandIsNotConstructed)
}

// TraceID returns the correlation identifier for this invocation.
func (c EmitCommand) TraceID() string {
	return c.traceID
}

// Event returns the symbolic event name.
func (c EmitCommand) Event() ticket.Event {
	return c.event
}

// TicketID returns the targeted ticket identifier, nil when the event should
// create a new ticket.
func (c EmitCommand) TicketID() *kernel.UUID {
	return c.ticketID
}

// Payload returns the structured event payload.
func (c EmitCommand) Payload() ticket.Payload {
	return c.payload
}

// Actor returns the caller identity recorded in the audit trail.
func (c EmitCommand) Actor() string {
	return c.actor
}

// AgentResult returns the typed agent payload, non-nil only for agent_result
// events.
func (c EmitCommand) AgentResult() *agent.Result {
	return c.agentResult
}
