package queries

import (
	"errors"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/guard"
)

var (
	ErrGetTicketHistoryQueryIsNotConstructed = errors.New(
		"GetTicketHistoryQuery must be created via NewGetTicketHistoryQuery constructor",
	)
)

// GetTicketHistoryQuery retrieves a ticket together with every record the
// engine has accumulated for it: the inbound event log, the audit trail, the
// agent log, and escalated tasks. This is the debug surface for inspecting
// what happened to a ticket and why.
//
// Example:
//
//	query, err := NewGetTicketHistoryQuery(ticketID)
//	if err != nil {
//	    return fmt.Errorf("invalid debug request: %w", err)
//	}
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//
//	fmt.Printf("Ticket %s is %s with %d audit entries\n",
//	    history.Ticket.ID, history.Ticket.Status, len(history.AuditLog))
type GetTicketHistoryQuery struct {
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTicketHistoryQuery creates a query for a ticket's full history.
func NewGetTicketHistoryQuery(ticketID kernel.UUID) (GetTicketHistoryQuery, error) {
	if err := ticketID.Validate(); err != nil {
		return GetTicketHistoryQuery{}, err
	}
	return GetTicketHistoryQuery{
		ticketID: ticketID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTicketHistoryQueryIsNotConstructed if validation fails.
func (q GetTicketHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTicketHistoryQueryIsNotConstructed)
}

// TicketID returns the identifier of the inspected ticket.
func (q GetTicketHistoryQuery) TicketID() kernel.UUID {
	return q.ticketID
}

// TicketResponse is the ticket snapshot in the history response.
type TicketResponse struct {
	ID        kernel.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MessageResponse is one inbound event record.
type MessageResponse struct {
	ID              int64
	TicketID        kernel.UUID
	Role            string
	DetectedLang    *string
	Text            string
	Attachments     []string
	ExtractedFields map[string]any
	Ts              time.Time
	TraceID         string
}

// AuditEntryResponse is one audit trail record.
type AuditEntryResponse struct {
	ID       int64
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Before   map[string]any
	After    map[string]any
	Ts       time.Time
	TraceID  string
}

// AgentLogEntryResponse is one processed agent result record.
type AgentLogEntryResponse struct {
	ID        int64
	TicketID  kernel.UUID
	AgentName string
	Input     map[string]any
	Output    map[string]any
	Status    string
	Ts        time.Time
	TraceID   string
}

// TaskResponse is one escalated follow-up task.
type TaskResponse struct {
	ID        int64
	TicketID  kernel.UUID
	Kind      string
	Status    string
	Assignee  *string
	DueAt     *time.Time
	Payload   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetTicketHistoryQueryResponse bundles the ticket with its four logs.
// Each log is capped and ordered oldest-first.
type GetTicketHistoryQueryResponse struct {
	Ticket   TicketResponse
	Messages []MessageResponse
	AuditLog []AuditEntryResponse
	AgentLog []AgentLogEntryResponse
	Tasks    []TaskResponse
}
