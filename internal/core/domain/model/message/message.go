// Package message contains the append-only record of inbound events.
// Every event submitted to the orchestration engine is captured as a Message
// belonging to exactly one ticket, immutable once written.
package message

import (
	"errors"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

// RoleSystem is the originator role recorded for events flowing through the
// orchestration entry point.
const RoleSystem = "system"

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is one inbound event as it was received: who sent it, the event
// name, the structured payload extracted from it, and the trace identifier
// correlating it to the emit invocation that produced it.
//
// Messages are append-only: they are never updated or deleted, and their
// total order by timestamp is the event history of a ticket.
type Message struct { //nolint:recvcheck //using for validation
	ticketID        kernel.UUID
	role            string
	detectedLang    *string
	text            string
	attachments     []string
	extractedFields ticket.Payload
	ts              time.Time
	traceID         string

	guard guard.ConstructorGuard
}

// NewMessage creates an event record for a ticket.
// The text is the symbolic event name; extractedFields carries the event
// payload. Role, timestamp, and trace id are required.
func NewMessage(
	ticketID kernel.UUID,
	role string,
	text string,
	extractedFields ticket.Payload,
	ts time.Time,
	traceID string,
) (Message, error) {
	if err := ticketID.Validate(); err != nil {
		return Message{}, err
	}
	if role == "" {
		return Message{}, errs.NewValueIsRequiredError("role")
	}
	if text == "" {
		return Message{}, errs.NewValueIsRequiredError("text")
	}
	if ts.IsZero() {
		return Message{}, errs.NewValueIsRequiredError("ts")
	}
	if traceID == "" {
		return Message{}, errs.NewValueIsRequiredError("traceId")
	}

	return Message{
		ticketID:        ticketID,
		role:            role,
		text:            text,
		extractedFields: extractedFields,
		ts:              ts,
		traceID:         traceID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the message was created through the constructor.
func (m Message) Validate() error {
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

// WithDetectedLang returns a copy of the message annotated with a detected
// language tag.
func (m Message) WithDetectedLang(lang string) Message {
	m.detectedLang = &lang
	return m
}

// WithAttachments returns a copy of the message carrying attachment references.
func (m Message) WithAttachments(attachments []string) Message {
	m.attachments = attachments
	return m
}

// TicketID returns the identifier of the ticket this message belongs to.
func (m Message) TicketID() kernel.UUID {
	return m.ticketID
}

// Role returns the originator role, e.g. "system".
func (m Message) Role() string {
	return m.role
}

// DetectedLang returns the optional detected-language tag, nil when absent.
func (m Message) DetectedLang() *string {
	return m.detectedLang
}

// Text returns the symbolic event name carried by this message.
func (m Message) Text() string {
	return m.text
}

// Attachments returns the optional attachment references, nil when absent.
func (m Message) Attachments() []string {
	return m.attachments
}

// ExtractedFields returns the structured event payload.
func (m Message) ExtractedFields() ticket.Payload {
	return m.extractedFields
}

// Ts returns the record timestamp.
func (m Message) Ts() time.Time {
	return m.ts
}

// TraceID returns the correlation identifier of the emit invocation.
func (m Message) TraceID() string {
	return m.traceID
}
