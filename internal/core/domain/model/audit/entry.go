// Package audit contains the append-only audit trail of the orchestration
// engine: every state-change intent, accepted transition, transition conflict,
// escalation, and error is recorded as an Entry. The audit log is the sole
// source of historical truth for status transitions and anomalies; entries are
// never edited or deleted.
package audit

import (
	"errors"
	"time"

	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

// Action is the short symbolic tag classifying an audit entry.
type Action string

const (
	// ActionEscalate records the creation of a low-confidence follow-up task.
	ActionEscalate Action = "escalate"

	// ActionFSMConflict records an event the transition table rejected.
	ActionFSMConflict Action = "fsm_conflict"

	// ActionError records an unexpected failure during an emit invocation.
	ActionError Action = "error"
)

// EventAction builds the action tag recording the arrival of an event,
// e.g. "event:user_provided".
func EventAction(event ticket.Event) Action {
	return Action("event:" + event.String())
}

// Entity types audited by the engine.
const (
	// EntityTicket marks entries that belong to a ticket.
	EntityTicket = "ticket"

	// EntityOrchestrator marks engine-level entries with no ticket scope,
	// such as error records written after a failed transaction.
	EntityOrchestrator = "orch"
)

// ActorSystem is the actor recorded when no caller identity is available.
const ActorSystem = "system"

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable audit record: who did what to which entity, with
// optional before/after snapshots and the trace identifier correlating it to
// the emit invocation that produced it.
type Entry struct { //nolint:recvcheck //using for validation
	actor    string
	action   Action
	entity   string
	entityID string
	before   map[string]any
	after    map[string]any
	ts       time.Time
	traceID  string

	guard guard.ConstructorGuard
}

// NewEntry creates an audit record. Actor, action, entity, timestamp, and
// trace id are required; entityID and the snapshots are optional (engine-level
// error entries carry no entity id).
func NewEntry(
	actor string,
	action Action,
	entity string,
	entityID string,
	before map[string]any,
	after map[string]any,
	ts time.Time,
	traceID string,
) (Entry, error) {
	if actor == "" {
		return Entry{}, errs.NewValueIsRequiredError("actor")
	}
	if action == "" {
		return Entry{}, errs.NewValueIsRequiredError("action")
	}
	if entity == "" {
		return Entry{}, errs.NewValueIsRequiredError("entity")
	}
	if ts.IsZero() {
		return Entry{}, errs.NewValueIsRequiredError("ts")
	}
	if traceID == "" {
		return Entry{}, errs.NewValueIsRequiredError("traceId")
	}

	return Entry{
		actor:    actor,
		action:   action,
		entity:   entity,
		entityID: entityID,
		before:   before,
		after:    after,
		ts:       ts,
		traceID:  traceID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through the constructor.
func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// Actor returns the identity that caused this entry.
func (e Entry) Actor() string {
	return e.actor
}

// Action returns the symbolic action tag.
func (e Entry) Action() Action {
	return e.action
}

// Entity returns the audited entity type.
func (e Entry) Entity() string {
	return e.entity
}

// EntityID returns the audited entity identifier; empty for engine-level entries.
func (e Entry) EntityID() string {
	return e.entityID
}

// Before returns the optional pre-change snapshot, nil when absent.
func (e Entry) Before() map[string]any {
	return e.before
}

// After returns the optional post-change snapshot, nil when absent.
func (e Entry) After() map[string]any {
	return e.after
}

// Ts returns the record timestamp.
func (e Entry) Ts() time.Time {
	return e.ts
}

// TraceID returns the correlation identifier of the emit invocation.
func (e Entry) TraceID() string {
	return e.traceID
}
