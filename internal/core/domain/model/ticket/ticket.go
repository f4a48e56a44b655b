package ticket

import (
	"errors"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
)

var (
	// ErrTicketIsNotConstructed is returned when a Ticket instance was not created
	// through the NewTicket or RestoreTicket factory methods.
	ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket or RestoreTicket constructor")
)

// Ticket is the aggregate root of the orchestration engine: a logistics
// document tracked through a finite set of processing stages.
//
// Ticket follows these invariants:
//   - Must have a valid unique identifier
//   - Status is always a valid Status value; New is the sole initial state
//   - Status changes only through Apply, which consults the transition table
//   - Tickets are never deleted; Archived and Blocked are valid resting states
//   - Can only be created through NewTicket or RestoreTicket
//
// The struct uses private fields to ensure encapsulation; every mutation goes
// through the state machine so that callers can pair it with the mandatory
// audit trail write.
type Ticket struct {
	// id is the unique identifier for the ticket
	id kernel.UUID

	// status is the current state in the processing lifecycle
	status Status

	// createdAt is the creation timestamp, set once
	createdAt time.Time

	// updatedAt tracks the last accepted status change
	updatedAt time.Time

	// isConstructed ensures the ticket was created via a constructor
	isConstructed bool
}

// NewTicket creates a new Ticket in the initial New status.
// Tickets are created implicitly by the first event that arrives without a
// ticket identifier, so the creation timestamp is supplied by the caller to
// keep all records of one emit invocation on the same clock reading.
//
// Parameters:
//   - id: Unique identifier for the ticket (must be valid)
//   - now: Creation time; also becomes the initial update time
//
// Returns:
//   - *Ticket: The created ticket if validation passes
//   - error: Validation error if the identifier is invalid
func NewTicket(id kernel.UUID, now time.Time) (*Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Ticket{
		id:            id,
		status:        New,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreTicket reconstructs a Ticket from persistence.
// Unlike NewTicket it accepts any valid status, but it still refuses invalid
// identifiers and status values so corrupted rows cannot become aggregates.
func RestoreTicket(id kernel.UUID, status Status, createdAt, updatedAt time.Time) (*Ticket, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Ticket{
		id:            id,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Ticket instance was properly constructed.
// Returns ErrTicketIsNotConstructed for zero-value instances.
func (t *Ticket) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTicketIsNotConstructed
	}

	return nil
}

// IsEqual compares two tickets by their unique identifiers.
func (t *Ticket) IsEqual(other *Ticket) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the ticket's unique identifier.
func (t *Ticket) ID() kernel.UUID {
	return t.id
}

// Status returns the current status of the ticket.
func (t *Ticket) Status() Status {
	return t.status
}

// CreatedAt returns the ticket's creation time.
func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns the time of the last accepted status change.
func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// Apply advances the ticket's status according to the transition table.
//
// Returns:
//   - changed=true and a nil error when the event moved the ticket to a new status
//   - changed=false and an InvalidTransitionError when the table rejects the
//     (status, event) pair; the ticket is left unchanged
//
// The update timestamp is touched only on an accepted transition, so rejected
// events leave the aggregate byte-for-byte as it was loaded.
func (t *Ticket) Apply(event Event, payload Payload, now time.Time) (changed bool, err error) {
	if err = t.Validate(); err != nil {
		return false, err
	}

	next, err := t.status.Next(event, payload)
	if err != nil {
		return false, err
	}

	if next == t.status {
		return false, nil
	}

	t.status = next
	t.updatedAt = now
	return true, nil
}
