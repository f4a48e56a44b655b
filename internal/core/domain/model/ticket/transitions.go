package ticket

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for transition conflicts: the current
// status defines no outgoing transition for the submitted event. Conflicts are
// a distinct outcome from a no-op; they are recorded in the audit trail and
// surfaced to the caller.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError carries the (status, event) pair that the transition
// table rejected. It unwraps to ErrInvalidTransition for classification.
type InvalidTransitionError struct {
	Status Status
	Event  Event
}

// NewInvalidTransitionError creates a conflict error for the given pair.
func NewInvalidTransitionError(status Status, event Event) *InvalidTransitionError {
	return &InvalidTransitionError{Status: status, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: no transition from %q on event %q", ErrInvalidTransition, e.Status, e.Event)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitionFn computes the target status for an accepted transition.
// Most transitions are unconditional; the payload is consulted only where the
// table branches on it.
type transitionFn func(payload Payload) Status

// transitions is the complete state machine declared as data: for each status,
// the events it accepts and the status they lead to. Statuses absent from the
// table (Archived, Blocked) are terminal. Any (status, event) pair not listed
// here is a conflict.
var transitions = map[Status]map[Event]transitionFn{
	New: {
		EventUserProvided: func(Payload) Status { return Collecting },
	},
	Collecting: {
		EventFileUploaded: func(Payload) Status { return WaitingDocs },
	},
	WaitingDocs: {
		EventAgentResult: func(Payload) Status { return Compliance },
	},
	Compliance: {
		// A failed compliance check blocks the ticket regardless of the
		// agent's confidence. Only an explicit boolean false counts.
		EventAgentResult: func(p Payload) Status {
			if ok, isBool := p.BoolField("ok"); isBool && !ok {
				return Blocked
			}
			return CostReady
		},
	},
	CostReady: {
		EventOperatorAction: func(Payload) Status { return Confirmed },
	},
	Confirmed: {
		EventOperatorAction: func(Payload) Status { return ReadyToDispatch },
	},
	ReadyToDispatch: {
		EventOperatorAction: func(Payload) Status { return Archived },
	},
}

// Next computes the status the given event leads to from the current status.
// Returns an InvalidTransitionError if the table defines no transition for
// the (status, event) pair.
func (s Status) Next(event Event, payload Payload) (Status, error) {
	fn, ok := transitions[s][event]
	if !ok {
		return Unknown, NewInvalidTransitionError(s, event)
	}
	return fn(payload), nil
}

// CanApply reports whether the transition table defines a transition for the
// (status, event) pair, without computing the target status.
func (s Status) CanApply(event Event) bool {
	_, ok := transitions[s][event]
	return ok
}
