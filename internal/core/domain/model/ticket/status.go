package ticket

import (
	"fmt"

	"orchestrator/internal/pkg/errs"
)

// Status represents the lifecycle state of a ticket.
// It implements a state machine with defined transitions to ensure
// tickets follow the correct processing workflow.
//
// State transitions:
//
//	New ──user_provided──> Collecting ──file_uploaded──> WaitingDocs
//	    WaitingDocs ──agent_result──> Compliance
//	    Compliance ──agent_result──> CostReady     (payload ok != false)
//	    Compliance ──agent_result──> Blocked       (payload ok == false)
//	    CostReady ──operator_action──> Confirmed
//	    Confirmed ──operator_action──> ReadyToDispatch
//	    ReadyToDispatch ──operator_action──> Archived
//
// Archived and Blocked are terminal: no outgoing transitions are defined for them.
// Status is a value object that validates state transitions and provides string
// representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status assigned when a ticket is created by its first event.
	New

	// Collecting indicates the caller has started providing ticket data.
	Collecting

	// WaitingDocs indicates supporting documents have been uploaded and the
	// ticket awaits automated processing.
	WaitingDocs

	// Compliance indicates an agent result moved the ticket into compliance review.
	Compliance

	// CostReady indicates compliance passed and costing is complete.
	CostReady

	// Confirmed indicates an operator confirmed the ticket.
	Confirmed

	// ReadyToDispatch indicates the ticket is cleared for dispatch.
	ReadyToDispatch

	// Archived is the terminal resting state of a successfully processed ticket.
	// Archived tickets are never deleted.
	Archived

	// Blocked is the terminal state of a ticket that failed compliance review.
	Blocked
)

// getStatusStrings returns a map of Status values to their string representations.
// The strings are the wire and storage format for ticket status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		New:             "new",
		Collecting:      "collecting",
		WaitingDocs:     "waiting_docs",
		Compliance:      "compliance",
		CostReady:       "cost_ready",
		Confirmed:       "confirmed",
		ReadyToDispatch: "ready_to_dispatch",
		Archived:        "archived",
		Blocked:         "blocked",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:             "new",
		Collecting:      "collecting",
		WaitingDocs:     "waiting_docs",
		Compliance:      "compliance",
		CostReady:       "cost_ready",
		Confirmed:       "confirmed",
		ReadyToDispatch: "ready_to_dispatch",
		Archived:        "archived",
		Blocked:         "blocked",
	}
}

// StatusFromString parses the storage representation of a status.
// Returns an error for strings that do not name a valid status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the storage and wire name of the status, e.g. "waiting_docs".
// Returns "unknown" for invalid status values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Archived || s == Blocked
}
