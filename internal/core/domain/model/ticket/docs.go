// Package ticket contains the Ticket aggregate and the finite state machine
// that governs its lifecycle.
//
// A ticket is the unit of work tracked through the orchestration engine: a
// logistics document moving through processing stages from intake to archive.
// Status transitions are driven exclusively by named events submitted through
// the orchestration entry point; the set of legal (status, event) pairs is
// declared as data in the transition table, and anything outside the table is
// rejected as a transition conflict rather than silently ignored.
//
// The package includes:
//   - Ticket: the aggregate root holding identity, status, and timestamps
//   - Status: the enumerated lifecycle state with validation and string mapping
//   - Event: the named occurrences that may advance a ticket
//   - The transition table and the InvalidTransitionError conflict type
package ticket
