package ticket

// Event is the name of an occurrence submitted to the orchestration engine
// that may advance a ticket's status. Event names outside the known set are
// accepted at the boundary (they are still logged) but never match a
// transition, so they surface as conflicts.
type Event string

// The event vocabulary understood by the transition table.
const (
	// EventUserProvided signals that the caller supplied ticket data.
	EventUserProvided Event = "user_provided"

	// EventFileUploaded signals that a supporting document was attached.
	EventFileUploaded Event = "file_uploaded"

	// EventAgentResult carries the outcome of an automated agent run,
	// including its confidence score. Handled additionally by the agent
	// result processing path.
	EventAgentResult Event = "agent_result"

	// EventOperatorAction signals a manual confirmation step by an operator.
	EventOperatorAction Event = "operator_action"
)

// String returns the wire name of the event.
func (e Event) String() string {
	return string(e)
}

// Payload is the structured data accompanying an event. Its shape depends on
// the event kind; the transition table only inspects the fields it needs.
type Payload map[string]any

// BoolField extracts a boolean field from the payload.
// The second return value reports whether the field was present and a boolean;
// values of any other type are not coerced.
func (p Payload) BoolField(key string) (value, ok bool) {
	if p == nil {
		return false, false
	}
	value, ok = p[key].(bool)
	return value, ok
}
