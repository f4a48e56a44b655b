// Package task contains the follow-up work items produced by the escalation
// path. A Task is created when automated confidence falls below the threshold
// and is subsequently worked by human operators through an external
// task-management collaborator.
package task

import (
	"errors"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

// Kind classifies a follow-up task.
type Kind string

// KindOps marks tasks routed to the operations queue.
const KindOps Kind = "ops"

// Status is the lifecycle state of a task. The engine only ever creates tasks
// in StatusNew; the remaining states belong to the external task-management
// collaborator.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")

// Task is one escalated work item for a human operator, carrying the
// structured reason for the escalation in its payload.
type Task struct { //nolint:recvcheck //using for validation
	ticketID  kernel.UUID
	kind      Kind
	status    Status
	assignee  *string
	dueAt     *time.Time
	payload   map[string]any
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewTask creates a task in StatusNew with no assignee and no due date.
// The payload carries the escalation reason and supporting data.
func NewTask(ticketID kernel.UUID, kind Kind, payload map[string]any, now time.Time) (Task, error) {
	if err := ticketID.Validate(); err != nil {
		return Task{}, err
	}
	if kind == "" {
		return Task{}, errs.NewValueIsRequiredError("kind")
	}
	if now.IsZero() {
		return Task{}, errs.NewValueIsRequiredError("now")
	}

	return Task{
		ticketID:  ticketID,
		kind:      kind,
		status:    StatusNew,
		payload:   payload,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the task was created through the constructor.
func (t Task) Validate() error {
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

// TicketID returns the ticket the task follows up on.
func (t Task) TicketID() kernel.UUID {
	return t.ticketID
}

// Kind returns the task classification.
func (t Task) Kind() Kind {
	return t.kind
}

// Status returns the task lifecycle state.
func (t Task) Status() Status {
	return t.status
}

// Assignee returns the assigned operator, nil when unassigned.
func (t Task) Assignee() *string {
	return t.assignee
}

// DueAt returns the optional due date, nil when none is set.
func (t Task) DueAt() *time.Time {
	return t.dueAt
}

// Payload returns the structured escalation data.
func (t Task) Payload() map[string]any {
	return t.payload
}

// CreatedAt returns the creation timestamp.
func (t Task) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (t Task) UpdatedAt() time.Time {
	return t.updatedAt
}
