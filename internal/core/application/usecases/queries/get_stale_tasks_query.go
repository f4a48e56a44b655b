package queries

import (
	"errors"
	"time"

	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

var (
	ErrGetStaleTasksQueryIsNotConstructed = errors.New(
		"GetStaleTasksQuery must be created via NewGetStaleTasksQuery constructor",
	)
)

// GetStaleTasksQuery retrieves escalated tasks that nobody has picked up
// within the given age. The reminder job uses it to surface forgotten
// escalations to operators.
type GetStaleTasksQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStaleTasksQuery creates a query for unclaimed tasks older than the
// given duration. The duration must be positive.
func NewGetStaleTasksQuery(olderThan time.Duration) (GetStaleTasksQuery, error) {
	if olderThan <= 0 {
		return GetStaleTasksQuery{}, errs.NewValueIsInvalidError("olderThan")
	}
	return GetStaleTasksQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStaleTasksQueryIsNotConstructed if validation fails.
func (q GetStaleTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleTasksQueryIsNotConstructed)
}

// OlderThan returns the minimum age of a task to qualify as stale.
func (q GetStaleTasksQuery) OlderThan() time.Duration {
	return q.olderThan
}
