package queries

import (
	"context"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleTasksQueryHandler retrieves unclaimed escalation tasks from the
// database. A task is stale when it is still in "new" status past the query's
// age cutoff.
type GetStaleTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleTasksQueryHandler creates a handler for stale task queries.
func NewGetStaleTasksQueryHandler(db *gorm.DB) GetStaleTasksQueryHandler {
	return GetStaleTasksQueryHandler{db: db}
}

// GetStaleTasksQueryResponse identifies one stale task and the ticket it
// escalated.
type GetStaleTasksQueryResponse struct {
	ID        int64
	TicketID  kernel.UUID
	Kind      string
	CreatedAt time.Time
}

// Handle executes the query. Results are sorted oldest-first so the most
// neglected tasks are reported first.
func (h GetStaleTasksQueryHandler) Handle(
	ctx context.Context,
	query GetStaleTasksQuery,
) ([]GetStaleTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.OlderThan())
	tasks := make([]GetStaleTasksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ticket_id,
			kind,
			created_at
		FROM tasks
		WHERE status = ?
		  AND created_at < ?
		ORDER BY created_at
	`, task.StatusNew, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetStaleTasksQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&record.ID,
			&id,
			&record.Kind,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		record.TicketID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
