package ports

import (
	"context"

	"orchestrator/internal/core/domain/model/agent"
	"orchestrator/internal/core/domain/model/audit"
	"orchestrator/internal/core/domain/model/message"
	"orchestrator/internal/core/domain/model/task"
)

// MessageRepository is the persistence contract for the inbound event log.
// The log is append-only: no update or delete methods exist by design.
type MessageRepository interface {
	// Add appends an event record to a ticket's message log.
	Add(ctx context.Context, record message.Message) error
}

// AuditRepository is the persistence contract for the audit trail.
// The trail is append-only: no update or delete methods exist by design.
type AuditRepository interface {
	// Add appends an audit entry.
	Add(ctx context.Context, entry audit.Entry) error
}

// AgentLogRepository is the persistence contract for processed agent results.
// The log is append-only: no update or delete methods exist by design.
type AgentLogRepository interface {
	// Add appends an agent log entry.
	Add(ctx context.Context, entry agent.LogEntry) error
}

// TaskRepository is the persistence contract for escalated follow-up tasks.
// The engine only creates tasks; their subsequent lifecycle belongs to the
// external task-management collaborator.
type TaskRepository interface {
	// Add persists a new follow-up task.
	Add(ctx context.Context, aggregate task.Task) error
}
