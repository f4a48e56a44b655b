// Package taskrepo persists escalated follow-up tasks. The engine only
// creates tasks; assignment and completion happen in the external
// task-management collaborator, which shares this table.
package taskrepo

import (
	"time"

	"orchestrator/internal/adapters/out/postgres/pgjson"
	"orchestrator/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for one follow-up task.
// Timestamps are owned by the domain, so GORM's automatic timestamp tracking
// is disabled.
type TaskDTO struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	TicketID  uuid.UUID  `gorm:"type:uuid;index"`
	Kind      string     `gorm:"type:text"`
	Status    string     `gorm:"type:text;index"`
	Assignee  *string    `gorm:"type:text"`
	DueAt     *time.Time `gorm:""`
	Payload   pgjson.Map `gorm:"type:jsonb"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for tasks.
func (TaskDTO) TableName() string {
	return "tasks"
}

// fromDomain converts a task to its database representation.
func fromDomain(aggregate task.Task) TaskDTO {
	return TaskDTO{
		TicketID:  aggregate.TicketID().Bytes(),
		Kind:      string(aggregate.Kind()),
		Status:    string(aggregate.Status()),
		Assignee:  aggregate.Assignee(),
		DueAt:     aggregate.DueAt(),
		Payload:   pgjson.Map(aggregate.Payload()),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}
