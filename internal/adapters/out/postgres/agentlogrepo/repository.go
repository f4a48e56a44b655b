package agentlogrepo

import (
	"context"

	"orchestrator/internal/core/domain/model/agent"

	"gorm.io/gorm"
)

// GormAgentLogRepository implements AgentLogRepository using GORM.
type GormAgentLogRepository struct {
	db *gorm.DB
}

// NewGormAgentLogRepository creates a new GORM agent log repository.
func NewGormAgentLogRepository(db *gorm.DB) *GormAgentLogRepository {
	return &GormAgentLogRepository{db: db}
}

// Add appends an entry to the agent log.
func (r *GormAgentLogRepository) Add(ctx context.Context, entry agent.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
