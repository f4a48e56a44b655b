package messagerepo

import (
	"context"

	"orchestrator/internal/core/domain/model/message"

	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Add appends an event record to the log.
func (r *GormMessageRepository) Add(ctx context.Context, record message.Message) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}
