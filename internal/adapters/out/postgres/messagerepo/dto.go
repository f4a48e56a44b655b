// Package messagerepo persists the inbound event log. The log is append-only,
// so the repository exposes writes but no mutation of existing records.
package messagerepo

import (
	"time"

	"orchestrator/internal/adapters/out/postgres/pgjson"
	"orchestrator/internal/core/domain/model/message"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MessageDTO represents the database structure for one inbound event record.
type MessageDTO struct {
	ID              int64          `gorm:"primaryKey;autoIncrement"`
	TicketID        uuid.UUID      `gorm:"type:uuid;index"`
	Role            string         `gorm:"type:text"`
	DetectedLang    *string        `gorm:"type:text"`
	Text            string         `gorm:"type:text"`
	Attachments     pq.StringArray `gorm:"type:text[]"`
	ExtractedFields pgjson.Map     `gorm:"type:jsonb"`
	Ts              time.Time      `gorm:"index"`
	TraceID         string         `gorm:"type:text;index"`
}

// TableName specifies the database table name for event records.
func (MessageDTO) TableName() string {
	return "messages"
}

// fromDomain converts an event record to its database representation.
func fromDomain(record message.Message) MessageDTO {
	return MessageDTO{
		TicketID:        record.TicketID().Bytes(),
		Role:            record.Role(),
		DetectedLang:    record.DetectedLang(),
		Text:            record.Text(),
		Attachments:     record.Attachments(),
		ExtractedFields: pgjson.Map(record.ExtractedFields()),
		Ts:              record.Ts(),
		TraceID:         record.TraceID(),
	}
}
