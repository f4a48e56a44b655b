// Package auditrepo persists the audit trail. The trail is append-only, so
// the repository exposes writes but no mutation of existing records.
package auditrepo

import (
	"time"

	"orchestrator/internal/adapters/out/postgres/pgjson"
	"orchestrator/internal/core/domain/model/audit"
)

// EntryDTO represents the database structure for one audit record.
// EntityID is text rather than uuid: engine-level error entries carry no
// entity id and the column must admit an empty value.
type EntryDTO struct {
	ID       int64      `gorm:"primaryKey;autoIncrement"`
	Actor    string     `gorm:"type:text"`
	Action   string     `gorm:"type:text"`
	Entity   string     `gorm:"type:text"`
	EntityID string     `gorm:"type:text;index"`
	Before   pgjson.Map `gorm:"type:jsonb"`
	After    pgjson.Map `gorm:"type:jsonb"`
	Ts       time.Time  `gorm:"index"`
	TraceID  string     `gorm:"type:text;index"`
}

// TableName specifies the database table name for audit records.
func (EntryDTO) TableName() string {
	return "audit_log"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry audit.Entry) EntryDTO {
	return EntryDTO{
		Actor:    entry.Actor(),
		Action:   string(entry.Action()),
		Entity:   entry.Entity(),
		EntityID: entry.EntityID(),
		Before:   pgjson.Map(entry.Before()),
		After:    pgjson.Map(entry.After()),
		Ts:       entry.Ts(),
		TraceID:  entry.TraceID(),
	}
}
