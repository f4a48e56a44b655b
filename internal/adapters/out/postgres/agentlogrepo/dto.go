// Package agentlogrepo persists the log of processed agent results. The log
// is append-only, so the repository exposes writes but no mutation of
// existing records.
package agentlogrepo

import (
	"time"

	"orchestrator/internal/adapters/out/postgres/pgjson"
	"orchestrator/internal/core/domain/model/agent"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for one agent log record.
// Input and output are stored as jsonb documents in their wire shape.
type EntryDTO struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	TicketID  uuid.UUID  `gorm:"type:uuid;index"`
	AgentName string     `gorm:"type:text"`
	Input     pgjson.Map `gorm:"type:jsonb"`
	Output    pgjson.Map `gorm:"type:jsonb"`
	Status    string     `gorm:"type:text"`
	Ts        time.Time  `gorm:"index"`
	TraceID   string     `gorm:"type:text;index"`
}

// TableName specifies the database table name for agent log records.
func (EntryDTO) TableName() string {
	return "agent_log"
}

// fromDomain converts an agent log entry to its database representation.
func fromDomain(entry agent.LogEntry) (EntryDTO, error) {
	input, err := pgjson.FromStruct(entry.Input())
	if err != nil {
		return EntryDTO{}, err
	}

	output, err := pgjson.FromStruct(entry.Output())
	if err != nil {
		return EntryDTO{}, err
	}

	return EntryDTO{
		TicketID:  entry.TicketID().Bytes(),
		AgentName: entry.AgentName(),
		Input:     input,
		Output:    output,
		Status:    entry.Status(),
		Ts:        entry.Ts(),
		TraceID:   entry.TraceID(),
	}, nil
}
