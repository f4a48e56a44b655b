// Package ticketrepo provides data transfer objects and mapping functions for
// ticket persistence. It implements the repository pattern for the ticket
// aggregate, handling the conversion between the domain entity and its
// database representation.
package ticketrepo

import (
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

// TicketDTO represents the database structure for persisting ticket
// aggregates. Timestamps are owned by the domain, so GORM's automatic
// timestamp tracking is disabled.
type TicketDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status    string    `gorm:"type:text;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for ticket entities.
func (TicketDTO) TableName() string {
	return "tickets"
}

// fromDomain converts a ticket domain aggregate to its database representation.
func fromDomain(aggregate *ticket.Ticket) TicketDTO {
	return TicketDTO{
		ID:        aggregate.ID().Bytes(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a ticket domain aggregate.
func toDomain(dto TicketDTO) (*ticket.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := ticket.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return ticket.RestoreTicket(id, status, dto.CreatedAt, dto.UpdatedAt)
}
