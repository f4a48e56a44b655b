// Package ports defines repository interfaces for the orchestration domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"
)

// TicketRepository defines the persistence contract for ticket aggregates.
type TicketRepository interface {
	// Add persists a new ticket aggregate to storage.
	// The ticket must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *ticket.Ticket) error

	// Update persists changes to an existing ticket aggregate.
	// The ticket must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *ticket.Ticket) error

	// Get retrieves a ticket aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error)

	// GetForUpdate retrieves a ticket aggregate and locks its row for the
	// duration of the surrounding transaction, serializing concurrent status
	// transitions on the same ticket. Must be called inside a transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error)
}
