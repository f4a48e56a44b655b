package ticketrepo

import (
	"context"
	"errors"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTicketRepository implements TicketRepository using GORM.
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GORM ticket repository.
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Add saves a new ticket to the database.
func (r *GormTicketRepository) Add(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing ticket to the database.
func (r *GormTicketRepository) Update(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TicketDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticket", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a ticket by ID.
func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a ticket by ID and locks its row with SELECT ... FOR
// UPDATE. Concurrent transitions on the same ticket block here until the
// owning transaction finishes, so statuses advance one event at a time.
// Must run inside a transaction.
func (r *GormTicketRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	return r.get(ctx, id, true)
}

func (r *GormTicketRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*ticket.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto TicketDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticket", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
