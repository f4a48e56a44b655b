// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. An emit invocation writes to the ticket store and four append-only
// logs; the unit of work spans all of them with one database transaction so
// the status change and its records land together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.TicketRepository().Add(ctx, ticket); err != nil {
//	    return err
//	}
//	if err := uow.AuditRepository().Add(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns one transaction; concurrent operations must
// use separate instances. Rollback after a successful Commit is a no-op
// returning gorm.ErrInvalidTransaction, which makes the deferred-rollback
// pattern above safe on every path.
package postgres

import (
	"context"

	"orchestrator/internal/adapters/out/postgres/agentlogrepo"
	"orchestrator/internal/adapters/out/postgres/auditrepo"
	"orchestrator/internal/adapters/out/postgres/messagerepo"
	"orchestrator/internal/adapters/out/postgres/taskrepo"
	"orchestrator/internal/adapters/out/postgres/ticketrepo"
	"orchestrator/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database connection. Each business operation gets a fresh instance with
// its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the ticket
// repository and the four log repositories. Repositories obtained from its
// accessors run inside the active transaction; before Begin (or after
// Commit/Rollback) they run directly on the main connection, which the
// non-transactional error-audit path relies on.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates the transaction. Calling Begin again on an instance with an
// active transaction is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// TicketRepository provides ticket persistence within the unit of work.
func (uow *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return ticketrepo.NewGormTicketRepository(uow.conn())
}

// MessageRepository provides event log persistence within the unit of work.
func (uow *GormUnitOfWork) MessageRepository() ports.MessageRepository {
	return messagerepo.NewGormMessageRepository(uow.conn())
}

// AuditRepository provides audit trail persistence within the unit of work.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// AgentLogRepository provides agent log persistence within the unit of work.
func (uow *GormUnitOfWork) AgentLogRepository() ports.AgentLogRepository {
	return agentlogrepo.NewGormAgentLogRepository(uow.conn())
}

// TaskRepository provides task persistence within the unit of work.
func (uow *GormUnitOfWork) TaskRepository() ports.TaskRepository {
	return taskrepo.NewGormTaskRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
