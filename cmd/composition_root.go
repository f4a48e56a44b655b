package cmd

import (
	"log/slog"
	"os"

	"orchestrator/internal/adapters/out/postgres"
	"orchestrator/internal/adapters/out/postgres/auditrepo"
	"orchestrator/internal/core/application/usecases/commands"
	"orchestrator/internal/core/application/usecases/queries"
	"orchestrator/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     services.EscalationPolicy
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	policy, err := services.NewEscalationPolicyWithThreshold(config.EscalationConfidenceThreshold)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateEmitCommandHandler() commands.EmitCommandHandler {
	var f commands.OrchestrationUoWFactory = FuncOrchestrationUoWFactory(func() commands.OrchestrationUoW {
		return c.uowFactory.Create()
	})

	// The error-audit repository runs on the main connection so it survives
	// a rolled-back unit of work.
	errorAudit := auditrepo.NewGormAuditRepository(c.gormDB)
	return commands.NewEmitCommandHandler(f, errorAudit, c.policy, c.logger)
}

func (c *CompositionRoot) CreateGetTicketHistoryQueryHandler() queries.GetTicketHistoryQueryHandler {
	return queries.NewGetTicketHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleTasksQueryHandler() queries.GetStaleTasksQueryHandler {
	return queries.NewGetStaleTasksQueryHandler(c.gormDB)
}

type FuncOrchestrationUoWFactory func() commands.OrchestrationUoW

func (f FuncOrchestrationUoWFactory) Create() commands.OrchestrationUoW {
	return f()
}
