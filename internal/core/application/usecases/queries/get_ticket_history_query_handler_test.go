package queries_test

import (
	"context"
	"testing"
	"time"

	"orchestrator/internal/adapters/out/postgres/agentlogrepo"
	"orchestrator/internal/adapters/out/postgres/auditrepo"
	"orchestrator/internal/adapters/out/postgres/messagerepo"
	"orchestrator/internal/adapters/out/postgres/taskrepo"
	"orchestrator/internal/adapters/out/postgres/ticketrepo"
	"orchestrator/internal/core/application/usecases/queries"
	"orchestrator/internal/core/domain/model/agent"
	"orchestrator/internal/core/domain/model/audit"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/message"
	"orchestrator/internal/core/domain/model/task"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetTicketHistoryQueryHandlerTestSuite verifies the debug surface against a
// real PostgreSQL instance, seeding records through the same repositories the
// engine writes with.
type GetTicketHistoryQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetTicketHistoryQueryHandler
	ticketRepo   *ticketrepo.GormTicketRepository
	messageRepo  *messagerepo.GormMessageRepository
	auditRepo    *auditrepo.GormAuditRepository
	agentLogRepo *agentlogrepo.GormAgentLogRepository
	taskRepo     *taskrepo.GormTaskRepository
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&ticketrepo.TicketDTO{},
		&messagerepo.MessageDTO{},
		&auditrepo.EntryDTO{},
		&agentlogrepo.EntryDTO{},
		&taskrepo.TaskDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetTicketHistoryQueryHandler(db)
	suite.ticketRepo = ticketrepo.NewGormTicketRepository(db)
	suite.messageRepo = messagerepo.NewGormMessageRepository(db)
	suite.auditRepo = auditrepo.NewGormAuditRepository(db)
	suite.agentLogRepo = agentlogrepo.NewGormAgentLogRepository(db)
	suite.taskRepo = taskrepo.NewGormTaskRepository(db)
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) SetupTest() {
	for _, table := range []string{"tickets", "messages", "audit_log", "agent_log", "tasks"} {
		err := suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		suite.Require().NoError(err)
	}
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) seedTicket(status ticket.Status) *ticket.Ticket {
	now := time.Now().UTC()
	tk, err := ticket.RestoreTicket(kernel.NewUUID(), status, now, now)
	suite.Require().NoError(err)
	err = suite.ticketRepo.Add(context.Background(), tk)
	suite.Require().NoError(err)
	return tk
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TestHandle_UnknownTicket() {
	query, err := queries.NewGetTicketHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	invalidQuery := queries.GetTicketHistoryQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetTicketHistoryQuery constructor")
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TestHandle_TicketWithoutRecords() {
	tk := suite.seedTicket(ticket.New)

	query, err := queries.NewGetTicketHistoryQuery(tk.ID())
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(tk.ID().IsEqual(history.Ticket.ID))
	suite.Equal("new", history.Ticket.Status)
	suite.Empty(history.Messages)
	suite.Empty(history.AuditLog)
	suite.Empty(history.AgentLog)
	suite.Empty(history.Tasks)
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TestHandle_ReturnsAllSections() {
	ctx := context.Background()
	tk := suite.seedTicket(ticket.Compliance)
	now := time.Now().UTC().Truncate(time.Microsecond)

	record, err := message.NewMessage(
		tk.ID(), message.RoleSystem, "agent_result",
		ticket.Payload{"confidence": 0.4}, now, "trace-1")
	suite.Require().NoError(err)
	record = record.WithAttachments([]string{"invoice.pdf", "packing_list.pdf"})
	err = suite.messageRepo.Add(ctx, record)
	suite.Require().NoError(err)

	entry, err := audit.NewEntry(
		audit.ActorSystem, audit.EventAction(ticket.EventAgentResult), audit.EntityTicket,
		tk.ID().String(), nil, map[string]any{"confidence": 0.4}, now, "trace-1")
	suite.Require().NoError(err)
	err = suite.auditRepo.Add(ctx, entry)
	suite.Require().NoError(err)

	confidence := 0.4
	logEntry, err := agent.NewLogEntry(
		tk.ID(), agent.Name,
		agent.Input{
			Context: agent.Context{TicketID: tk.ID().String(), Status: "waiting_docs"},
			TraceID: "trace-1",
			Payload: ticket.Payload{"confidence": 0.4},
		},
		agent.Output{Confidence: &confidence},
		agent.StatusOK, now, "trace-1")
	suite.Require().NoError(err)
	err = suite.agentLogRepo.Add(ctx, logEntry)
	suite.Require().NoError(err)

	followUp, err := task.NewTask(tk.ID(), task.KindOps, map[string]any{
		"reason":     "low_confidence",
		"confidence": 0.4,
	}, now)
	suite.Require().NoError(err)
	err = suite.taskRepo.Add(ctx, followUp)
	suite.Require().NoError(err)

	query, err := queries.NewGetTicketHistoryQuery(tk.ID())
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("compliance", history.Ticket.Status)

	suite.Require().Len(history.Messages, 1)
	suite.Equal("agent_result", history.Messages[0].Text)
	suite.Equal([]string{"invoice.pdf", "packing_list.pdf"}, history.Messages[0].Attachments)
	suite.Equal(0.4, history.Messages[0].ExtractedFields["confidence"])

	suite.Require().Len(history.AuditLog, 1)
	suite.Equal("event:agent_result", history.AuditLog[0].Action)
	suite.Equal(tk.ID().String(), history.AuditLog[0].EntityID)

	suite.Require().Len(history.AgentLog, 1)
	suite.Equal(agent.Name, history.AgentLog[0].AgentName)
	suite.Equal(0.4, history.AgentLog[0].Output["confidence"])

	suite.Require().Len(history.Tasks, 1)
	suite.Equal("ops", history.Tasks[0].Kind)
	suite.Equal("new", history.Tasks[0].Status)
	suite.Equal("low_confidence", history.Tasks[0].Payload["reason"])
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TestHandle_ExcludesOtherTickets() {
	ctx := context.Background()
	tk := suite.seedTicket(ticket.Collecting)
	other := suite.seedTicket(ticket.Collecting)
	now := time.Now().UTC()

	record, err := message.NewMessage(
		other.ID(), message.RoleSystem, "file_uploaded", nil, now, "trace-2")
	suite.Require().NoError(err)
	err = suite.messageRepo.Add(ctx, record)
	suite.Require().NoError(err)

	query, err := queries.NewGetTicketHistoryQuery(tk.ID())
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(history.Messages)
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TestHandle_ExcludesEngineLevelAuditEntries() {
	ctx := context.Background()
	tk := suite.seedTicket(ticket.Collecting)
	now := time.Now().UTC()

	ticketEntry, err := audit.NewEntry(
		audit.ActorSystem, audit.EventAction(ticket.EventFileUploaded), audit.EntityTicket,
		tk.ID().String(), nil, nil, now, "trace-1")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.auditRepo.Add(ctx, ticketEntry))

	// An engine-level entry can carry the same id in entity_id; only entries
	// scoped to the ticket entity belong in its history.
	engineEntry, err := audit.NewEntry(
		audit.ActorSystem, audit.ActionError, audit.EntityOrchestrator,
		tk.ID().String(), nil, map[string]any{"error": "disk full"}, now, "trace-1")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.auditRepo.Add(ctx, engineEntry))

	query, err := queries.NewGetTicketHistoryQuery(tk.ID())
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(history.AuditLog, 1)
	suite.Equal("ticket", history.AuditLog[0].Entity)
}

func (suite *GetTicketHistoryQueryHandlerTestSuite) TestHandle_MessagesOrderedOldestFirst() {
	ctx := context.Background()
	tk := suite.seedTicket(ticket.Collecting)
	base := time.Now().UTC().Add(-time.Hour)

	for i := range 3 {
		record, err := message.NewMessage(
			tk.ID(), message.RoleSystem, "user_provided",
			ticket.Payload{"seq": float64(i)}, base.Add(time.Duration(i)*time.Minute), "trace-3")
		suite.Require().NoError(err)
		err = suite.messageRepo.Add(ctx, record)
		suite.Require().NoError(err)
	}

	query, err := queries.NewGetTicketHistoryQuery(tk.ID())
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(history.Messages, 3)
	for i := range 3 {
		suite.Equal(float64(i), history.Messages[i].ExtractedFields["seq"])
	}
}

func TestGetTicketHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetTicketHistoryQueryHandlerTestSuite))
}
