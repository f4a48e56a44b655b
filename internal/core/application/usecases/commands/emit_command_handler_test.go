package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orchestrator/internal/core/application/usecases/commands"
	"orchestrator/internal/core/domain/model/agent"
	"orchestrator/internal/core/domain/model/audit"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/message"
	"orchestrator/internal/core/domain/model/task"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/core/domain/services"
	"orchestrator/internal/core/ports"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTicketRepository) Get(_ context.Context, _ kernel.UUID) (*ticket.Ticket, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockTicketRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Add(ctx context.Context, record message.Message) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Add(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockAgentLogRepository struct{ mock.Mock }

func (m *MockAgentLogRepository) Add(ctx context.Context, entry agent.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, aggregate task.Task) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockOrchestrationUoW struct{ mock.Mock }

func (m *MockOrchestrationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrchestrationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrchestrationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrchestrationUoW) TicketRepository() ports.TicketRepository {
	args := m.Called()
	return args.Get(0).(ports.TicketRepository)
}
func (m *MockOrchestrationUoW) MessageRepository() ports.MessageRepository {
	args := m.Called()
	return args.Get(0).(ports.MessageRepository)
}
func (m *MockOrchestrationUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}
func (m *MockOrchestrationUoW) AgentLogRepository() ports.AgentLogRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentLogRepository)
}
func (m *MockOrchestrationUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

type MockOrchestrationUoWFactory struct{ mock.Mock }

func (m *MockOrchestrationUoWFactory) Create() commands.OrchestrationUoW {
	args := m.Called()
	return args.Get(0).(commands.OrchestrationUoW)
}

type emitFixture struct {
	tickets  *MockTicketRepository
	messages *MockMessageRepository
	audits   *MockAuditRepository
	agentLog *MockAgentLogRepository
	tasks    *MockTaskRepository
	uow      *MockOrchestrationUoW
	factory  *MockOrchestrationUoWFactory
	fallback *MockAuditRepository
}

func newEmitFixture() *emitFixture {
	f := &emitFixture{
		tickets:  new(MockTicketRepository),
		messages: new(MockMessageRepository),
		audits:   new(MockAuditRepository),
		agentLog: new(MockAgentLogRepository),
		tasks:    new(MockTaskRepository),
		uow:      new(MockOrchestrationUoW),
		factory:  new(MockOrchestrationUoWFactory),
		fallback: new(MockAuditRepository),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("TicketRepository").Return(f.tickets).Maybe()
	f.uow.On("MessageRepository").Return(f.messages).Maybe()
	f.uow.On("AuditRepository").Return(f.audits).Maybe()
	f.uow.On("AgentLogRepository").Return(f.agentLog).Maybe()
	f.uow.On("TaskRepository").Return(f.tasks).Maybe()
	return f
}

func (f *emitFixture) handler(t *testing.T) commands.EmitCommandHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return commands.NewEmitCommandHandler(f.factory, f.fallback, services.NewEscalationPolicy(), logger)
}

func (f *emitFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.tickets.AssertExpectations(t)
	f.messages.AssertExpectations(t)
	f.audits.AssertExpectations(t)
	f.agentLog.AssertExpectations(t)
	f.tasks.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.fallback.AssertExpectations(t)
}

func restoredTicket(t *testing.T, status ticket.Status) *ticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.RestoreTicket(kernel.NewUUID(), status, now, now)
	require.NoError(t, err)
	return tk
}

func TestEmitCommandHandler_Handle_CreatesTicket(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewEmitCommand(
		"trace-1", ticket.EventUserProvided, nil, ticket.Payload{"name": "ACME"}, "")
	require.NoError(t, err)

	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("Add", ctx, mock.AnythingOfType("*ticket.Ticket")).Return(nil).Once(),
		f.messages.On("Add", ctx, mock.AnythingOfType("message.Message")).Return(nil).Once(),
		f.audits.On("Add", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		f.tickets.On("Update", ctx, mock.AnythingOfType("*ticket.Ticket")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, "trace-1", result.TraceID)
	require.NoError(t, result.TicketID.Validate())
	require.Equal(t, ticket.Collecting, result.Status)
	require.Equal(t, ticket.EventUserProvided, result.AcceptedEvent)
	f.assertExpectations(t)
}

func TestEmitCommandHandler_Handle_AdvancesExistingTicket(t *testing.T) {
	ctx := t.Context()
	tk := restoredTicket(t, ticket.Collecting)
	id := tk.ID()
	cmd, err := commands.NewEmitCommand(
		"trace-2", ticket.EventFileUploaded, &id, ticket.Payload{"file": "invoice.pdf"}, "ops@example.com")
	require.NoError(t, err)

	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("GetForUpdate", ctx, id).Return(tk, nil).Once(),
		f.messages.On("Add", ctx, mock.AnythingOfType("message.Message")).Return(nil).Once(),
		f.audits.On("Add", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		f.tickets.On("Update", ctx, tk).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, id, result.TicketID)
	require.Equal(t, ticket.WaitingDocs, result.Status)
	f.assertExpectations(t)
}

func TestEmitCommandHandler_Handle_RejectsInvalidTransition(t *testing.T) {
	ctx := t.Context()
	tk := restoredTicket(t, ticket.Archived)
	id := tk.ID()
	cmd, err := commands.NewEmitCommand(
		"trace-3", ticket.EventOperatorAction, &id, nil, "ops@example.com")
	require.NoError(t, err)

	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("GetForUpdate", ctx, id).Return(tk, nil).Once(),
		f.messages.On("Add", ctx, mock.AnythingOfType("message.Message")).Return(nil).Once(),
		// event audit, then the conflict entry
		f.audits.On("Add", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Twice(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	result, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ticket.ErrInvalidTransition)
	require.Equal(t, "trace-3", result.TraceID)
	require.Equal(t, ticket.Archived, result.Status)
	require.Empty(t, result.AcceptedEvent)
	f.assertExpectations(t)
	// a rejected transition is not an engine failure
	f.fallback.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestEmitCommandHandler_Handle_TicketNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewEmitCommand(
		"trace-4", ticket.EventUserProvided, &id, nil, "")
	require.NoError(t, err)

	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("GetForUpdate", ctx, id).
			Return(nil, errs.NewObjectNotFoundError("ticketId", id.String())).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
	f.fallback.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestEmitCommandHandler_Handle_LowConfidenceEscalates(t *testing.T) {
	ctx := t.Context()
	tk := restoredTicket(t, ticket.WaitingDocs)
	id := tk.ID()
	cmd, err := commands.NewEmitCommand(
		"trace-5", ticket.EventAgentResult, &id,
		ticket.Payload{
			"diff":            map[string]any{"hs_code": "8471"},
			"confidence":      0.42,
			"required_fields": []any{"weight"},
		}, "")
	require.NoError(t, err)

	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("GetForUpdate", ctx, id).Return(tk, nil).Once(),
		f.messages.On("Add", ctx, mock.AnythingOfType("message.Message")).Return(nil).Once(),
		f.audits.On("Add", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		f.tickets.On("Update", ctx, tk).Return(nil).Once(),
		f.agentLog.On("Add", ctx, mock.AnythingOfType("agent.LogEntry")).Return(nil).Once(),
		f.tasks.On("Add", ctx, mock.MatchedBy(func(tsk task.Task) bool {
			payload := tsk.Payload()
			return tsk.Kind() == task.KindOps &&
				payload["reason"] == services.ReasonLowConfidence &&
				payload["confidence"] == 0.42
		})).Return(nil).Once(),
		f.audits.On("Add", ctx, mock.MatchedBy(func(entry audit.Entry) bool {
			return entry.Action() == audit.ActionEscalate
		})).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, ticket.Compliance, result.Status)
	f.assertExpectations(t)
}

func TestEmitCommandHandler_Handle_ConfidentResultDoesNotEscalate(t *testing.T) {
	ctx := t.Context()
	tk := restoredTicket(t, ticket.WaitingDocs)
	id := tk.ID()
	cmd, err := commands.NewEmitCommand(
		"trace-6", ticket.EventAgentResult, &id, ticket.Payload{"confidence": 0.95}, "")
	require.NoError(t, err)

	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("GetForUpdate", ctx, id).Return(tk, nil).Once(),
		f.messages.On("Add", ctx, mock.AnythingOfType("message.Message")).Return(nil).Once(),
		f.audits.On("Add", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		f.tickets.On("Update", ctx, tk).Return(nil).Once(),
		f.agentLog.On("Add", ctx, mock.AnythingOfType("agent.LogEntry")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, ticket.Compliance, result.Status)
	f.assertExpectations(t)
	f.tasks.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestEmitCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	f := newEmitFixture()
	h := f.handler(t)

	_, err := h.Handle(ctx, commands.EmitCommand{}) // not constructed properly
	require.Error(t, err)
	f.factory.AssertNotCalled(t, "Create")
}

func TestEmitCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewEmitCommand("trace-7", ticket.EventUserProvided, nil, nil, "")
	require.NoError(t, err)

	f := newEmitFixture()
	f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	h := f.handler(t)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestEmitCommandHandler_Handle_RecordsErrorAuditOnWriteFailure(t *testing.T) {
	ctx := t.Context()
	tk := restoredTicket(t, ticket.Collecting)
	id := tk.ID()
	cmd, err := commands.NewEmitCommand(
		"trace-8", ticket.EventFileUploaded, &id, nil, "")
	require.NoError(t, err)

	writeErr := errors.New("disk full")
	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("GetForUpdate", ctx, id).Return(tk, nil).Once(),
		f.messages.On("Add", ctx, mock.AnythingOfType("message.Message")).Return(writeErr).Once(),
		f.fallback.On("Add", ctx, mock.MatchedBy(func(entry audit.Entry) bool {
			return entry.Action() == audit.ActionError && entry.TraceID() == "trace-8"
		})).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, writeErr)
	f.assertExpectations(t)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestEmitCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewEmitCommand("trace-9", ticket.EventUserProvided, nil, nil, "")
	require.NoError(t, err)

	commitErr := errors.New("commit error")
	f := newEmitFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.tickets.On("Add", ctx, mock.AnythingOfType("*ticket.Ticket")).Return(nil).Once(),
		f.messages.On("Add", ctx, mock.AnythingOfType("message.Message")).Return(nil).Once(),
		f.audits.On("Add", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		f.tickets.On("Update", ctx, mock.AnythingOfType("*ticket.Ticket")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(commitErr).Once(),
		f.fallback.On("Add", ctx, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := f.handler(t)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commitErr)
	f.assertExpectations(t)
}
