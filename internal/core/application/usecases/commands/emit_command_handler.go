package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orchestrator/internal/core/domain/model/agent"
	"orchestrator/internal/core/domain/model/audit"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/message"
	"orchestrator/internal/core/domain/model/task"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/core/domain/services"
	"orchestrator/internal/core/ports"
	"orchestrator/internal/pkg/errs"
)

// EmitResult is the outcome of an emit invocation returned to the caller.
type EmitResult struct {
	TraceID       string
	TicketID      kernel.UUID
	Status        ticket.Status
	AcceptedEvent ticket.Event
}

// EmitCommandHandler is the orchestrator facade: the single write path through
// which events reach tickets. One invocation performs, inside one transaction:
//
//  1. Resolve the ticket (create in status "new" when no id is given, load
//     with a row lock otherwise).
//  2. Append the inbound event to the message log.
//  3. Append the state-change intent to the audit trail.
//  4. Consult the transition table; persist the new status on acceptance, or
//     record an fsm_conflict audit entry and surface the conflict on rejection.
//  5. For agent_result events, append an agent log entry and escalate
//     low-confidence results into the task queue with an escalate audit entry.
//
// The transaction commits on every non-failure path, including conflicts, so
// that the trail of a rejected event is durable before the error reaches the
// caller. On unexpected failures the transaction rolls back and a best-effort
// error audit entry is written outside of it; a failure of that secondary
// write is logged and never masks the primary error.
type EmitCommandHandler struct {
	uowFactory OrchestrationUoWFactory
	errorAudit ports.AuditRepository
	policy     services.EscalationPolicy
	logger     *slog.Logger
	clock      func() time.Time
}

// NewEmitCommandHandler creates the handler for the emit entry point.
// errorAudit must not be bound to the unit of work's transaction: it is the
// fallback trail used after a rollback.
func NewEmitCommandHandler(
	uowFactory OrchestrationUoWFactory,
	errorAudit ports.AuditRepository,
	policy services.EscalationPolicy,
	logger *slog.Logger,
) EmitCommandHandler {
	return EmitCommandHandler{
		uowFactory: uowFactory,
		errorAudit: errorAudit,
		policy:     policy,
		logger:     logger.With("component", "emit_command_handler"),
		clock:      time.Now,
	}
}

// Handle processes one emit invocation. See the handler doc for the sequence.
//
// Error contract:
//   - validation errors and unknown ticket ids are returned as-is, unaudited
//     (nothing was written yet)
//   - transition conflicts return the unchanged status in the result together
//     with an error unwrapping to ticket.ErrInvalidTransition
//   - any other failure rolls back, is recorded best-effort in the audit
//     trail, and is returned to the caller
func (h *EmitCommandHandler) Handle(ctx context.Context, cmd EmitCommand) (EmitResult, error) {
	if err := cmd.Validate(); err != nil {
		return EmitResult{}, err
	}

	now := h.clock().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return EmitResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tk, err := h.resolveTicket(ctx, uow, cmd, now)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return EmitResult{}, err
		}
		return h.fail(ctx, cmd, err)
	}
	statusBefore := tk.Status()

	if err = h.appendMessage(ctx, uow, cmd, tk, now); err != nil {
		return h.fail(ctx, cmd, err)
	}

	if err = h.appendEventAudit(ctx, uow, cmd, tk, now); err != nil {
		return h.fail(ctx, cmd, err)
	}

	changed, applyErr := tk.Apply(cmd.Event(), cmd.Payload(), now)
	if applyErr != nil {
		if errors.Is(applyErr, ticket.ErrInvalidTransition) {
			return h.rejectTransition(ctx, uow, cmd, tk, statusBefore, now, applyErr)
		}
		return h.fail(ctx, cmd, applyErr)
	}

	if changed {
		if err = uow.TicketRepository().Update(ctx, tk); err != nil {
			return h.fail(ctx, cmd, err)
		}
	}

	if cmd.Event() == ticket.EventAgentResult {
		if err = h.processAgentResult(ctx, uow, cmd, tk, statusBefore, now); err != nil {
			return h.fail(ctx, cmd, err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return h.fail(ctx, cmd, err)
	}

	return EmitResult{
		TraceID:       cmd.TraceID(),
		TicketID:      tk.ID(),
		Status:        tk.Status(),
		AcceptedEvent: cmd.Event(),
	}, nil
}

// resolveTicket creates a fresh ticket when the command carries no id, and
// otherwise loads the ticket under a row lock so concurrent events on the
// same ticket serialize their transitions.
func (h *EmitCommandHandler) resolveTicket(
	ctx context.Context,
	uow OrchestrationUoW,
	cmd EmitCommand,
	now time.Time,
) (*ticket.Ticket, error) {
	repo := uow.TicketRepository()

	if cmd.TicketID() == nil {
		tk, err := ticket.NewTicket(kernel.NewUUID(), now)
		if err != nil {
			return nil, err
		}
		if err = repo.Add(ctx, tk); err != nil {
			return nil, err
		}
		return tk, nil
	}

	return repo.GetForUpdate(ctx, *cmd.TicketID())
}

func (h *EmitCommandHandler) appendMessage(
	ctx context.Context,
	uow OrchestrationUoW,
	cmd EmitCommand,
	tk *ticket.Ticket,
	now time.Time,
) error {
	record, err := message.NewMessage(
		tk.ID(), message.RoleSystem, cmd.Event().String(), cmd.Payload(), now, cmd.TraceID())
	if err != nil {
		return err
	}
	return uow.MessageRepository().Add(ctx, record)
}

func (h *EmitCommandHandler) appendEventAudit(
	ctx context.Context,
	uow OrchestrationUoW,
	cmd EmitCommand,
	tk *ticket.Ticket,
	now time.Time,
) error {
	entry, err := audit.NewEntry(
		cmd.Actor(), audit.EventAction(cmd.Event()), audit.EntityTicket, tk.ID().String(),
		nil, cmd.Payload(), now, cmd.TraceID())
	if err != nil {
		return err
	}
	return uow.AuditRepository().Add(ctx, entry)
}

// rejectTransition records the conflict in the audit trail, commits the
// transaction so the rejected event and its conflict entry are durable, and
// returns the unchanged status together with the conflict error.
func (h *EmitCommandHandler) rejectTransition(
	ctx context.Context,
	uow OrchestrationUoW,
	cmd EmitCommand,
	tk *ticket.Ticket,
	statusBefore ticket.Status,
	now time.Time,
	conflict error,
) (EmitResult, error) {
	entry, err := audit.NewEntry(
		cmd.Actor(), audit.ActionFSMConflict, audit.EntityTicket, tk.ID().String(),
		map[string]any{"status": statusBefore.String()},
		map[string]any{"status": statusBefore.String(), "event": cmd.Event().String()},
		now, cmd.TraceID())
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return h.fail(ctx, cmd, err)
	}
	if err = uow.Commit(ctx); err != nil {
		return h.fail(ctx, cmd, err)
	}

	return EmitResult{
		TraceID:  cmd.TraceID(),
		TicketID: tk.ID(),
		Status:   statusBefore,
	}, conflict
}

// processAgentResult appends the agent log entry and, when the escalation
// policy demands it, creates the follow-up task and the escalate audit entry.
func (h *EmitCommandHandler) processAgentResult(
	ctx context.Context,
	uow OrchestrationUoW,
	cmd EmitCommand,
	tk *ticket.Ticket,
	statusBefore ticket.Status,
	now time.Time,
) error {
	result := cmd.AgentResult()

	input := agent.Input{
		Context: agent.Context{TicketID: tk.ID().String(), Status: statusBefore.String()},
		TraceID: cmd.TraceID(),
		Payload: cmd.Payload(),
	}
	output := agent.Output{
		Diff:           result.Diff,
		Confidence:     result.ConfidenceValue(),
		RequiredFields: result.RequiredFields,
	}

	logEntry, err := agent.NewLogEntry(
		tk.ID(), agent.Name, input, output, agent.StatusOK, now, cmd.TraceID())
	if err != nil {
		return err
	}
	if err = uow.AgentLogRepository().Add(ctx, logEntry); err != nil {
		return err
	}

	escalation, needed := h.policy.Evaluate(*result)
	if !needed {
		return nil
	}

	followUp, err := task.NewTask(tk.ID(), task.KindOps, map[string]any{
		"reason":          escalation.Reason,
		"confidence":      escalation.Confidence,
		"required_fields": escalation.RequiredFields,
	}, now)
	if err != nil {
		return err
	}
	if err = uow.TaskRepository().Add(ctx, followUp); err != nil {
		return err
	}

	escalateEntry, err := audit.NewEntry(
		cmd.Actor(), audit.ActionEscalate, audit.EntityTicket, tk.ID().String(),
		nil, map[string]any{"confidence": escalation.Confidence}, now, cmd.TraceID())
	if err != nil {
		return err
	}
	return uow.AuditRepository().Add(ctx, escalateEntry)
}

// fail surfaces an unexpected failure: the deferred rollback discards the
// transaction, and a best-effort error entry is written to the audit trail
// outside of it so the anomaly stays traceable by trace id.
func (h *EmitCommandHandler) fail(ctx context.Context, cmd EmitCommand, cause error) (EmitResult, error) {
	entry, err := audit.NewEntry(
		cmd.Actor(), audit.ActionError, audit.EntityOrchestrator, "",
		nil, map[string]any{"error": cause.Error()}, h.clock().UTC(), cmd.TraceID())
	if err == nil {
		if addErr := h.errorAudit.Add(ctx, entry); addErr != nil {
			// The secondary write must never mask the primary failure.
			h.logger.ErrorContext(ctx, "failed to record error audit entry",
				"error", addErr, "trace_id", cmd.TraceID())
		}
	}
	return EmitResult{}, cause
}
