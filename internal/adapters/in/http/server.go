package http

import (
	"errors"
	"net/http"

	"orchestrator/internal/core/application/usecases/commands"
	"orchestrator/internal/core/application/usecases/queries"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/ticket"
	"orchestrator/internal/generated/servers"
	"orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actorHeader carries the caller identity recorded in the audit trail.
// Absent or empty, the actor defaults to the system identity.
const actorHeader = "X-Actor"

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	emitHandler    commands.EmitCommandHandler
	historyHandler queries.GetTicketHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	emitHandler commands.EmitCommandHandler,
	historyHandler queries.GetTicketHistoryQueryHandler,
) *Server {
	return &Server{
		emitHandler:    emitHandler,
		historyHandler: historyHandler,
	}
}

// EmitEvent handles POST /api/orch/emit - applies an event to a ticket.
func (s *Server) EmitEvent(ctx echo.Context) error {
	var request servers.EmitRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			TraceId: uuid.NewString(),
			Error:   "bad_request",
		})
	}

	traceID := uuid.NewString()
	if request.TraceId != nil && *request.TraceId != "" {
		traceID = *request.TraceId
	}

	if request.Event == "" {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			TraceId: traceID,
			Error:   "event_required",
		})
	}

	var ticketID *kernel.UUID
	if request.TicketId != nil {
		id, err := kernel.UUIDFromBytes((*request.TicketId)[:])
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, servers.Error{
				TraceId: traceID,
				Error:   "bad_request",
			})
		}
		ticketID = &id
	}

	var payload ticket.Payload
	if request.Payload != nil {
		payload = ticket.Payload(*request.Payload)
	}

	cmd, err := commands.NewEmitCommand(
		traceID, ticket.Event(request.Event), ticketID, payload, ctx.Request().Header.Get(actorHeader))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			TraceId: traceID,
			Error:   "bad_request",
		})
	}

	result, err := s.emitHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, servers.Error{
				TraceId: traceID,
				Error:   "ticket_not_found",
			})
		case errors.Is(err, ticket.ErrInvalidTransition):
			status := result.Status.String()
			return ctx.JSON(http.StatusConflict, servers.Error{
				TraceId: traceID,
				Error:   "invalid_transition",
				Status:  &status,
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, servers.Error{
				TraceId: traceID,
				Error:   err.Error(),
			})
		}
	}

	return ctx.JSON(http.StatusOK, servers.EmitResponse{
		TraceId:       result.TraceID,
		TicketId:      result.TicketID.Bytes(),
		Status:        result.Status.String(),
		AcceptedEvent: result.AcceptedEvent.String(),
	})
}

// GetTicketDebug handles GET /api/orch/debug - returns a ticket's full history.
func (s *Server) GetTicketDebug(ctx echo.Context, params servers.GetTicketDebugParams) error {
	traceID := uuid.NewString()

	ticketID, err := kernel.UUIDFromBytes(params.TicketId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			TraceId: traceID,
			Error:   "bad_request",
		})
	}

	query, err := queries.NewGetTicketHistoryQuery(ticketID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			TraceId: traceID,
			Error:   "bad_request",
		})
	}

	history, err := s.historyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				TraceId: traceID,
				Error:   "ticket_not_found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			TraceId: traceID,
			Error:   err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, toDebugResponse(traceID, history))
}

func toDebugResponse(traceID string, history queries.GetTicketHistoryQueryResponse) servers.DebugResponse {
	messages := make([]servers.Message, len(history.Messages))
	for i, record := range history.Messages {
		messages[i] = servers.Message{
			Id:              record.ID,
			TicketId:        record.TicketID.Bytes(),
			Role:            record.Role,
			DetectedLang:    record.DetectedLang,
			Text:            record.Text,
			Attachments:     optionalSlice(record.Attachments),
			ExtractedFields: optionalMap(record.ExtractedFields),
			Ts:              record.Ts,
			TraceId:         record.TraceID,
		}
	}

	auditLog := make([]servers.AuditEntry, len(history.AuditLog))
	for i, entry := range history.AuditLog {
		auditLog[i] = servers.AuditEntry{
			Id:       entry.ID,
			Actor:    entry.Actor,
			Action:   entry.Action,
			Entity:   entry.Entity,
			EntityId: optionalString(entry.EntityID),
			Before:   optionalMap(entry.Before),
			After:    optionalMap(entry.After),
			Ts:       entry.Ts,
			TraceId:  entry.TraceID,
		}
	}

	agentLog := make([]servers.AgentLogEntry, len(history.AgentLog))
	for i, entry := range history.AgentLog {
		agentLog[i] = servers.AgentLogEntry{
			Id:        entry.ID,
			TicketId:  entry.TicketID.Bytes(),
			AgentName: entry.AgentName,
			Input:     optionalMap(entry.Input),
			Output:    optionalMap(entry.Output),
			Status:    entry.Status,
			Ts:        entry.Ts,
			TraceId:   entry.TraceID,
		}
	}

	tasks := make([]servers.Task, len(history.Tasks))
	for i, record := range history.Tasks {
		tasks[i] = servers.Task{
			Id:        record.ID,
			TicketId:  record.TicketID.Bytes(),
			Kind:      record.Kind,
			Status:    record.Status,
			Assignee:  record.Assignee,
			DueAt:     record.DueAt,
			Payload:   optionalMap(record.Payload),
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
		}
	}

	return servers.DebugResponse{
		TraceId: traceID,
		Ticket: servers.Ticket{
			Id:        history.Ticket.ID.Bytes(),
			Status:    history.Ticket.Status,
			CreatedAt: history.Ticket.CreatedAt,
			UpdatedAt: history.Ticket.UpdatedAt,
		},
		History: servers.History{
			Messages: messages,
			AuditLog: auditLog,
			AgentLog: agentLog,
			Tasks:    tasks,
		},
	}
}

func optionalMap(m map[string]any) *map[string]interface{} {
	if m == nil {
		return nil
	}
	return &m
}

func optionalSlice(s []string) *[]string {
	if s == nil {
		return nil
	}
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
