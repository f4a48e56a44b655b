package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"orchestrator/internal/core/domain/model/audit"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// historyLimit caps each log section of the history response. The logs are
// append-only and unbounded; the debug surface only needs the oldest part of
// the trail to reconstruct what happened.
const historyLimit = 200

// GetTicketHistoryQueryHandler retrieves a ticket and its accumulated records
// from the database. The four logs are independent tables, so they are
// fetched concurrently once the ticket itself is confirmed to exist.
type GetTicketHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetTicketHistoryQueryHandler creates a handler for ticket history queries.
// Requires a GORM database connection for query execution.
func NewGetTicketHistoryQueryHandler(db *gorm.DB) GetTicketHistoryQueryHandler {
	return GetTicketHistoryQueryHandler{db: db}
}

// Handle executes the query. Returns an error unwrapping to
// errs.ErrObjectNotFound when the ticket does not exist. Each log section is
// ordered oldest-first and capped at 200 records.
func (h GetTicketHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTicketHistoryQuery,
) (GetTicketHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTicketHistoryQueryResponse{}, err
	}

	ticket, err := h.fetchTicket(ctx, query.TicketID())
	if err != nil {
		return GetTicketHistoryQueryResponse{}, err
	}

	response := GetTicketHistoryQueryResponse{Ticket: ticket}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var fetchErr error
		response.Messages, fetchErr = h.fetchMessages(groupCtx, query.TicketID())
		return fetchErr
	})
	group.Go(func() error {
		var fetchErr error
		response.AuditLog, fetchErr = h.fetchAuditLog(groupCtx, query.TicketID())
		return fetchErr
	})
	group.Go(func() error {
		var fetchErr error
		response.AgentLog, fetchErr = h.fetchAgentLog(groupCtx, query.TicketID())
		return fetchErr
	})
	group.Go(func() error {
		var fetchErr error
		response.Tasks, fetchErr = h.fetchTasks(groupCtx, query.TicketID())
		return fetchErr
	})

	if err = group.Wait(); err != nil {
		return GetTicketHistoryQueryResponse{}, err
	}

	return response, nil
}

func (h GetTicketHistoryQueryHandler) fetchTicket(
	ctx context.Context,
	ticketID kernel.UUID,
) (TicketResponse, error) {
	var ticket TicketResponse
	var id uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			created_at,
			updated_at
		FROM tickets
		WHERE id = ?
	`, ticketID.Bytes()).Row()

	err := row.Scan(&id, &ticket.Status, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return TicketResponse{}, errs.NewObjectNotFoundError("ticketId", ticketID.String())
		}
		return TicketResponse{}, err
	}

	ticket.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TicketResponse{}, err
	}
	return ticket, nil
}

func (h GetTicketHistoryQueryHandler) fetchMessages(
	ctx context.Context,
	ticketID kernel.UUID,
) ([]MessageResponse, error) {
	messages := make([]MessageResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ticket_id,
			role,
			detected_lang,
			text,
			attachments,
			extracted_fields,
			ts,
			trace_id
		FROM messages
		WHERE ticket_id = ?
		ORDER BY ts
		LIMIT ?
	`, ticketID.Bytes(), historyLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record MessageResponse
		var id uuid.UUID
		var detectedLang sql.NullString
		var attachments pq.StringArray
		var extractedFields []byte

		err = rows.Scan(
			&record.ID,
			&id,
			&record.Role,
			&detectedLang,
			&record.Text,
			&attachments,
			&extractedFields,
			&record.Ts,
			&record.TraceID,
		)
		if err != nil {
			return nil, err
		}

		record.TicketID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if detectedLang.Valid {
			record.DetectedLang = &detectedLang.String
		}
		record.Attachments = attachments
		record.ExtractedFields, err = unmarshalJSONColumn(extractedFields)
		if err != nil {
			return nil, err
		}

		messages = append(messages, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (h GetTicketHistoryQueryHandler) fetchAuditLog(
	ctx context.Context,
	ticketID kernel.UUID,
) ([]AuditEntryResponse, error) {
	entries := make([]AuditEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor,
			action,
			entity,
			entity_id,
			before,
			after,
			ts,
			trace_id
		FROM audit_log
		WHERE entity = ? AND entity_id = ?
		ORDER BY ts
		LIMIT ?
	`, audit.EntityTicket, ticketID.String(), historyLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry AuditEntryResponse
		var before, after []byte

		err = rows.Scan(
			&entry.ID,
			&entry.Actor,
			&entry.Action,
			&entry.Entity,
			&entry.EntityID,
			&before,
			&after,
			&entry.Ts,
			&entry.TraceID,
		)
		if err != nil {
			return nil, err
		}

		entry.Before, err = unmarshalJSONColumn(before)
		if err != nil {
			return nil, err
		}
		entry.After, err = unmarshalJSONColumn(after)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (h GetTicketHistoryQueryHandler) fetchAgentLog(
	ctx context.Context,
	ticketID kernel.UUID,
) ([]AgentLogEntryResponse, error) {
	entries := make([]AgentLogEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ticket_id,
			agent_name,
			input,
			output,
			status,
			ts,
			trace_id
		FROM agent_log
		WHERE ticket_id = ?
		ORDER BY ts
		LIMIT ?
	`, ticketID.Bytes(), historyLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry AgentLogEntryResponse
		var id uuid.UUID
		var input, output []byte

		err = rows.Scan(
			&entry.ID,
			&id,
			&entry.AgentName,
			&input,
			&output,
			&entry.Status,
			&entry.Ts,
			&entry.TraceID,
		)
		if err != nil {
			return nil, err
		}

		entry.TicketID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		entry.Input, err = unmarshalJSONColumn(input)
		if err != nil {
			return nil, err
		}
		entry.Output, err = unmarshalJSONColumn(output)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (h GetTicketHistoryQueryHandler) fetchTasks(
	ctx context.Context,
	ticketID kernel.UUID,
) ([]TaskResponse, error) {
	tasks := make([]TaskResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ticket_id,
			kind,
			status,
			assignee,
			due_at,
			payload,
			created_at,
			updated_at
		FROM tasks
		WHERE ticket_id = ?
		ORDER BY created_at
		LIMIT ?
	`, ticketID.Bytes(), historyLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record TaskResponse
		var id uuid.UUID
		var assignee sql.NullString
		var dueAt sql.NullTime
		var payload []byte

		err = rows.Scan(
			&record.ID,
			&id,
			&record.Kind,
			&record.Status,
			&assignee,
			&dueAt,
			&payload,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		record.TicketID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if assignee.Valid {
			record.Assignee = &assignee.String
		}
		if dueAt.Valid {
			record.DueAt = &dueAt.Time
		}
		record.Payload, err = unmarshalJSONColumn(payload)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// unmarshalJSONColumn decodes a nullable jsonb column into a map.
// NULL and SQL-level empty values decode to nil.
func unmarshalJSONColumn(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
