// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// The emit command is the single entry point through which events reach tickets;
// it composes the ticket store and all append-only logs inside one transaction.
package commands

import (
	"context"

	"orchestrator/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across the ticket store and its logs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TicketRepoFactory provides access to the ticket repository within a transaction.
	TicketRepoFactory interface {
		TicketRepository() ports.TicketRepository
	}

	// MessageRepoFactory provides access to the event log within a transaction.
	MessageRepoFactory interface {
		MessageRepository() ports.MessageRepository
	}

	// AuditRepoFactory provides access to the audit trail within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// AgentLogRepoFactory provides access to the agent log within a transaction.
	AgentLogRepoFactory interface {
		AgentLogRepository() ports.AgentLogRepository
	}

	// TaskRepoFactory provides access to the task queue within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// OrchestrationUoW manages the transaction spanning every write an emit
	// invocation performs: ticket status, event log, audit trail, agent log,
	// and escalated tasks.
	OrchestrationUoW interface {
		TxManager
		TicketRepoFactory
		MessageRepoFactory
		AuditRepoFactory
		AgentLogRepoFactory
		TaskRepoFactory
	}

	// OrchestrationUoWFactory creates new unit of work instances, one per
	// emit invocation.
	OrchestrationUoWFactory interface {
		Create() OrchestrationUoW
	}
)
