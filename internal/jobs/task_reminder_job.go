package jobs

import (
	"context"
	"log/slog"
	"time"

	"orchestrator/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// staleAfter is how long an escalated task may sit unclaimed before the
// reminder job starts reporting it.
const staleAfter = 15 * time.Minute

// TaskReminderJob periodically reports escalated tasks that nobody has picked
// up. It is read-only: tasks are surfaced through the log, not mutated.
type TaskReminderJob struct {
	handler queries.GetStaleTasksQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTaskReminderJob creates a job that reminds about unclaimed escalations.
func NewTaskReminderJob(handler queries.GetStaleTasksQueryHandler, logger *slog.Logger) *TaskReminderJob {
	return &TaskReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "task_reminder_job"),
	}
}

// Start begins the reminder job to run every minute.
func (j *TaskReminderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetStaleTasksQuery(staleAfter)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build stale tasks query", "error", queryErr)
			return
		}

		stale, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale task lookup failed", "error", handleErr)
			return
		}

		for _, item := range stale {
			j.logger.WarnContext(ctx, "Escalated task still unclaimed",
				"task_id", item.ID,
				"ticket_id", item.TicketID.String(),
				"kind", item.Kind,
				"age", time.Since(item.CreatedAt).Round(time.Second).String(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Task reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *TaskReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Task reminder job stopped")
}
