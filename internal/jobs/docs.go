// Package jobs provides scheduled background tasks for the orchestration
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the escalation queue.
//
// # Available Jobs
//
// 1. TaskReminderJob - Runs every minute to surface escalated tasks that no
// operator has picked up within the staleness window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleTasksHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reminder job is read-only: it never mutates tasks, it only logs them.
// Query failures are logged and retried on the next tick.
package jobs
