// Package services contains domain services of the orchestration engine:
// business decisions that span value objects without belonging to a single
// aggregate. The escalation policy decides, from an agent result alone,
// whether a human follow-up task is required.
package services
