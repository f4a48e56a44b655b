package services

import (
	"orchestrator/internal/core/domain/model/agent"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/errs"
)

// DefaultConfidenceThreshold is the confidence score below which an agent
// result is escalated to a human operator.
const DefaultConfidenceThreshold = 0.7

// ReasonLowConfidence is the escalation reason recorded in the follow-up
// task's payload and in the escalation audit entry.
const ReasonLowConfidence = "low_confidence"

// EscalationPolicy is a domain service deciding whether an agent result needs
// human follow-up.
//
// Business rules:
//   - A result without a numeric confidence score never escalates
//   - A result with confidence strictly below the threshold always escalates
//   - The decision is pure: evaluating a result has no side effects
//
// Example usage:
//
//	policy := services.NewEscalationPolicy()
//	escalation, needed := policy.Evaluate(result)
//	if needed {
//	    // create an ops task carrying escalation.Reason and escalation.Confidence
//	}
type EscalationPolicy struct {
	threshold float64
}

// NewEscalationPolicy creates a policy with the default confidence threshold.
func NewEscalationPolicy() EscalationPolicy {
	return EscalationPolicy{threshold: DefaultConfidenceThreshold}
}

// NewEscalationPolicyWithThreshold creates a policy with a custom threshold.
// The threshold must be a valid confidence score.
func NewEscalationPolicyWithThreshold(threshold float64) (EscalationPolicy, error) {
	if threshold < kernel.ConfidenceMin || threshold > kernel.ConfidenceMax {
		return EscalationPolicy{}, errs.NewValueIsOutOfRangeError(
			"threshold", threshold, kernel.ConfidenceMin, kernel.ConfidenceMax)
	}
	return EscalationPolicy{threshold: threshold}, nil
}

// Threshold returns the configured confidence threshold.
func (p EscalationPolicy) Threshold() float64 {
	return p.threshold
}

// Escalation describes a required follow-up: why it is needed and the data a
// human operator needs to triage it.
type Escalation struct {
	Reason         string
	Confidence     float64
	RequiredFields []string
}

// Evaluate decides whether the given agent result requires escalation.
// Returns the escalation details and true when the result's confidence is a
// number strictly below the threshold; otherwise returns false.
func (p EscalationPolicy) Evaluate(result agent.Result) (Escalation, bool) {
	if result.Confidence == nil {
		return Escalation{}, false
	}
	if !result.Confidence.IsBelow(p.threshold) {
		return Escalation{}, false
	}

	return Escalation{
		Reason:         ReasonLowConfidence,
		Confidence:     result.Confidence.Value(),
		RequiredFields: result.RequiredFields,
	}, true
}
