package kernel

import (
	"fmt"

	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

const (
	// ConfidenceMin is the lowest valid confidence score.
	ConfidenceMin float64 = 0
	// ConfidenceMax is the highest valid confidence score.
	ConfidenceMax float64 = 1
)

// ErrConfidenceIsNotConstructed is returned when attempting to use an improperly initialized Confidence.
// Confidence values must be created using the NewConfidence constructor to ensure validity.
var ErrConfidenceIsNotConstructed = errs.NewValueIsRequiredError(
	"confidence must be created via NewConfidence constructor")

// Confidence represents how certain an automated agent was about its result,
// as a score in [ConfidenceMin..ConfidenceMax]. Confidence is an immutable
// value object; the zero value is invalid and will fail validation.
//
// Example:
//
//	c, err := kernel.NewConfidence(0.42)
//	if err != nil {
//	    // Handle validation error
//	}
//	if c.IsBelow(0.7) {
//	    // Escalate to a human operator
//	}
type Confidence struct { //nolint:recvcheck //using for validation
	value float64
	guard guard.ConstructorGuard
}

// NewConfidence creates a Confidence with the given score.
// The score must be within [ConfidenceMin..ConfidenceMax] inclusive.
// Returns an error if the score is outside the valid bounds.
func NewConfidence(value float64) (Confidence, error) {
	c := Confidence{
		guard: guard.NewConstructorGuard(),
	}

	if err := c.setValue(value); err != nil {
		return Confidence{}, err
	}

	return c, nil
}

// Validate checks if the Confidence was properly constructed using the constructor.
// The zero value of Confidence is invalid and will fail this validation.
func (c Confidence) Validate() error {
	return c.guard.Validate(ErrConfidenceIsNotConstructed)
}

// Value returns the raw confidence score.
func (c Confidence) Value() float64 {
	return c.value
}

// IsBelow reports whether the score is strictly below the given threshold.
func (c Confidence) IsBelow(threshold float64) bool {
	return c.value < threshold
}

// IsEqual compares two Confidence values by score.
func (c Confidence) IsEqual(other Confidence) bool {
	return c.value == other.value
}

// String returns a human-readable representation, e.g. "Confidence(0.85)".
func (c Confidence) String() string {
	return fmt.Sprintf("Confidence(%g)", c.value)
}

func (c *Confidence) setValue(value float64) error {
	if value < ConfidenceMin || value > ConfidenceMax {
		return errs.NewValueIsOutOfRangeError("confidence", value, ConfidenceMin, ConfidenceMax)
	}
	c.value = value
	return nil
}
