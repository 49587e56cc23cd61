package quizgen

import (
	"fmt"

	"github.com/abhisek/roadsign/internal/errs"
)

// Validator checks a generated question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs,
	// e.g. "structural", "options".
	Name() string

	// Validate returns nil if q passes the check.
	Validate(q *MCQ) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Unwrap makes every validation failure a generation error.
func (e *ValidationError) Unwrap() error {
	return errs.ErrGeneration
}
