package quizgen

import (
	"fmt"
	"strings"
)

// OptionsValidator requires exactly four non-empty, distinct options.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *MCQ) *ValidationError {
	if len(q.Options) != OptionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options)),
			Retryable: true,
		}
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		norm := strings.ToLower(strings.TrimSpace(opt))
		if norm == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d is empty", i),
				Retryable: true,
			}
		}
		if seen[norm] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d duplicates another option", i),
				Retryable: true,
			}
		}
		seen[norm] = true
	}
	return nil
}

// AnswerIndexValidator requires the answer to index one of the options.
type AnswerIndexValidator struct{}

func (v *AnswerIndexValidator) Name() string { return "answer-index" }

func (v *AnswerIndexValidator) Validate(q *MCQ) *ValidationError {
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %d is out of range for %d options", q.Answer, len(q.Options)),
			Retryable: true,
		}
	}
	return nil
}
