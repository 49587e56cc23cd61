package quizgen

import "unicode/utf8"

const (
	maxQuestionLen    = 600
	maxExplanationLen = 1500
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *MCQ) *ValidationError {
	if q.Question == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question is empty",
			Retryable: true,
		}
	}
	if utf8.RuneCountInString(q.Question) > maxQuestionLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question exceeds 600 characters",
			Retryable: true,
		}
	}
	if q.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
			Retryable: true,
		}
	}
	if utf8.RuneCountInString(q.Explanation) > maxExplanationLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1500 characters",
			Retryable: true,
		}
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be \"facile\", \"moyen\", or \"difficile\"",
			Retryable: true,
		}
	}
	return nil
}
