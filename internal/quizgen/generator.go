package quizgen

import "context"

// Generator produces quiz questions from a prompt template.
type Generator interface {
	// Generate renders tmpl with fields and returns a non-empty batch in
	// which every question passed the configured validators. Failures
	// wrap errs.ErrGeneration, except a missing template field which
	// wraps errs.ErrInvalidArgument.
	Generate(ctx context.Context, tmpl *Template, fields map[string]string) ([]MCQ, error)
}
