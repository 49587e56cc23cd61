package roadsign

import (
	"fmt"
	"strings"

	"github.com/abhisek/roadsign/internal/errs"
	"github.com/abhisek/roadsign/internal/quizgen"
)

// QuizType selects the prompt family and the history bucket of a quiz.
type QuizType string

const (
	QuizGeneral QuizType = "general"
	QuizSign    QuizType = "sign"
)

// ParseQuizType accepts "general" or "sign" in any letter case.
func ParseQuizType(s string) (QuizType, error) {
	t := QuizType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case QuizGeneral, QuizSign:
		return t, nil
	}
	return "", fmt.Errorf("unknown quiz type %q: %w", s, errs.ErrInvalidArgument)
}

// Quiz is a delivered question together with the ID under which the
// user's answer is recorded.
type Quiz struct {
	ID string `json:"id"`
	quizgen.MCQ
}

// DefaultLevel is used when a request does not name a level.
const DefaultLevel = "2"

// NormalizeLevel returns level, or DefaultLevel when empty. Levels run
// from "1" to "5".
func NormalizeLevel(level string) (string, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return DefaultLevel, nil
	}
	if len(level) != 1 || level[0] < '1' || level[0] > '5' {
		return "", fmt.Errorf("level %q must be between 1 and 5: %w", level, errs.ErrInvalidArgument)
	}
	return level, nil
}
