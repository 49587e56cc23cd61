package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/roadsign/internal/errs"
)

// Quiz is one generated question shown to a user.
type Quiz struct {
	ID         string
	Phone      string
	Question   string
	Difficulty string
	Type       string
	Correct    *bool // nil until answered
	CreatedAt  time.Time
	AnsweredAt *time.Time
}

var quizColumns = []string{"id", "phone", "question", "difficulty", "type", "correct", "created_at", "answered_at"}

// RecordQuiz inserts a quiz. A zero CreatedAt is set to now. Reusing an
// existing ID is an error.
func (s *Store) RecordQuiz(ctx context.Context, q Quiz) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	var correct any
	if q.Correct != nil {
		correct = *q.Correct
	}

	ins := builder().Insert("quizzes").
		Columns("id", "phone", "question", "difficulty", "type", "correct", "created_at").
		Values(q.ID, q.Phone, q.Question, q.Difficulty, q.Type, correct, q.CreatedAt.UnixNano())
	if _, err := s.exec(ctx, ins); err != nil {
		return fmt.Errorf("record quiz %s: %w", q.ID, err)
	}
	return nil
}

// QuizHistory returns the user's quizzes of the given type, newest first.
// Quizzes created at the same instant come back in reverse insertion order.
// An empty typ matches every type; limit <= 0 means no limit.
func (s *Store) QuizHistory(ctx context.Context, phone, typ string, limit int) ([]Quiz, error) {
	preds := []*entsql.Predicate{entsql.EQ("phone", phone)}
	if typ != "" {
		preds = append(preds, entsql.EQ("type", typ))
	}

	sel := builder().
		Select(quizColumns...).
		From(entsql.Table("quizzes")).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("rowid"))
	if limit > 0 {
		sel.Limit(limit)
	}

	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query quiz history: %w", err)
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Quiz returns a single quiz by ID.
func (s *Store) Quiz(ctx context.Context, id string) (*Quiz, error) {
	sel := builder().
		Select(quizColumns...).
		From(entsql.Table("quizzes")).
		Where(entsql.EQ("id", id))

	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query quiz: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("quiz %q: %w", id, errs.ErrNotFound)
	}
	q, err := scanQuiz(rows)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// SetQuizCorrect records the user's answer outcome.
func (s *Store) SetQuizCorrect(ctx context.Context, id string, correct bool) error {
	upd := builder().Update("quizzes").
		Set("correct", correct).
		Set("answered_at", time.Now().UnixNano()).
		Where(entsql.EQ("id", id))

	res, err := s.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("set quiz answer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set quiz answer: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("quiz %q: %w", id, errs.ErrNotFound)
	}
	return nil
}

// TypeStats counts quizzes of one type.
type TypeStats struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// QuizStats aggregates a user's quiz results.
type QuizStats struct {
	TypeStats
	ByType map[string]TypeStats `json:"by_type"`
}

// QuizStats counts the user's quizzes per type.
func (s *Store) QuizStats(ctx context.Context, phone string) (QuizStats, error) {
	sel := builder().
		Select("type", entsql.Count("*"), entsql.Count("correct"), "COALESCE("+entsql.Sum("correct")+", 0)").
		From(entsql.Table("quizzes")).
		Where(entsql.EQ("phone", phone)).
		GroupBy("type")

	stats := QuizStats{ByType: map[string]TypeStats{}}

	rows, err := s.query(ctx, sel)
	if err != nil {
		return stats, fmt.Errorf("query quiz stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			typ string
			ts  TypeStats
		)
		if err := rows.Scan(&typ, &ts.Total, &ts.Answered, &ts.Correct); err != nil {
			return stats, fmt.Errorf("scan quiz stats: %w", err)
		}
		stats.ByType[typ] = ts
		stats.Total += ts.Total
		stats.Answered += ts.Answered
		stats.Correct += ts.Correct
	}
	return stats, rows.Err()
}

func scanQuiz(rows *entsql.Rows) (Quiz, error) {
	var (
		q        Quiz
		correct  sql.NullBool
		created  int64
		answered sql.NullInt64
	)
	err := rows.Scan(&q.ID, &q.Phone, &q.Question, &q.Difficulty, &q.Type, &correct, &created, &answered)
	if err != nil {
		return Quiz{}, fmt.Errorf("scan quiz: %w", err)
	}
	if correct.Valid {
		q.Correct = &correct.Bool
	}
	q.CreatedAt = time.Unix(0, created).UTC()
	if answered.Valid {
		t := time.Unix(0, answered.Int64).UTC()
		q.AnsweredAt = &t
	}
	return q, nil
}

// IsConstraintViolation reports whether err is a SQLite constraint
// failure, such as a reused quiz ID.
func IsConstraintViolation(err error) bool {
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		return coded.Code()&0xff == 19 // SQLITE_CONSTRAINT and its extended codes
	}
	return false
}
