package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/roadsign/internal/errs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "roadsign.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.AppendViewedSign(ctx, "33600000001", "B1"))
	viewed, err := s.ViewedSigns(ctx, "33600000001")
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, viewed)
}

func TestViewedSigns_UnknownUserIsEmpty(t *testing.T) {
	s := openTestStore(t)
	viewed, err := s.ViewedSigns(context.Background(), "33611111111")
	require.NoError(t, err)
	assert.NotNil(t, viewed)
	assert.Empty(t, viewed)

	u, err := s.User(context.Background(), "33611111111")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAppendViewedSign_KeepsOrderAndDuplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	phone := "33622222222"

	for _, id := range []string{"AB3a", "B1", "AB3a"} {
		require.NoError(t, s.AppendViewedSign(ctx, phone, id))
	}

	viewed, err := s.ViewedSigns(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, []string{"AB3a", "B1", "AB3a"}, viewed)
}

func TestAppendViewedSign_ConcurrentAppendsAreNotLost(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	phone := "33633333333"
	const n = 40

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AppendViewedSign(ctx, phone, fmt.Sprintf("S%d", i)))
		}()
	}
	wg.Wait()

	viewed, err := s.ViewedSigns(ctx, phone)
	require.NoError(t, err)
	assert.Len(t, viewed, n)
}

func TestSetViewedSigns_Replaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	phone := "33644444444"

	require.NoError(t, s.AppendViewedSign(ctx, phone, "A1a"))
	require.NoError(t, s.SetViewedSigns(ctx, phone, []string{"C12", "D42"}))

	viewed, err := s.ViewedSigns(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, []string{"C12", "D42"}, viewed)

	require.NoError(t, s.SetViewedSigns(ctx, phone, nil))
	viewed, err = s.ViewedSigns(ctx, phone)
	require.NoError(t, err)
	assert.Empty(t, viewed)
}

func TestSetPlan(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	phone := "33655555555"

	require.NoError(t, s.SetPlan(ctx, phone, true))
	u, err := s.User(ctx, phone)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.Pro)
	assert.Empty(t, u.SignViewed)

	require.NoError(t, s.AppendViewedSign(ctx, phone, "B14"))
	require.NoError(t, s.SetPlan(ctx, phone, false))
	u, err = s.User(ctx, phone)
	require.NoError(t, err)
	assert.False(t, u.Pro)
	assert.Equal(t, []string{"B14"}, u.SignViewed, "plan change must keep history")
}

func TestQuizHistory_NewestFirstFilteredByType(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	phone := "33666666666"
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	quizzes := []Quiz{
		{ID: "q1", Question: "Q1", Type: "general", CreatedAt: base},
		{ID: "q2", Question: "Q2", Type: "sign", CreatedAt: base.Add(time.Minute)},
		{ID: "q3", Question: "Q3", Type: "general", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "q4", Question: "Q4", Type: "general", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, q := range quizzes {
		q.Phone = phone
		q.Difficulty = "facile"
		require.NoError(t, s.RecordQuiz(ctx, q))
	}
	require.NoError(t, s.RecordQuiz(ctx, Quiz{ID: "other", Phone: "33699999999", Question: "X", Difficulty: "moyen", Type: "general", CreatedAt: base.Add(time.Hour)}))

	got, err := s.QuizHistory(ctx, phone, "general", 10)
	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, q := range got {
		ids[i] = q.ID
	}
	assert.Equal(t, []string{"q4", "q3", "q1"}, ids)

	limited, err := s.QuizHistory(ctx, phone, "general", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	all, err := s.QuizHistory(ctx, phone, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.QuizHistory(ctx, "33600000000", "sign", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecordQuiz_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q := Quiz{ID: "dup", Phone: "33677777777", Question: "Q", Difficulty: "moyen", Type: "sign"}

	require.NoError(t, s.RecordQuiz(ctx, q))
	err := s.RecordQuiz(ctx, q)
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))
}

func TestSetQuizCorrect(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RecordQuiz(ctx, Quiz{ID: "q1", Phone: "33688888888", Question: "Q", Difficulty: "difficile", Type: "sign"}))

	q, err := s.Quiz(ctx, "q1")
	require.NoError(t, err)
	assert.Nil(t, q.Correct)
	assert.Nil(t, q.AnsweredAt)

	require.NoError(t, s.SetQuizCorrect(ctx, "q1", true))
	q, err = s.Quiz(ctx, "q1")
	require.NoError(t, err)
	require.NotNil(t, q.Correct)
	assert.True(t, *q.Correct)
	assert.NotNil(t, q.AnsweredAt)

	err = s.SetQuizCorrect(ctx, "missing", false)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = s.Quiz(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestQuizStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	phone := "33612121212"

	for i, typ := range []string{"general", "general", "sign", "sign", "sign"} {
		require.NoError(t, s.RecordQuiz(ctx, Quiz{ID: fmt.Sprintf("q%d", i), Phone: phone, Question: "Q", Difficulty: "moyen", Type: typ}))
	}
	require.NoError(t, s.SetQuizCorrect(ctx, "q0", true))
	require.NoError(t, s.SetQuizCorrect(ctx, "q2", false))
	require.NoError(t, s.SetQuizCorrect(ctx, "q3", true))

	stats, err := s.QuizStats(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Answered)
	assert.Equal(t, 2, stats.Correct)
	assert.Equal(t, TypeStats{Total: 2, Answered: 1, Correct: 1}, stats.ByType["general"])
	assert.Equal(t, TypeStats{Total: 3, Answered: 2, Correct: 1}, stats.ByType["sign"])

	empty, err := s.QuizStats(ctx, "33600000000")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}

func TestResetUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	phone := "33613131313"

	require.NoError(t, s.AppendViewedSign(ctx, phone, "A14"))
	require.NoError(t, s.RecordQuiz(ctx, Quiz{ID: "q", Phone: phone, Question: "Q", Difficulty: "moyen", Type: "sign"}))
	require.NoError(t, s.RecordQuiz(ctx, Quiz{ID: "keep", Phone: "33614141414", Question: "Q", Difficulty: "moyen", Type: "sign"}))

	require.NoError(t, s.ResetUser(ctx, phone))

	u, err := s.User(ctx, phone)
	require.NoError(t, err)
	assert.Nil(t, u)
	history, err := s.QuizHistory(ctx, phone, "", 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = s.Quiz(ctx, "keep")
	assert.NoError(t, err, "other users' quizzes must survive")
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prev := int64(0)
	for range 5 {
		n, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "groq", Model: "openai/gpt-oss-120b", Purpose: "quiz-general", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "groq", Model: "openai/gpt-oss-120b", Purpose: "quiz-sign", InputTokens: 80, OutputTokens: 40, LatencyMs: 400, Success: true},
		{Provider: "groq", Model: "meta-llama/llama-4-scout-17b-16e-instruct", Purpose: "recognize-sign", InputTokens: 900, LatencyMs: 100, ErrorMessage: "boom"},
		{Provider: "groq", Model: "openai/gpt-oss-120b", Purpose: "quiz-general", InputTokens: 120, OutputTokens: 60, LatencyMs: 400, Success: true},
	}
	for _, e := range events {
		require.NoError(t, s.AppendLLMRequest(ctx, e))
	}

	repo := s.EventRepo()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Greater(t, all[0].Sequence, all[1].Sequence, "newest first")
	assert.Equal(t, 120, all[0].InputTokens)

	general, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-general", Limit: 1})
	require.NoError(t, err)
	require.Len(t, general, 1)
	assert.Equal(t, 120, general[0].InputTokens)

	first := all[len(all)-1]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "req", got.RequestBody)
	assert.Equal(t, "resp", got.ResponseBody)
	assert.True(t, got.Success)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 3)
	assert.Equal(t, LLMPurposeUsage{Purpose: "quiz-general", Calls: 2, InputTokens: 220, OutputTokens: 110, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "meta-llama/llama-4-scout-17b-16e-instruct", byModel[0].Model)
	assert.Equal(t, 3, byModel[1].Calls)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("ROADSIGN_DB", filepath.Join(dir, "explicit", "db.sqlite"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "explicit", "db.sqlite"), p)
	assert.DirExists(t, filepath.Join(dir, "explicit"))

	t.Setenv("ROADSIGN_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "roadsign", "roadsign.db"), p)
}
