// Package roadsign orchestrates sign learning and quiz generation for a
// user identified by phone number.
package roadsign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/roadsign/internal/catalog"
	"github.com/abhisek/roadsign/internal/errs"
	"github.com/abhisek/roadsign/internal/jobs"
	"github.com/abhisek/roadsign/internal/quizgen"
	"github.com/abhisek/roadsign/internal/selection"
	"github.com/abhisek/roadsign/internal/store"
	"github.com/abhisek/roadsign/internal/vision"
)

// HistoryStore is the per-user state the service reads and writes.
// *store.Store satisfies it.
type HistoryStore interface {
	ViewedSigns(ctx context.Context, phone string) ([]string, error)
	AppendViewedSign(ctx context.Context, phone, id string) error
	QuizHistory(ctx context.Context, phone, typ string, limit int) ([]store.Quiz, error)
	RecordQuiz(ctx context.Context, q store.Quiz) error
	SetQuizCorrect(ctx context.Context, id string, correct bool) error
	SetPlan(ctx context.Context, phone string, pro bool) error
	QuizStats(ctx context.Context, phone string) (store.QuizStats, error)
}

// Options tunes the context windows and the generation bound.
type Options struct {
	GenerationTimeout time.Duration // 0 leaves generation unbounded
	HistoryLimit      int           // quiz rows read per request
	RecentQuestions   int           // rows shown to the generator
	LearnedSigns      int           // viewed signs used as context
	SummaryWidth      int           // description runes per learned sign
	SampleSigns       int           // signs used by a sign quiz with no history
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		GenerationTimeout: 45 * time.Second,
		HistoryLimit:      10,
		RecentQuestions:   3,
		LearnedSigns:      10,
		SummaryWidth:      80,
		SampleSigns:       3,
	}
}

// Deps are the collaborators of a Service. Recognizer, Logger and Now
// are optional.
type Deps struct {
	Catalog    *catalog.Catalog
	History    HistoryStore
	Generator  quizgen.Generator
	Recognizer vision.Recognizer
	Sampler    *selection.Sampler
	Jobs       *jobs.Runner
	Logger     *slog.Logger
	Now        func() time.Time
}

// Service implements the learning and quiz operations. It holds no
// per-user state; everything goes through the HistoryStore.
type Service struct {
	catalog    *catalog.Catalog
	history    HistoryStore
	generator  quizgen.Generator
	recognizer vision.Recognizer
	sampler    *selection.Sampler
	jobs       *jobs.Runner
	logger     *slog.Logger
	now        func() time.Time
	opts       Options
}

// NewService creates a Service. Zero option fields take their defaults.
func NewService(d Deps, opts Options) *Service {
	def := DefaultOptions()
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = def.HistoryLimit
	}
	if opts.RecentQuestions <= 0 {
		opts.RecentQuestions = def.RecentQuestions
	}
	if opts.LearnedSigns <= 0 {
		opts.LearnedSigns = def.LearnedSigns
	}
	if opts.SummaryWidth <= 0 {
		opts.SummaryWidth = def.SummaryWidth
	}
	if opts.SampleSigns <= 0 {
		opts.SampleSigns = def.SampleSigns
	}

	s := &Service{
		catalog:    d.Catalog,
		history:    d.History,
		generator:  d.Generator,
		recognizer: d.Recognizer,
		sampler:    d.Sampler,
		jobs:       d.Jobs,
		logger:     d.Logger,
		now:        d.Now,
		opts:       opts,
	}
	if s.sampler == nil {
		s.sampler = selection.NewDefault()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Catalog returns the sign catalog the service draws from.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// GenerateQuiz produces one question for phone and records it in the
// background. Nothing is recorded when generation fails.
func (s *Service) GenerateQuiz(ctx context.Context, phone, level string, typ QuizType) (*Quiz, error) {
	if err := checkPhone(phone); err != nil {
		return nil, err
	}
	level, err := NormalizeLevel(level)
	if err != nil {
		return nil, err
	}
	if typ != QuizGeneral && typ != QuizSign {
		return nil, fmt.Errorf("unknown quiz type %q: %w", typ, errs.ErrInvalidArgument)
	}

	rows, err := s.history.QuizHistory(ctx, phone, string(typ), s.opts.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("read quiz history: %w", err)
	}
	recent := formatRecentQuestions(rows[:min(len(rows), s.opts.RecentQuestions)])

	viewed, err := s.history.ViewedSigns(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("read viewed signs: %w", err)
	}

	var (
		tmpl   *quizgen.Template
		fields map[string]string
	)
	switch typ {
	case QuizGeneral:
		learned, err := s.learnedSigns(viewed)
		if err != nil {
			return nil, err
		}
		tmpl = quizgen.GeneralQuiz
		fields = map[string]string{
			quizgen.FieldDate:         s.now().Format("2006-01-02 15:04"),
			quizgen.FieldLevel:        level,
			quizgen.FieldHistory:      recent,
			quizgen.FieldLearnedSigns: learned,
		}
	case QuizSign:
		studied, err := s.studiedSigns(viewed)
		if err != nil {
			return nil, err
		}
		tmpl = quizgen.SignQuiz
		fields = map[string]string{
			quizgen.FieldLevel:           level,
			quizgen.FieldHistory:         studied,
			quizgen.FieldLatestQuestions: recent,
		}
	}

	// A caller that goes away does not abort generation or the write.
	genCtx := context.WithoutCancel(ctx)
	if s.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(genCtx, s.opts.GenerationTimeout)
		defer cancel()
	}

	items, err := s.generator.Generate(genCtx, tmpl, fields)
	if err != nil {
		return nil, err
	}
	// Any Generator, not only LLMGenerator, must honour the MCQ contract.
	for i := range items {
		if err := checkMCQ(items[i]); err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("generator returned no questions: %w", errs.ErrGeneration)
	}

	quiz := &Quiz{ID: uuid.NewString(), MCQ: items[s.sampler.Pick(len(items))]}

	row := store.Quiz{
		ID:         quiz.ID,
		Phone:      phone,
		Question:   quiz.Question,
		Difficulty: quiz.Difficulty,
		Type:       string(typ),
		CreatedAt:  s.now(),
	}
	s.jobs.Submit(ctx, "record-quiz", func(ctx context.Context) error {
		return s.history.RecordQuiz(ctx, row)
	}, "phone", phone, "quiz_id", quiz.ID)

	return quiz, nil
}

// SelectSignToLearn picks a sign for phone, favouring signs the user has
// seen least, and appends it to the viewing history in the background.
// A nil kind draws from the whole catalog.
func (s *Service) SelectSignToLearn(ctx context.Context, phone string, kind *catalog.Kind) (catalog.Sign, error) {
	if err := checkPhone(phone); err != nil {
		return catalog.Sign{}, err
	}

	pool := s.catalog.AllIDs()
	if kind != nil {
		pool = catalog.IDs(s.catalog.ByCategory(*kind))
	}

	viewed, err := s.history.ViewedSigns(ctx, phone)
	if err != nil {
		return catalog.Sign{}, fmt.Errorf("read viewed signs: %w", err)
	}

	picked, err := s.sampler.Sample(pool, viewed, 1)
	if err != nil {
		return catalog.Sign{}, err
	}
	sign, err := s.catalog.Get(picked[0])
	if err != nil {
		return catalog.Sign{}, err
	}

	s.jobs.Submit(ctx, "append-viewed-sign", func(ctx context.Context) error {
		return s.history.AppendViewedSign(ctx, phone, sign.ID)
	}, "phone", phone, "sign", sign.ID)

	return sign, nil
}

// RecordAnswer stores whether the user answered quizID correctly.
func (s *Service) RecordAnswer(ctx context.Context, quizID string, correct bool) error {
	if strings.TrimSpace(quizID) == "" {
		return fmt.Errorf("quiz id is required: %w", errs.ErrInvalidArgument)
	}
	return s.history.SetQuizCorrect(ctx, quizID, correct)
}

// SetPlan switches phone between the free and pro plans.
func (s *Service) SetPlan(ctx context.Context, phone string, pro bool) error {
	if err := checkPhone(phone); err != nil {
		return err
	}
	return s.history.SetPlan(ctx, phone, pro)
}

// RecognizeSign describes the road signs visible in img.
func (s *Service) RecognizeSign(ctx context.Context, img vision.Image) (string, error) {
	if s.recognizer == nil {
		return "", fmt.Errorf("sign recognition is not configured: %w", errs.ErrGeneration)
	}
	return s.recognizer.Recognize(ctx, img)
}

// Stats returns the quiz counters of phone.
func (s *Service) Stats(ctx context.Context, phone string) (store.QuizStats, error) {
	if err := checkPhone(phone); err != nil {
		return store.QuizStats{}, err
	}
	return s.history.QuizStats(ctx, phone)
}

func checkPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone is required: %w", errs.ErrInvalidArgument)
	}
	return nil
}

func checkMCQ(q quizgen.MCQ) error {
	if len(q.Options) != quizgen.OptionCount {
		return fmt.Errorf("question has %d options: %w", len(q.Options), errs.ErrGeneration)
	}
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return fmt.Errorf("answer index %d out of range: %w", q.Answer, errs.ErrGeneration)
	}
	return nil
}
