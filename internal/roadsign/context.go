package roadsign

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/roadsign/internal/catalog"
	"github.com/abhisek/roadsign/internal/store"
)

const (
	noQuestionsYet = "Aucune question posée"
	noSignsYet     = "Aucun panneau appris pour le moment"
)

// formatRecentQuestions renders quiz rows, newest first, one per line.
func formatRecentQuestions(rows []store.Quiz) string {
	if len(rows) == 0 {
		return noQuestionsYet
	}
	lines := lo.Map(rows, func(q store.Quiz, _ int) string {
		return fmt.Sprintf("- %s (difficulté: %s, réponse: %s)", q.Question, q.Difficulty, answerLabel(q.Correct))
	})
	return strings.Join(lines, "\n")
}

func answerLabel(correct *bool) string {
	switch {
	case correct == nil:
		return "sans réponse"
	case *correct:
		return "correcte"
	default:
		return "incorrecte"
	}
}

// lastN returns the trailing n entries of ids without deduplicating.
func lastN(ids []string, n int) []string {
	if len(ids) <= n {
		return ids
	}
	return ids[len(ids)-n:]
}

// learnedSigns summarises the most recently viewed signs for the general
// quiz. Repeated views collapse into one line.
func (s *Service) learnedSigns(viewed []string) (string, error) {
	if len(viewed) == 0 {
		return noSignsYet, nil
	}
	signs, err := s.catalog.GetByID(lo.Uniq(lastN(viewed, s.opts.LearnedSigns)))
	if err != nil {
		return "", fmt.Errorf("resolve learned signs: %w", err)
	}
	lines := lo.Map(signs, func(sg catalog.Sign, _ int) string {
		return "- " + catalog.Summary(sg, s.opts.SummaryWidth)
	})
	return strings.Join(lines, "\n"), nil
}

// studiedSigns details the signs a sign quiz may ask about: the last
// viewed ones, or a few catalog samples for a user with no history.
func (s *Service) studiedSigns(viewed []string) (string, error) {
	ids := lastN(viewed, s.opts.LearnedSigns)
	if len(ids) == 0 {
		sampled, err := s.sampler.Sample(s.catalog.AllIDs(), nil, s.opts.SampleSigns)
		if err != nil {
			return "", err
		}
		ids = lo.Uniq(sampled)
	} else {
		ids = append([]string(nil), ids...)
	}
	s.sampler.Shuffle(ids)

	signs, err := s.catalog.GetByID(ids)
	if err != nil {
		return "", fmt.Errorf("resolve studied signs: %w", err)
	}
	blocks := lo.Map(signs, func(sg catalog.Sign, _ int) string { return catalog.Detail(sg) })
	return strings.Join(blocks, "\n\n"), nil
}
