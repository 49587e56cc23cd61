package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/roadsign/internal/errs"
	"github.com/abhisek/roadsign/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate renders the template as the system prompt and asks for a batch.
func (g *LLMGenerator) Generate(ctx context.Context, tmpl *Template, fields map[string]string) ([]MCQ, error) {
	system, err := tmpl.Render(fields)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, tmpl.Purpose)

	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(g.config.BatchSize)},
		},
		Schema:      MCQBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrGeneration, err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse LLM response: %v", errs.ErrGeneration, err)
	}
	if len(raw.Items) == 0 {
		return nil, fmt.Errorf("%w: empty batch", errs.ErrGeneration)
	}

	for i := range raw.Items {
		q := &raw.Items[i]
		q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
		for _, v := range g.config.Validators {
			if verr := v.Validate(q); verr != nil {
				return nil, fmt.Errorf("item %d: %w", i, verr)
			}
		}
	}

	return raw.Items, nil
}
