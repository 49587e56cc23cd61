package quizgen

import "github.com/abhisek/roadsign/internal/llm"

// MCQBatchSchema defines the JSON schema for a batch of generated questions.
// The option count and answer range are checked by the validators since
// strict structured output does not support array length constraints.
var MCQBatchSchema = &llm.Schema{
	Name:        "mcq-batch",
	Description: "A batch of French driving-theory multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type":        "array",
				"description": "The generated questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question, in French, describing a concrete situation",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"enum":        []any{DifficultyEasy, DifficultyMedium, DifficultyHard},
							"description": "Perceived difficulty of the question",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer candidates in presentation order",
						},
						"answer": map[string]any{
							"type":        "integer",
							"description": "Index (0-3) of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct and the others are not",
						},
					},
					"required":             []any{"question", "difficulty", "options", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"items"},
		"additionalProperties": false,
	},
}
