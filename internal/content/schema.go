package content

import "github.com/abhisek/venusquiz/internal/llm"

// QuestionSetSchema defines the JSON schema for question set responses.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "A set of multiple-choice questions with explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "Unique within the set, starting at 1",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"description": "easy, medium or hard",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The scenario or question shown to the candidate",
						},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 4,
							"maxItems": 4,
						},
						"correctAnswer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Index 0-3 of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right",
						},
					},
					"required":             []any{"id", "difficulty", "text", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
