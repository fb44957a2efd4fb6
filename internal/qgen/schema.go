package qgen

import "github.com/abhisek/quizdrill/internal/llm"

// QuestionsSchema defines the JSON schema for question generation responses.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Multiple choice quiz questions generated from study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the learner",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"minItems":    2,
							"description": "Answer options, usually four",
						},
						"correctAnswer": map[string]any{
							"description": "0-based index of the correct option, or an array of indices for multi-answer questions",
							"anyOf": []any{
								map[string]any{"type": "integer", "minimum": 0},
								map[string]any{
									"type":     "array",
									"items":    map[string]any{"type": "integer", "minimum": 0},
									"minItems": 1,
								},
							},
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief explanation of the correct answer",
						},
					},
					"required": []any{"question", "options", "correctAnswer", "explanation"},
				},
				"minItems": 1,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
