package ordering

import "github.com/abhisek/quizdrill/internal/llm"

// OrderSchema defines the JSON schema for priority-ordering responses.
var OrderSchema = &llm.Schema{
	Name:        "practice-order",
	Description: "A priority ordering of quiz question ids for the next practice session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"orderedIds": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Every input question id, exactly once, highest practice priority first",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One sentence explaining the chosen order",
			},
		},
		"required":             []any{"orderedIds", "reasoning"},
		"additionalProperties": false,
	},
}
