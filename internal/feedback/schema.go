package feedback

import "github.com/abhisek/codegenius/internal/llm"

// FeedbackSchema defines the JSON schema for answer evaluation.
var FeedbackSchema = &llm.OutputSchema{
	Name:        "answer-feedback",
	Description: "Concise evaluation of a candidate's interview answer with two ratings",
	JSON: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentence summary of the answer's quality",
			},
			"expertise": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     10,
				"description": "Subject matter expertise score from 0 to 10",
			},
			"communication": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     10,
				"description": "Communication skills score from 0 to 10",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One short, actionable improvement tip",
			},
		},
		"required":             []any{"summary", "expertise", "communication", "tip"},
		"additionalProperties": false,
	},
}
