package tutor

import "github.com/lumilearn/lumi/internal/llm"

// AnalysisSchema defines the JSON schema for the initial content analysis.
var AnalysisSchema = &llm.Schema{
	Name:        "content-analysis",
	Description: "Initial analysis of study material for a learning session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "A brief, simple overview of the content, tailored to the learning style",
			},
			"outline": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "A list of key topics covered by the content",
			},
			"key_questions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Three thought-provoking questions to start the discussion",
			},
		},
		"required":             []any{"summary", "outline", "key_questions"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for comprehension quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "comprehension-quiz",
	Description: "A multiple-choice quiz testing understanding of the material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type": "string",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options, one of which is correct",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The text of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A brief, encouraging explanation of the correct answer",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// NotesSchema defines the JSON schema for Cornell notes generation.
var NotesSchema = &llm.Schema{
	Name:        "cornell-notes",
	Description: "Cornell-style notes from the material and conversation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"main_notes": map[string]any{
				"type":        "string",
				"description": "Detailed notes from the content and conversation",
			},
			"cues": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Keywords and questions to jog memory",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "A one or two-sentence summary of the material covered",
			},
		},
		"required":             []any{"main_notes", "cues", "summary"},
		"additionalProperties": false,
	},
}
