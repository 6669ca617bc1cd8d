package content

import "github.com/abhisek/baba/internal/llm"

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// ExplanationSchema defines the JSON schema for bilingual explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "bilingual-explanation",
	Description: "Bilingual academic explanation with a Gulf-region example",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"english_explanation": map[string]any{
				"type":        "string",
				"description": "Clear academic explanation in English",
			},
			"arabic_explanation": map[string]any{
				"type":        "string",
				"description": "Equivalent academic explanation in Arabic",
			},
			"gulf_example": map[string]any{
				"type":        "string",
				"description": "Example relevant to Kuwait or the Gulf region",
			},
			"key_terms":           stringList,
			"suggested_next_step": map[string]any{"type": "string"},
		},
		"required": []any{"english_explanation", "arabic_explanation"},
	},
}

// WritingSchema defines the JSON schema for writing improvement results.
var WritingSchema = &llm.Schema{
	Name:        "writing-improvement",
	Description: "Improved academic text with translation and Arabic explanation of changes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input_language": map[string]any{
				"type": "string",
				"enum": []any{"en", "ar"},
			},
			"improved_text": map[string]any{
				"type":        "string",
				"description": "The rewritten text in the same language as the input",
			},
			"arabic_translation":  map[string]any{"type": "string"},
			"english_translation": map[string]any{"type": "string"},
			"changes_explanation_ar": map[string]any{
				"type":        "string",
				"description": "Explanation of the important changes, in Arabic",
			},
			"grammar_points":      stringList,
			"tone_improvements":   stringList,
			"suggested_next_step": map[string]any{"type": "string"},
		},
		"required": []any{"improved_text", "changes_explanation_ar"},
	},
}

// QuizSchema defines the JSON schema for bilingual quizzes.
var QuizSchema = &llm.Schema{
	Name:        "bilingual-quiz",
	Description: "Short bilingual multiple-choice comprehension quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_en": map[string]any{"type": "string"},
						"question_ar": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items":    map[string]any{"type": "string"},
						},
						"options_ar": stringList,
						"correct_answer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"question_en", "question_ar", "options", "correct_answer"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

// GeneralAnswerSchema defines the JSON schema for general Q&A answers.
var GeneralAnswerSchema = &llm.Schema{
	Name:        "general-answer",
	Description: "Bilingual answer to a general student question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"english_answer": map[string]any{"type": "string"},
			"arabic_answer":  map[string]any{"type": "string"},
			"category": map[string]any{
				"type":        "string",
				"description": "advice, how-to, factual, conversational or motivation",
			},
			"confidence": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"follow_up_suggestions": stringList,
		},
		"required": []any{"english_answer", "arabic_answer"},
	},
}
