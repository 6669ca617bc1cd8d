package classify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/baba/internal/llm"
)

// LLMClassifierConfig holds sampling settings for the classifier call.
type LLMClassifierConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMClassifierConfig uses a low temperature for consistent labels.
func DefaultLLMClassifierConfig() LLMClassifierConfig {
	return LLMClassifierConfig{
		MaxTokens:   300,
		Temperature: 0.3,
	}
}

// LLMClassifier asks the completion service to label the input.
type LLMClassifier struct {
	provider llm.Provider
	cfg      LLMClassifierConfig
}

// NewLLMClassifier creates an LLMClassifier.
func NewLLMClassifier(provider llm.Provider, cfg LLMClassifierConfig) *LLMClassifier {
	return &LLMClassifier{provider: provider, cfg: cfg}
}

type classificationOutput struct {
	TaskType         string   `json:"task_type"`
	Confidence       *float64 `json:"confidence"`
	DetectedLanguage string   `json:"detected_language"`
	Reasoning        string   `json:"reasoning"`
}

// Classify never returns an error directly; failures are carried in the
// Outcome so the caller can branch to the rule-based fallback.
func (c *LLMClassifier) Classify(ctx context.Context, input string) Outcome {
	ctx = llm.WithPurpose(ctx, llm.PurposeClassify)

	raw, err := llm.CompleteJSON(ctx, c.provider, classifierSystemPrompt, buildClassifierUserMessage(input),
		c.cfg.Temperature, c.cfg.MaxTokens, ClassificationSchema)
	if err != nil {
		return Outcome{Err: fmt.Errorf("classification call: %w", err)}
	}

	var out classificationOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return Outcome{Err: &llm.ErrInvalidResponse{Content: raw, Err: err}}
	}

	intent, err := ParseIntent(out.TaskType)
	if err != nil {
		return Outcome{Err: &llm.ErrInvalidResponse{Content: raw, Err: err}}
	}
	if out.Confidence == nil {
		return Outcome{Err: &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("missing confidence")}}
	}
	if *out.Confidence < 0 || *out.Confidence > 1 {
		return Outcome{Err: &llm.ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("confidence %v outside [0,1]", *out.Confidence),
		}}
	}

	lang := parseLanguage(out.DetectedLanguage)
	if lang == LanguageUnknown {
		lang = DetectLanguage(input)
	}

	return Outcome{Classification: Classification{
		TaskType:         intent,
		Confidence:       *out.Confidence,
		DetectedLanguage: lang,
		Reasoning:        out.Reasoning,
		Source:           SourceLLM,
	}}
}

// ClassificationSchema defines the JSON schema for classifier output.
var ClassificationSchema = &llm.Schema{
	Name:        "task-classification",
	Description: "Routing label for a student's message",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"task_type": map[string]any{
				"type": "string",
				"enum": []any{
					string(IntentExplanation),
					string(IntentWritingImprovement),
					string(IntentQuizGeneration),
					string(IntentGeneralQuestion),
				},
			},
			"confidence": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"detected_language": map[string]any{
				"type":        "string",
				"description": "ar, en, mixed or unknown",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One sentence explaining the label",
			},
		},
		"required": []any{"task_type", "confidence"},
	},
}

const classifierSystemPrompt = `You are the task classifier for BABA (Bilingual Academic Bridge Agent).
Classify the student's input into exactly one of four categories:

1. "explanation" - the student wants to understand an academic concept, term, or idea.
   Examples: "What is critical thinking?", "Explain the concept of sustainability",
   "ما هو التفكير النقدي؟"

2. "writing_improvement" - the student wants help improving their academic writing,
   or has submitted a paragraph or text for review.
   Examples: "Can you check this paragraph?", "Help me improve this essay"

3. "quiz_generation" - the student wants a quiz or test, or is accepting a quiz offer.
   Examples: "Give me a quiz on this topic", "Test my knowledge", "Yes", "Sure",
   "Quiz", "نعم", "اختبار", "امتحان"

4. "general_question" - advice, how-to, greetings, or conversational queries.
   Examples: "How can I improve my study habits?", "Hello, how are you?",
   "How do I write a good essay?", "مرحبا", "كيف أنظم وقتي؟"

Priority:
- Understanding a SPECIFIC academic concept -> "explanation"
- Contains text to be improved -> "writing_improvement"
- Asking for a quiz or test -> "quiz_generation"
- Otherwise -> "general_question"

Respond ONLY with valid JSON:
{
    "task_type": "explanation" | "writing_improvement" | "quiz_generation" | "general_question",
    "confidence": 0.0 to 1.0,
    "detected_language": "ar" | "en" | "mixed" | "unknown",
    "reasoning": "brief explanation of the classification"
}`

func buildClassifierUserMessage(input string) string {
	return fmt.Sprintf("Classify the following user input:\n\nInput: %s\n\nRespond with JSON only.", input)
}
