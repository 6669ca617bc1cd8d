// Package classify decides which tutoring flow handles a user's input.
// A completion-service classifier is tried first; an ordered list of
// keyword rules takes over whenever that path fails.
package classify

import "fmt"

// Intent is the routed task category for one user turn.
type Intent string

const (
	IntentExplanation        Intent = "explanation"
	IntentWritingImprovement Intent = "writing_improvement"
	IntentQuizGeneration     Intent = "quiz_generation"
	IntentGeneralQuestion    Intent = "general_question"
)

// AllIntents lists every valid intent.
var AllIntents = []Intent{
	IntentExplanation,
	IntentWritingImprovement,
	IntentQuizGeneration,
	IntentGeneralQuestion,
}

// ParseIntent converts s to an Intent, rejecting anything outside the
// four known values.
func ParseIntent(s string) (Intent, error) {
	for _, in := range AllIntents {
		if string(in) == s {
			return in, nil
		}
	}
	return "", fmt.Errorf("invalid task type: %q", s)
}

// Language is the detected language of the input.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
	LanguageMixed   Language = "mixed"
	LanguageUnknown Language = "unknown"
)

func parseLanguage(s string) Language {
	switch Language(s) {
	case LanguageArabic, LanguageEnglish, LanguageMixed:
		return Language(s)
	default:
		return LanguageUnknown
	}
}

// Source records which path produced a Classification.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// FallbackConfidence is reported for every rule-based classification.
const FallbackConfidence = 0.6

// Classification is the routing decision for one turn. It is created once
// and never modified.
type Classification struct {
	TaskType         Intent   `json:"task_type"`
	Confidence       float64  `json:"confidence"`
	DetectedLanguage Language `json:"detected_language"`
	Reasoning        string   `json:"reasoning"`
	Source           Source   `json:"source"`
}

// Outcome is the result of the completion-service classifier. Err is set
// when the service failed or returned an unusable shape.
type Outcome struct {
	Classification Classification
	Err            error
}

// OK reports whether the classification can be used.
func (o Outcome) OK() bool { return o.Err == nil }
