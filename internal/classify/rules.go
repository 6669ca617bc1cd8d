package classify

import (
	"strings"

	"github.com/samber/lo"
)

// LongTextWords is the word count above which input is treated as a
// writing sample.
const LongTextWords = 20

// AffirmativeTokens are whole inputs that accept a quiz offer.
var AffirmativeTokens = []string{
	"yes", "yeah", "ok", "sure", "y", "quiz", "test", "exam",
	"نعم", "أجل", "موافق", "اختبار", "امتحان",
}

var (
	quizIndicators = []string{
		"quiz", "test", "exam", "اختبار", "امتحان",
		"yes", "yeah", "ok", "sure", "نعم", "أجل", "موافق",
	}
	greetingIndicators = []string{
		"hello", "hi", "hey", "good morning", "good evening", "مرحبا", "السلام",
	}
	academicIndicators = []string{
		"what is", "what are", "explain the concept", "define", "ما هو", "ما هي",
	}
	generalIndicators = []string{
		"how to", "how can", "how do", "advice", "help me", "hello", "hi", "thanks",
		"كيف", "نصيحة", "مرحبا", "شكرا",
	}
)

// Signals are the input features the rules look at.
type Signals struct {
	Normalized string
	WordCount  int
}

// NewSignals lowercases and trims input and counts its words.
func NewSignals(input string) Signals {
	return Signals{
		Normalized: strings.ToLower(strings.TrimSpace(input)),
		WordCount:  len(strings.Fields(input)),
	}
}

// IsAffirmative reports whether the whole input is an affirmative token.
func (s Signals) IsAffirmative() bool {
	return lo.Contains(AffirmativeTokens, s.Normalized)
}

// Long reports whether the input exceeds LongTextWords.
func (s Signals) Long() bool {
	return s.WordCount > LongTextWords
}

func (s Signals) containsAny(indicators []string) bool {
	return lo.ContainsBy(indicators, func(k string) bool {
		return strings.Contains(s.Normalized, k)
	})
}

// Rule is one entry of the fallback decision list.
type Rule interface {
	Name() string
	Match(s Signals) (Intent, bool)
}

// Rules returns the fallback rules in priority order. academic-question
// only matches short input, so a long academic question falls through to
// long-text and routes to writing improvement.
func Rules() []Rule {
	return []Rule{
		affirmativeOrQuizRule{},
		greetingRule{},
		academicQuestionRule{},
		longTextRule{},
		generalAdviceRule{},
		defaultRule{},
	}
}

// RunRules evaluates rules top-down and returns the first match and its
// rule name.
func RunRules(rules []Rule, s Signals) (Intent, string) {
	for _, r := range rules {
		if intent, ok := r.Match(s); ok {
			return intent, r.Name()
		}
	}
	return IntentGeneralQuestion, ""
}

type affirmativeOrQuizRule struct{}

func (affirmativeOrQuizRule) Name() string { return "affirmative-or-quiz" }

func (affirmativeOrQuizRule) Match(s Signals) (Intent, bool) {
	return IntentQuizGeneration, s.IsAffirmative() || s.containsAny(quizIndicators)
}

type greetingRule struct{}

func (greetingRule) Name() string { return "greeting" }

func (greetingRule) Match(s Signals) (Intent, bool) {
	return IntentGeneralQuestion, s.containsAny(greetingIndicators)
}

type academicQuestionRule struct{}

func (academicQuestionRule) Name() string { return "academic-question" }

func (academicQuestionRule) Match(s Signals) (Intent, bool) {
	return IntentExplanation, s.containsAny(academicIndicators) && !s.Long()
}

type longTextRule struct{}

func (longTextRule) Name() string { return "long-text" }

func (longTextRule) Match(s Signals) (Intent, bool) {
	return IntentWritingImprovement, s.Long()
}

type generalAdviceRule struct{}

func (generalAdviceRule) Name() string { return "general-advice" }

func (generalAdviceRule) Match(s Signals) (Intent, bool) {
	return IntentGeneralQuestion, s.containsAny(generalIndicators)
}

type defaultRule struct{}

func (defaultRule) Name() string { return "default" }

func (defaultRule) Match(Signals) (Intent, bool) {
	return IntentGeneralQuestion, true
}

// Fallback classifies input with the rule list. cause is the reason the
// completion-service path was not used.
func Fallback(input string, cause error) Classification {
	intent, _ := RunRules(Rules(), NewSignals(input))
	reason := "no completion service configured"
	if cause != nil {
		reason = cause.Error()
	}
	return Classification{
		TaskType:         intent,
		Confidence:       FallbackConfidence,
		DetectedLanguage: LanguageUnknown,
		Reasoning:        "Fallback classification due to error: " + reason,
		Source:           SourceFallback,
	}
}
