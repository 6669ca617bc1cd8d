package content

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default values applied when the model omits optional fields.
const (
	DefaultGulfExample        = "No specific example provided."
	DefaultExplanationNext    = "Practice using this concept in your own writing."
	DefaultWritingNext        = "Continue practicing formal academic writing."
	DefaultAnswerCategory     = "general"
	DefaultAnswerConfidence   = 0.8
	NoRationale               = "No explanation provided."
	minExplanationLen         = 10
	minWritingLen             = 5
	minQuestionOptions        = 2
	writingTopicMarker        = "writing improvement"
	writingQuizSourcePrefix   = "Writing skills quiz based on: "
	explanationQuizSourceJoin = "\n\n"
)

// Explanation is a bilingual explanation of an academic concept.
type Explanation struct {
	EnglishExplanation string   `json:"english_explanation"`
	ArabicExplanation  string   `json:"arabic_explanation"`
	GulfExample        string   `json:"gulf_example"`
	KeyTerms           []string `json:"key_terms"`
	SuggestedNextStep  string   `json:"suggested_next_step"`
}

// QuizSource is the text a follow-up quiz is generated from.
func (e *Explanation) QuizSource() string {
	return e.EnglishExplanation + explanationQuizSourceJoin + e.GulfExample
}

// Validate checks the fields the JSON schema cannot express.
func (e *Explanation) Validate() error {
	if err := minTrimmed("explanation", "english_explanation", e.EnglishExplanation, minExplanationLen); err != nil {
		return err
	}
	return minTrimmed("explanation", "arabic_explanation", e.ArabicExplanation, minExplanationLen)
}

func (e *Explanation) applyDefaults() {
	if strings.TrimSpace(e.GulfExample) == "" {
		e.GulfExample = DefaultGulfExample
	}
	e.KeyTerms = cleanList(e.KeyTerms)
	if strings.TrimSpace(e.SuggestedNextStep) == "" {
		e.SuggestedNextStep = DefaultExplanationNext
	}
}

// WritingResult is an improved version of a student's text plus coaching.
type WritingResult struct {
	InputLanguage        string   `json:"input_language,omitempty"`
	ImprovedText         string   `json:"improved_text"`
	ArabicTranslation    string   `json:"arabic_translation,omitempty"`
	EnglishTranslation   string   `json:"english_translation,omitempty"`
	ChangesExplanationAr string   `json:"changes_explanation_ar"`
	GrammarPoints        []string `json:"grammar_points"`
	ToneImprovements     []string `json:"tone_improvements"`
	SuggestedNextStep    string   `json:"suggested_next_step"`
}

// QuizSource is the text a follow-up writing quiz is generated from.
func (w *WritingResult) QuizSource() string {
	return writingQuizSourcePrefix + w.ImprovedText
}

// TopicMarker is the session topic recorded after a writing turn.
func (w *WritingResult) TopicMarker() string {
	return writingTopicMarker
}

// Validate checks the fields the JSON schema cannot express.
func (w *WritingResult) Validate() error {
	if err := minTrimmed("writing", "improved_text", w.ImprovedText, minWritingLen); err != nil {
		return err
	}
	return minTrimmed("writing", "changes_explanation_ar", w.ChangesExplanationAr, minWritingLen)
}

func (w *WritingResult) applyDefaults() {
	w.GrammarPoints = cleanList(w.GrammarPoints)
	w.ToneImprovements = cleanList(w.ToneImprovements)
	if strings.TrimSpace(w.SuggestedNextStep) == "" {
		w.SuggestedNextStep = DefaultWritingNext
	}
}

// Quiz is a short bilingual multiple-choice quiz.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Question is a single multiple-choice question. CorrectAnswer is the
// zero-based index into Options.
type Question struct {
	QuestionEn    string   `json:"question_en"`
	QuestionAr    string   `json:"question_ar"`
	Options       []string `json:"options"`
	OptionsAr     []string `json:"options_ar,omitempty"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Validate checks question count, option count and answer index range.
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return &ShapeError{Result: "quiz", Field: "questions", Reason: "questions list cannot be empty"}
	}
	for i, question := range q.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(question.QuestionEn) == "" || strings.TrimSpace(question.QuestionAr) == "" {
			return &ShapeError{Result: "quiz", Field: field, Reason: "question text is required in both languages"}
		}
		if len(question.Options) < minQuestionOptions {
			return &ShapeError{Result: "quiz", Field: field + ".options", Reason: "must have at least 2 options"}
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
			return &ShapeError{Result: "quiz", Field: field + ".correct_answer", Reason: "index out of range"}
		}
	}
	return nil
}

// GeneralAnswer is a bilingual answer to an open question.
type GeneralAnswer struct {
	EnglishAnswer       string   `json:"english_answer"`
	ArabicAnswer        string   `json:"arabic_answer"`
	Category            string   `json:"category"`
	Confidence          float64  `json:"confidence"`
	FollowUpSuggestions []string `json:"follow_up_suggestions"`
}

// Validate requires both answers.
func (a *GeneralAnswer) Validate() error {
	if err := minTrimmed("general_qa", "english_answer", a.EnglishAnswer, 1); err != nil {
		return err
	}
	return minTrimmed("general_qa", "arabic_answer", a.ArabicAnswer, 1)
}

// AnswerCheck is the outcome of grading one quiz answer.
type AnswerCheck struct {
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// ShapeError reports a model result that parsed as JSON but does not meet
// the result contract.
type ShapeError struct {
	Result string
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid %s result: %s: %s", e.Result, e.Field, e.Reason)
}

func minTrimmed(result, field, value string, min int) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		if strings.TrimSpace(value) == "" {
			return &ShapeError{Result: result, Field: field, Reason: "missing"}
		}
		return &ShapeError{Result: result, Field: field, Reason: "too short"}
	}
	return nil
}
