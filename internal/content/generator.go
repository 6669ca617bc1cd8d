package content

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/baba/internal/llm"
)

// Generator produces the four kinds of tutoring content. Each call is a
// single stateless request to the completion service followed by shape
// validation.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a Generator backed by provider.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Explain generates a bilingual explanation of concept.
func (g *Generator) Explain(ctx context.Context, concept string) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	raw, err := llm.CompleteJSON(ctx, g.provider, explainSystemPrompt, buildExplainUserMessage(concept),
		g.cfg.Explain.Temperature, g.cfg.Explain.MaxTokens, ExplanationSchema)
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out Explanation
	if err := decode(raw, &out); err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("explanation generation: %w", invalid(raw, err))
	}
	out.applyDefaults()
	return &out, nil
}

// ImproveWriting rewrites text in formal academic style and explains the
// changes in Arabic.
func (g *Generator) ImproveWriting(ctx context.Context, text string) (*WritingResult, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeWrite)

	raw, err := llm.CompleteJSON(ctx, g.provider, writingSystemPrompt, buildWritingUserMessage(text),
		g.cfg.Writing.Temperature, g.cfg.Writing.MaxTokens, WritingSchema)
	if err != nil {
		return nil, fmt.Errorf("writing improvement: %w", err)
	}

	var out WritingResult
	if err := decode(raw, &out); err != nil {
		return nil, fmt.Errorf("writing improvement: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("writing improvement: %w", invalid(raw, err))
	}
	out.applyDefaults()
	return &out, nil
}

type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	QuestionEn    string      `json:"question_en"`
	QuestionAr    string      `json:"question_ar"`
	Options       []string    `json:"options"`
	OptionsAr     []string    `json:"options_ar"`
	CorrectAnswer json.Number `json:"correct_answer"`
	Explanation   string      `json:"explanation"`
}

// GenerateQuiz builds a multiple-choice quiz from source text.
func (g *Generator) GenerateQuiz(ctx context.Context, source string) (*Quiz, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	raw, err := llm.CompleteJSON(ctx, g.provider, quizSystemPrompt, buildQuizUserMessage(source),
		g.cfg.Quiz.Temperature, g.cfg.Quiz.MaxTokens, QuizSchema)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out quizOutput
	if err := decode(raw, &out); err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	quiz := &Quiz{Questions: make([]Question, 0, len(out.Questions))}
	for i, q := range out.Questions {
		idx, err := answerIndex(q.CorrectAnswer)
		if err != nil {
			shapeErr := &ShapeError{Result: "quiz", Field: fmt.Sprintf("questions[%d].correct_answer", i), Reason: err.Error()}
			return nil, fmt.Errorf("quiz generation: %w", invalid(raw, shapeErr))
		}
		quiz.Questions = append(quiz.Questions, Question{
			QuestionEn:    q.QuestionEn,
			QuestionAr:    q.QuestionAr,
			Options:       q.Options,
			OptionsAr:     q.OptionsAr,
			CorrectAnswer: idx,
			Explanation:   q.Explanation,
		})
	}

	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("quiz generation: %w", invalid(raw, err))
	}
	return quiz, nil
}

type answerOutput struct {
	EnglishAnswer       string   `json:"english_answer"`
	ArabicAnswer        string   `json:"arabic_answer"`
	Category            string   `json:"category"`
	Confidence          *float64 `json:"confidence"`
	FollowUpSuggestions []string `json:"follow_up_suggestions"`
}

// Answer responds to a general question. contextSummary is the rendered
// recent-conversation summary; an empty summary selects the no-context
// prompt.
func (g *Generator) Answer(ctx context.Context, question, contextSummary string) (*GeneralAnswer, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGeneralQA)

	raw, err := llm.CompleteJSON(ctx, g.provider, answerSystemPrompt, buildAnswerUserMessage(question, contextSummary),
		g.cfg.Answer.Temperature, g.cfg.Answer.MaxTokens, GeneralAnswerSchema)
	if err != nil {
		return nil, fmt.Errorf("general question: %w", err)
	}

	var out answerOutput
	if err := decode(raw, &out); err != nil {
		return nil, fmt.Errorf("general question: %w", err)
	}

	answer := &GeneralAnswer{
		EnglishAnswer:       out.EnglishAnswer,
		ArabicAnswer:        out.ArabicAnswer,
		Category:            lo.Ternary(strings.TrimSpace(out.Category) == "", DefaultAnswerCategory, out.Category),
		Confidence:          lo.FromPtrOr(out.Confidence, DefaultAnswerConfidence),
		FollowUpSuggestions: cleanList(out.FollowUpSuggestions),
	}
	if err := answer.Validate(); err != nil {
		return nil, fmt.Errorf("general question: %w", invalid(raw, err))
	}
	return answer, nil
}

func decode(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func invalid(raw json.RawMessage, err error) error {
	return &llm.ErrInvalidResponse{Content: raw, Err: err}
}

func answerIndex(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("must be an integer, got %q", n.String())
	}
	return int(f), nil
}

// cleanList trims items, drops blanks, and never returns nil.
func cleanList(items []string) []string {
	out := lo.FilterMap(items, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	if out == nil {
		return []string{}
	}
	return out
}
