// Package tutor routes each user turn to the right content generator and
// threads conversation memory between turns.
package tutor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/baba/internal/classify"
	"github.com/abhisek/baba/internal/content"
	"github.com/abhisek/baba/internal/feedback"
	"github.com/abhisek/baba/internal/llm"
	"github.com/abhisek/baba/internal/logger"
	"github.com/abhisek/baba/internal/metrics"
	"github.com/abhisek/baba/internal/session"
)

// Classifier labels raw input with an intent. It must always return a
// usable classification.
type Classifier interface {
	Classify(ctx context.Context, input string) classify.Classification
}

// Generator produces tutoring content. *content.Generator implements it.
type Generator interface {
	Explain(ctx context.Context, concept string) (*content.Explanation, error)
	ImproveWriting(ctx context.Context, text string) (*content.WritingResult, error)
	GenerateQuiz(ctx context.Context, source string) (*content.Quiz, error)
	Answer(ctx context.Context, question, contextSummary string) (*content.GeneralAnswer, error)
}

var _ Generator = (*content.Generator)(nil)

// Router is the per-turn entry point.
type Router struct {
	classifier Classifier
	gen        Generator
	log        *logger.Logger
	timeout    time.Duration
}

// NewRouter creates a Router. A nil log discards output.
func NewRouter(classifier Classifier, gen Generator, log *logger.Logger) *Router {
	if log == nil {
		log = logger.Nop()
	}
	return &Router{classifier: classifier, gen: gen, log: log}
}

// WithTimeout bounds each turn, including every completion call and retry
// it makes. Zero disables the bound.
func (r *Router) WithTimeout(d time.Duration) *Router {
	r.timeout = d
	return r
}

// Route validates input, classifies it and runs the matching flow against
// sess. Failures are reported in TurnResult.Error; sess is only modified
// by flows that succeed, apart from the message history.
func (r *Router) Route(ctx context.Context, input string, sess *session.ConversationSession) *TurnResult {
	res := &TurnResult{AutonomousActions: []Action{}}

	if err := ValidateInput(input); err != nil {
		res.Error = err.Error()
		metrics.TurnErrors.WithLabelValues("validation").Inc()
		return res
	}

	metrics.ActiveTurns.Inc()
	defer metrics.ActiveTurns.Dec()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	c := r.classifier.Classify(ctx, input)
	res.Classification = &c
	res.addAction("Task Classifier", "Classified input",
		fmt.Sprintf("Determined task type: %s", c.TaskType))
	metrics.Classifications.WithLabelValues(string(c.TaskType), string(c.Source)).Inc()
	r.log.Info("turn classified",
		"session", sess.ID,
		"intent", c.TaskType,
		"source", c.Source,
		"confidence", c.Confidence,
	)

	switch c.TaskType {
	case classify.IntentExplanation:
		r.handleExplanation(ctx, input, sess, res)
	case classify.IntentWritingImprovement:
		r.handleWriting(ctx, input, sess, res)
	case classify.IntentQuizGeneration:
		r.handleQuiz(ctx, input, sess, res)
	case classify.IntentGeneralQuestion:
		r.handleGeneral(ctx, input, sess, res)
	default:
		res.Error = fmt.Sprintf("Unknown task type: %s", c.TaskType)
	}

	sess.AddMessage(input)
	return res
}

func (r *Router) handleExplanation(ctx context.Context, input string, sess *session.ConversationSession, res *TurnResult) {
	exp, err := r.gen.Explain(ctx, input)
	if err != nil {
		r.fail(res, "Explanation flow", err)
		return
	}

	sess.SetExplanation(exp, input)
	res.MainResult = &MainResult{Type: ResultExplanation, Data: exp}
	res.addAction("Explainer", "Generated bilingual explanation",
		"Provided academic explanation with Gulf-region example")

	res.QuizPrompt = explanationQuizOffer
	res.addAction("Orchestrator", "Suggested quiz option",
		"Offered quiz to test comprehension (user choice)")
}

func (r *Router) handleWriting(ctx context.Context, input string, sess *session.ConversationSession, res *TurnResult) {
	w, err := r.gen.ImproveWriting(ctx, input)
	if err != nil {
		r.fail(res, "Writing flow", err)
		return
	}

	sess.SetWriting(w)
	res.MainResult = &MainResult{Type: ResultWriting, Data: w}
	res.addAction("Writer", "Improved academic writing",
		"Rewrote text with formal academic style")
	res.addAction("Feedback", "Analyzed writing improvements",
		fmt.Sprintf("Identified %d grammar points", len(w.GrammarPoints)))

	res.QuizPrompt = writingQuizOffer
}

func (r *Router) handleGeneral(ctx context.Context, input string, sess *session.ConversationSession, res *TurnResult) {
	summary := sess.History.ContextSummary()

	answer, err := r.gen.Answer(ctx, input, summary)
	if err != nil {
		r.fail(res, "General question", err)
		return
	}

	res.MainResult = &MainResult{Type: ResultGeneralQA, Data: answer}
	decision := "Answered without prior context"
	if summary != "" {
		decision = "Answered using recent conversation context"
	}
	res.addAction("General Q&A", "Generated bilingual answer", decision)
}

func (r *Router) fail(res *TurnResult, flow string, err error) {
	res.Error = fmt.Sprintf("%s error: %v", flow, err)
	metrics.TurnErrors.WithLabelValues(flow).Inc()
	r.log.Warn("generation failed",
		"flow", flow,
		"parse_error", llm.IsParseError(err),
		"service_error", llm.IsServiceError(err),
		"error", err,
	)
}

// CheckQuizAnswer grades one answer, appends it to the session's quiz
// history and attaches encouragement. A nil quiz falls back to the
// session's last quiz. Out-of-range indexes are graded but not recorded.
func (r *Router) CheckQuizAnswer(sess *session.ConversationSession, questionIndex, userAnswer int, quiz *content.Quiz) AnswerResult {
	if quiz == nil {
		quiz = sess.LastQuiz
	}
	check := content.CheckAnswer(questionIndex, userAnswer, quiz)
	if check.Explanation != content.InvalidQuestionIndex {
		sess.RecordAnswer(questionIndex, userAnswer, check.IsCorrect)
	}
	metrics.QuizAnswers.WithLabelValues(strconv.FormatBool(check.IsCorrect)).Inc()

	return AnswerResult{
		AnswerCheck:   check,
		Encouragement: feedback.ForAnswer(check.IsCorrect),
	}
}

// AnalyzeSession grades the session's quiz history.
func (r *Router) AnalyzeSession(sess *session.ConversationSession) SessionAnalysis {
	return Analyze(sess)
}

// Analyze grades sess's quiz history without a Router.
func Analyze(sess *session.ConversationSession) SessionAnalysis {
	if len(sess.QuizHistory) == 0 {
		return SessionAnalysis{Message: noAttempts}
	}
	p := sess.Progress()
	perf := feedback.Analyze(p.TotalAttempts, p.CorrectCount)
	return SessionAnalysis{Performance: &perf}
}
