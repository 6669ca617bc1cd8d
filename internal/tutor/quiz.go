package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/baba/internal/classify"
	"github.com/abhisek/baba/internal/metrics"
	"github.com/abhisek/baba/internal/session"
	"github.com/abhisek/baba/internal/topic"
)

// QuizState is the branch the quiz sub-router takes for one turn.
type QuizState string

const (
	AwaitingTopic         QuizState = "awaiting_topic"
	HasExplanationContext QuizState = "has_explanation_context"
	HasWritingContext     QuizState = "has_writing_context"
	ExplicitTopicGiven    QuizState = "explicit_topic_given"
)

var explicitTopicPhrases = []string{
	"quiz on", "quiz about", "test on", "test about",
	"generate quiz", "create quiz", "make quiz",
	"اختبار عن", "اختبار حول",
}

// HasExplicitTopic reports whether input names what the quiz should cover.
func HasExplicitTopic(input string) bool {
	lower := strings.ToLower(input)
	return lo.ContainsBy(explicitTopicPhrases, func(p string) bool {
		return strings.Contains(lower, p)
	})
}

// NextQuizState picks the quiz branch from the input and what the session
// remembers. It does not modify the session.
func NextQuizState(input string, sess *session.ConversationSession) QuizState {
	affirmation := classify.NewSignals(input).IsAffirmative()
	if !affirmation || HasExplicitTopic(input) {
		return ExplicitTopicGiven
	}
	switch {
	case sess.LastExplanation != nil:
		return HasExplanationContext
	case sess.LastWriting != nil:
		return HasWritingContext
	default:
		return AwaitingTopic
	}
}

func (r *Router) handleQuiz(ctx context.Context, input string, sess *session.ConversationSession, res *TurnResult) {
	state := NextQuizState(input, sess)
	metrics.QuizStates.WithLabelValues(string(state)).Inc()
	r.log.Debug("quiz state selected", "session", sess.ID, "state", state)

	switch state {
	case AwaitingTopic:
		res.MainResult = &MainResult{Type: ResultMessage, Data: topicRequest}

	case HasExplanationContext:
		quiz, err := r.gen.GenerateQuiz(ctx, sess.LastExplanation.QuizSource())
		if err != nil {
			r.fail(res, "Quiz generation", err)
			return
		}
		sess.SetQuiz(quiz)
		res.MainResult = &MainResult{Type: ResultQuiz, Data: quiz}
		res.addAction("Quiz Generator", "Generated comprehension quiz",
			"Created bilingual quiz based on previous explanation")

	case HasWritingContext:
		quiz, err := r.gen.GenerateQuiz(ctx, sess.LastWriting.QuizSource())
		if err != nil {
			r.fail(res, "Quiz generation", err)
			return
		}
		sess.SetQuiz(quiz)
		res.MainResult = &MainResult{Type: ResultQuiz, Data: quiz}
		res.addAction("Quiz Generator", "Generated writing skills quiz",
			"Created quiz to practice writing concepts")

	case ExplicitTopicGiven:
		t := topic.Extract(input)

		// Always a fresh explanation, even if t matches LastTopic.
		exp, err := r.gen.Explain(ctx, t)
		if err != nil {
			r.fail(res, "Quiz generation", err)
			return
		}
		quiz, err := r.gen.GenerateQuiz(ctx, exp.QuizSource())
		if err != nil {
			r.fail(res, "Quiz generation", err)
			return
		}

		sess.SetExplanation(exp, t)
		sess.SetQuiz(quiz)
		res.MainResult = &MainResult{Type: ResultQuiz, Data: quiz}
		res.addAction("Explainer", "Generated fresh content for quiz",
			fmt.Sprintf("Created new explanation about '%s' as basis for quiz", t))
		res.addAction("Quiz Generator", "Generated quiz on specified topic",
			fmt.Sprintf("Created bilingual quiz on '%s' using fresh content", t))
	}
}
