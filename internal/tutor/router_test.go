package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/baba/internal/classify"
	"github.com/abhisek/baba/internal/content"
	"github.com/abhisek/baba/internal/feedback"
	"github.com/abhisek/baba/internal/llm"
	"github.com/abhisek/baba/internal/session"
)

// fakeGenerator records every call and returns canned results.
type fakeGenerator struct {
	explanation *content.Explanation
	writing     *content.WritingResult
	quiz        *content.Quiz
	answer      *content.GeneralAnswer

	explainErr error
	quizErr    error

	explained    []string
	quizSources  []string
	improved     []string
	answered     []string
	answerContxt []string
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		explanation: &content.Explanation{EnglishExplanation: "Fresh E", GulfExample: "Fresh G"},
		writing: &content.WritingResult{
			ImprovedText:  "Improved.",
			GrammarPoints: []string{"articles", "tense"},
		},
		quiz: &content.Quiz{Questions: []content.Question{
			{QuestionEn: "Q?", QuestionAr: "س؟", Options: []string{"A", "B"}, CorrectAnswer: 1},
		}},
		answer: &content.GeneralAnswer{EnglishAnswer: "Plan.", ArabicAnswer: "خطط."},
	}
}

func (f *fakeGenerator) Explain(_ context.Context, concept string) (*content.Explanation, error) {
	f.explained = append(f.explained, concept)
	if f.explainErr != nil {
		return nil, f.explainErr
	}
	return f.explanation, nil
}

func (f *fakeGenerator) ImproveWriting(_ context.Context, text string) (*content.WritingResult, error) {
	f.improved = append(f.improved, text)
	return f.writing, nil
}

func (f *fakeGenerator) GenerateQuiz(_ context.Context, source string) (*content.Quiz, error) {
	f.quizSources = append(f.quizSources, source)
	if f.quizErr != nil {
		return nil, f.quizErr
	}
	return f.quiz, nil
}

func (f *fakeGenerator) Answer(_ context.Context, question, contextSummary string) (*content.GeneralAnswer, error) {
	f.answered = append(f.answered, question)
	f.answerContxt = append(f.answerContxt, contextSummary)
	return f.answer, nil
}

func (f *fakeGenerator) calls() int {
	return len(f.explained) + len(f.quizSources) + len(f.improved) + len(f.answered)
}

func newTestRouter(gen Generator) *Router {
	return NewRouter(classify.NewClassifier(nil, nil), gen, nil)
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"empty", "", ErrEmptyInput},
		{"whitespace", "    ", ErrInputTooShort},
		{"two chars", "hi", ErrInputTooShort},
		{"padded two chars", "  ab  ", ErrInputTooShort},
		{"three chars", "abc", nil},
		{"arabic three letters", "نعم", nil},
		{"at limit", strings.Repeat("a", MaxInputChars), nil},
		{"over limit", strings.Repeat("a", MaxInputChars+1), ErrInputTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			var ive *InputValidationError
			assert.ErrorAs(t, err, &ive)
		})
	}
}

func TestRoute_InvalidInputStopsTurn(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")

	res := r.Route(context.Background(), "ok", sess)

	assert.Equal(t, "Input is too short. Please provide at least 3 characters.", res.Error)
	assert.Nil(t, res.Classification)
	assert.Nil(t, res.MainResult)
	assert.Zero(t, gen.calls())
	assert.Empty(t, sess.History.Messages)
}

func TestRoute_Explanation(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")

	res := r.Route(context.Background(), "what is photosynthesis", sess)

	require.Empty(t, res.Error)
	assert.Equal(t, classify.IntentExplanation, res.Classification.TaskType)
	assert.Equal(t, ResultExplanation, res.MainResult.Type)
	assert.Same(t, gen.explanation, res.MainResult.Data)
	assert.Equal(t, explanationQuizOffer, res.QuizPrompt)
	assert.Empty(t, gen.quizSources, "explanation must not auto-generate a quiz")

	assert.Same(t, gen.explanation, sess.LastExplanation)
	assert.Equal(t, "what is photosynthesis", sess.LastTopic)
	assert.Equal(t, []string{"what is photosynthesis"}, sess.History.Recent())

	require.Len(t, res.AutonomousActions, 3)
	assert.Equal(t, "Determined task type: explanation", res.AutonomousActions[0].Decision)
}

func TestRoute_ExplanationFailureLeavesSession(t *testing.T) {
	gen := newFakeGenerator()
	gen.explainErr = &llm.ErrProviderUnavailable{Err: errors.New("timeout")}
	r := newTestRouter(gen)

	sess := session.New("s")
	previous := &content.Explanation{EnglishExplanation: "old"}
	sess.SetExplanation(previous, "gravity")

	res := r.Route(context.Background(), "what is entropy", sess)

	assert.True(t, strings.HasPrefix(res.Error, "Explanation flow error: "), res.Error)
	assert.Nil(t, res.MainResult)
	assert.Same(t, previous, sess.LastExplanation)
	assert.Equal(t, "gravity", sess.LastTopic)
}

func TestRoute_Writing(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")

	input := "In my opinion students should spend more time reading novels because reading helps them improve their vocabulary and their style at the university level"
	res := r.Route(context.Background(), input, sess)

	require.Empty(t, res.Error)
	assert.Equal(t, ResultWriting, res.MainResult.Type)
	assert.Equal(t, writingQuizOffer, res.QuizPrompt)
	assert.Equal(t, "writing improvement", sess.LastTopic)
	assert.Same(t, gen.writing, sess.LastWriting)

	last := res.AutonomousActions[len(res.AutonomousActions)-1]
	assert.Equal(t, "Identified 2 grammar points", last.Decision)
}

func TestRoute_GeneralQuestionContext(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")

	res := r.Route(context.Background(), "how can i manage my time", sess)
	require.Empty(t, res.Error)
	assert.Equal(t, ResultGeneralQA, res.MainResult.Type)

	r.Route(context.Background(), "how do I plan my week", sess)

	require.Len(t, gen.answerContxt, 2)
	assert.Equal(t, "", gen.answerContxt[0])
	assert.Equal(t, "Recent conversation context:\n1. how can i manage my time\n", gen.answerContxt[1])
	assert.Equal(t, 2, sess.InteractionCount)
}

func TestRoute_QuizFromExplanationContext(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")
	sess.SetExplanation(&content.Explanation{EnglishExplanation: "E", GulfExample: "G"}, "gravity")

	res := r.Route(context.Background(), "yes", sess)

	require.Empty(t, res.Error)
	assert.Equal(t, []string{"E\n\nG"}, gen.quizSources)
	assert.Empty(t, gen.explained)
	assert.Equal(t, ResultQuiz, res.MainResult.Type)
	assert.Equal(t, "gravity", sess.LastTopic)
	assert.Same(t, gen.quiz, sess.LastQuiz)
}

func TestRoute_QuizFromWritingContext(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")
	sess.SetWriting(&content.WritingResult{ImprovedText: "Students must read."})

	res := r.Route(context.Background(), "sure", sess)

	require.Empty(t, res.Error)
	assert.Equal(t, []string{"Writing skills quiz based on: Students must read."}, gen.quizSources)
}

func TestRoute_QuizAwaitingTopic(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")

	res := r.Route(context.Background(), "نعم", sess)

	require.Empty(t, res.Error)
	assert.Equal(t, ResultMessage, res.MainResult.Type)
	assert.Equal(t, topicRequest, res.MainResult.Data)
	assert.Zero(t, gen.calls())
}

func TestRoute_QuizExplicitTopicRegenerates(t *testing.T) {
	gen := newFakeGenerator()
	r := newTestRouter(gen)
	sess := session.New("s")
	sess.SetExplanation(&content.Explanation{EnglishExplanation: "old E", GulfExample: "old G"}, "photosynthesis")

	res := r.Route(context.Background(), "generate a quiz on the topic of photosynthesis", sess)

	require.Empty(t, res.Error)
	assert.Equal(t, []string{"photosynthesis"}, gen.explained)
	assert.Equal(t, []string{"Fresh E\n\nFresh G"}, gen.quizSources)
	assert.Same(t, gen.explanation, sess.LastExplanation)
	assert.Equal(t, "photosynthesis", sess.LastTopic)
	assert.Len(t, res.AutonomousActions, 3)
}

func TestRoute_QuizExplicitTopicFailureLeavesSession(t *testing.T) {
	gen := newFakeGenerator()
	gen.quizErr = &llm.ErrInvalidResponse{Err: errors.New("bad json")}
	r := newTestRouter(gen)
	sess := session.New("s")

	res := r.Route(context.Background(), "quiz about the water cycle", sess)

	assert.True(t, strings.HasPrefix(res.Error, "Quiz generation error: "), res.Error)
	assert.Nil(t, sess.LastExplanation)
	assert.Empty(t, sess.LastTopic)
	assert.Nil(t, sess.LastQuiz)
}

func TestNextQuizState(t *testing.T) {
	exp := &content.Explanation{EnglishExplanation: "E"}
	writing := &content.WritingResult{ImprovedText: "W"}

	tests := []struct {
		name        string
		input       string
		explanation *content.Explanation
		writing     *content.WritingResult
		want        QuizState
	}{
		{"affirmation no context", "yes", nil, nil, AwaitingTopic},
		{"affirmation explanation", " YES ", exp, nil, HasExplanationContext},
		{"explanation wins over writing", "ok", exp, writing, HasExplanationContext},
		{"affirmation writing", "نعم", nil, writing, HasWritingContext},
		{"bare quiz word", "quiz", exp, nil, HasExplanationContext},
		{"explicit topic", "quiz on gravity", exp, writing, ExplicitTopicGiven},
		{"arabic explicit topic", "اختبار عن الجاذبية", nil, nil, ExplicitTopicGiven},
		{"not an affirmation", "give me a test", exp, nil, ExplicitTopicGiven},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New("s")
			sess.LastExplanation = tt.explanation
			sess.LastWriting = tt.writing
			assert.Equal(t, tt.want, NextQuizState(tt.input, sess))
		})
	}
}

func TestCheckQuizAnswer(t *testing.T) {
	r := newTestRouter(newFakeGenerator())
	sess := session.New("s")
	quiz := &content.Quiz{Questions: []content.Question{
		{QuestionEn: "Q1", QuestionAr: "س١", Options: []string{"A", "B", "C"}, CorrectAnswer: 2, Explanation: "C is right."},
		{QuestionEn: "Q2", QuestionAr: "س٢", Options: []string{"A", "B"}, CorrectAnswer: 0},
	}}

	got := r.CheckQuizAnswer(sess, 0, 2, quiz)
	assert.True(t, got.IsCorrect)
	assert.Equal(t, "Correct! C is right.", got.Explanation)
	assert.Equal(t, feedback.Encouragement(feedback.LevelExcellent), got.Encouragement)

	got = r.CheckQuizAnswer(sess, 5, 0, quiz)
	assert.False(t, got.IsCorrect)
	assert.Equal(t, content.InvalidQuestionIndex, got.Explanation)
	assert.Equal(t, feedback.Encouragement(feedback.LevelNeedsImprovement), got.Encouragement)

	sess.SetQuiz(quiz)
	got = r.CheckQuizAnswer(sess, 1, 1, nil)
	assert.False(t, got.IsCorrect)
	assert.Equal(t, "Incorrect. The correct answer is: A. No explanation provided.", got.Explanation)

	require.Len(t, sess.QuizHistory, 2)
	assert.Equal(t, session.QuizAttempt{QuestionIndex: 1, UserAnswer: 1, IsCorrect: false}, sess.QuizHistory[1])
}

func TestCheckQuizAnswer_InvalidIndexLeavesScoreAlone(t *testing.T) {
	r := newTestRouter(newFakeGenerator())
	sess := session.New("s")
	quiz := &content.Quiz{Questions: []content.Question{
		{QuestionEn: "Q1", QuestionAr: "س١", Options: []string{"A", "B"}, CorrectAnswer: 1},
	}}

	r.CheckQuizAnswer(sess, 0, 1, quiz)
	for _, idx := range []int{-1, 1, 7} {
		got := r.CheckQuizAnswer(sess, idx, 0, quiz)
		assert.Equal(t, content.InvalidQuestionIndex, got.Explanation)
	}
	got := r.CheckQuizAnswer(sess, 0, 0, nil)
	assert.Equal(t, content.InvalidQuestionIndex, got.Explanation)

	require.Len(t, sess.QuizHistory, 1)
	analysis := r.AnalyzeSession(sess)
	require.NotNil(t, analysis.Performance)
	assert.Equal(t, 100.0, analysis.Performance.ScorePercentage)
}

func TestAnalyzeSession(t *testing.T) {
	r := newTestRouter(newFakeGenerator())
	sess := session.New("s")

	got := r.AnalyzeSession(sess)
	require.NotNil(t, got.Message)
	assert.Nil(t, got.Performance)
	assert.Contains(t, got.Message.MessageEn, "No quiz attempts yet")

	for i := 0; i < 4; i++ {
		sess.RecordAnswer(i, 0, true)
	}
	sess.RecordAnswer(4, 0, false)

	got = r.AnalyzeSession(sess)
	require.NotNil(t, got.Performance)
	assert.Equal(t, feedback.LevelExcellent, got.Performance.Level)
	assert.Equal(t, 80.0, got.Performance.ScorePercentage)
}

func TestRoute_EndToEndWithMockProvider(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"task_type": "explanation", "confidence": 0.95, "detected_language": "en"}`)},
		llm.MockResponse{Content: json.RawMessage("```json\n" + `{
			"english_explanation": "Sustainability means meeting present needs without harming the future.",
			"arabic_explanation": "الاستدامة تعني تلبية احتياجات الحاضر دون الإضرار بالمستقبل.",
			"gulf_example": "Solar parks in Abu Dhabi."
		}` + "\n```")},
	)
	r := NewRouter(classify.NewClassifier(mock, nil), content.NewGenerator(mock, content.DefaultConfig()), nil)
	sess := session.New("s")

	res := r.Route(context.Background(), "Explain the concept of sustainability", sess)

	require.Empty(t, res.Error)
	assert.Equal(t, classify.SourceLLM, res.Classification.Source)
	assert.Equal(t, 0.95, res.Classification.Confidence)
	require.NotNil(t, sess.LastExplanation)
	assert.Equal(t, "Solar parks in Abu Dhabi.", sess.LastExplanation.GulfExample)
	assert.Equal(t, 2, mock.CallCount())
}

type deadlineGenerator struct {
	*fakeGenerator
	hasDeadline bool
}

func (d *deadlineGenerator) Explain(ctx context.Context, concept string) (*content.Explanation, error) {
	_, d.hasDeadline = ctx.Deadline()
	return d.fakeGenerator.Explain(ctx, concept)
}

func TestRoute_WithTimeoutBoundsTheTurn(t *testing.T) {
	gen := &deadlineGenerator{fakeGenerator: newFakeGenerator()}
	r := NewRouter(classify.NewClassifier(nil, nil), gen, nil)

	r.Route(context.Background(), "What is photosynthesis", session.New("s"))
	assert.False(t, gen.hasDeadline)

	r.WithTimeout(time.Minute)
	r.Route(context.Background(), "What is photosynthesis", session.New("s"))
	assert.True(t, gen.hasDeadline)
}

func TestAnalyze_MatchesRouter(t *testing.T) {
	sess := session.New("s")
	sess.RecordAnswer(0, 1, true)
	sess.RecordAnswer(1, 0, false)

	r := NewRouter(classify.NewClassifier(nil, nil), newFakeGenerator(), nil)
	assert.Equal(t, r.AnalyzeSession(sess), Analyze(sess))
	require.NotNil(t, Analyze(sess).Performance)
	assert.Equal(t, 50.0, Analyze(sess).Performance.ScorePercentage)
}
