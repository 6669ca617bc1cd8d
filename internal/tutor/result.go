package tutor

import (
	"github.com/abhisek/baba/internal/classify"
	"github.com/abhisek/baba/internal/content"
	"github.com/abhisek/baba/internal/feedback"
)

// ResultType tags the payload in MainResult.
type ResultType string

const (
	ResultExplanation ResultType = "explanation"
	ResultWriting     ResultType = "writing_improvement"
	ResultQuiz        ResultType = "quiz"
	ResultGeneralQA   ResultType = "general_qa"
	ResultMessage     ResultType = "message"
)

// BilingualMessage is a short fixed message in both languages.
type BilingualMessage struct {
	MessageEn string `json:"message_en"`
	MessageAr string `json:"message_ar"`
}

// MainResult is the primary payload of a turn. Data holds one of
// *content.Explanation, *content.WritingResult, *content.Quiz,
// *content.GeneralAnswer or *BilingualMessage, matching Type.
type MainResult struct {
	Type ResultType `json:"type"`
	Data any        `json:"data"`
}

// Action is one step the router took on the user's behalf.
type Action struct {
	Agent    string `json:"agent"`
	Action   string `json:"action"`
	Decision string `json:"decision"`
}

// TurnResult is everything produced for one user turn. Error is set when
// validation or generation failed; the session survives either way.
type TurnResult struct {
	Classification    *classify.Classification `json:"classification"`
	MainResult        *MainResult              `json:"main_result"`
	AutonomousActions []Action                 `json:"autonomous_actions"`
	QuizPrompt        *BilingualMessage        `json:"quiz_prompt,omitempty"`
	Error             string                   `json:"error,omitempty"`
}

func (r *TurnResult) addAction(agent, action, decision string) {
	r.AutonomousActions = append(r.AutonomousActions, Action{Agent: agent, Action: action, Decision: decision})
}

// AnswerResult is a graded quiz answer plus encouragement.
type AnswerResult struct {
	content.AnswerCheck
	Encouragement string `json:"encouragement"`
}

// SessionAnalysis is either a no-attempts message or a performance grade.
type SessionAnalysis struct {
	Message     *BilingualMessage     `json:"message,omitempty"`
	Performance *feedback.Performance `json:"performance,omitempty"`
}

var (
	explanationQuizOffer = &BilingualMessage{
		MessageEn: "Would you like to test your understanding with a quiz on this topic?",
		MessageAr: "هل تريد اختبار فهمك من خلال اختبار حول هذا الموضوع؟",
	}
	writingQuizOffer = &BilingualMessage{
		MessageEn: "Would you like a quiz to practice similar writing skills?",
		MessageAr: "هل تريد اختبارًا لممارسة مهارات الكتابة المماثلة؟",
	}
	topicRequest = &BilingualMessage{
		MessageEn: "I'd be happy to create a quiz for you! What topic would you like to be tested on?",
		MessageAr: "يسعدني إنشاء اختبار لك! ما الموضوع الذي تريد أن تُختبر عليه؟",
	}
	noAttempts = &BilingualMessage{
		MessageEn: "No quiz attempts yet. Try taking a quiz to test your understanding!",
		MessageAr: "لم تجرب أي اختبار بعد. حاول أخذ اختبار لاختبار فهمك!",
	}
)
