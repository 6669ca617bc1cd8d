package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/baba/internal/content"
)

// QuizAttempt records one checked quiz answer.
type QuizAttempt struct {
	QuestionIndex int  `json:"question_index"`
	UserAnswer    int  `json:"user_answer"`
	IsCorrect     bool `json:"is_correct"`
}

// ConversationSession is the memory carried between turns of one user's
// conversation. Only the goroutine handling the current turn may mutate it.
type ConversationSession struct {
	ID string `json:"id"`

	// LastExplanation is the most recent explanation, replaced on every
	// explanation run.
	LastExplanation *content.Explanation `json:"last_explanation,omitempty"`

	// LastWriting is the most recent writing result.
	LastWriting *content.WritingResult `json:"last_writing,omitempty"`

	// LastTopic is the concept last explained, or the writing marker.
	LastTopic string `json:"last_topic,omitempty"`

	// LastQuiz is the most recently generated quiz, used when an answer
	// arrives without the quiz attached.
	LastQuiz *content.Quiz `json:"last_quiz,omitempty"`

	// QuizHistory only grows until the session is cleared.
	QuizHistory []QuizAttempt `json:"quiz_history"`

	History MessageHistory `json:"history"`

	InteractionCount int       `json:"interaction_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// New creates an empty session. An empty id gets a fresh UUID.
func New(id string) *ConversationSession {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	return &ConversationSession{
		ID:          id,
		QuizHistory: []QuizAttempt{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
