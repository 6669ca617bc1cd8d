package session

import (
	"time"

	"github.com/abhisek/baba/internal/content"
)

// SetExplanation replaces the stored explanation and topic.
func (s *ConversationSession) SetExplanation(exp *content.Explanation, topic string) {
	s.LastExplanation = exp
	s.LastTopic = topic
	s.touch()
}

// SetWriting replaces the stored writing result and sets the topic to the
// writing marker.
func (s *ConversationSession) SetWriting(w *content.WritingResult) {
	s.LastWriting = w
	s.LastTopic = w.TopicMarker()
	s.touch()
}

// SetQuiz replaces the stored quiz.
func (s *ConversationSession) SetQuiz(q *content.Quiz) {
	s.LastQuiz = q
	s.touch()
}

// RecordAnswer appends a checked answer to the quiz history.
func (s *ConversationSession) RecordAnswer(questionIndex, userAnswer int, correct bool) {
	s.QuizHistory = append(s.QuizHistory, QuizAttempt{
		QuestionIndex: questionIndex,
		UserAnswer:    userAnswer,
		IsCorrect:     correct,
	})
	s.touch()
}

// AddMessage records a user message and counts the interaction.
func (s *ConversationSession) AddMessage(msg string) {
	s.History.Add(msg)
	s.InteractionCount++
	s.touch()
}

// Clear resets every field except the ID.
func (s *ConversationSession) Clear() {
	id := s.ID
	*s = *New(id)
}

func (s *ConversationSession) touch() {
	s.UpdatedAt = time.Now().UTC()
}
