package session

// QuizProgress is the running tally over a session's quiz history.
type QuizProgress struct {
	TotalAttempts int
	CorrectCount  int
	Accuracy      float64 // CorrectCount / TotalAttempts (computed)
}

// Record adds a new answer result to the progress.
func (p *QuizProgress) Record(correct bool) {
	p.TotalAttempts++
	if correct {
		p.CorrectCount++
	}
	if p.TotalAttempts > 0 {
		p.Accuracy = float64(p.CorrectCount) / float64(p.TotalAttempts)
	}
}

// Progress tallies the session's quiz history.
func (s *ConversationSession) Progress() QuizProgress {
	var p QuizProgress
	for _, a := range s.QuizHistory {
		p.Record(a.IsCorrect)
	}
	return p
}
