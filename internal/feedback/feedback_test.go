package feedback

import "testing"

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		level   Level
		score   float64
	}{
		{"no attempts", 0, 0, LevelUnknown, 0},
		{"perfect", 5, 5, LevelExcellent, 100},
		{"exactly eighty", 5, 4, LevelExcellent, 80},
		{"exactly sixty", 5, 3, LevelGood, 60},
		{"below sixty", 3, 1, LevelNeedsImprovement, 100.0 / 3.0},
		{"zero correct", 4, 0, LevelNeedsImprovement, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Analyze(tt.total, tt.correct)
			if p.Level != tt.level {
				t.Errorf("Level = %q, want %q", p.Level, tt.level)
			}
			if diff := p.ScorePercentage - tt.score; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("ScorePercentage = %f, want %f", p.ScorePercentage, tt.score)
			}
			if p.Feedback == "" || p.Suggestion == "" {
				t.Error("feedback and suggestion must be set")
			}
		})
	}
}

func TestAnalyze_ArabicFeedback(t *testing.T) {
	if Analyze(2, 2).FeedbackAr == "" {
		t.Error("expected Arabic feedback for graded results")
	}
	if Analyze(0, 0).FeedbackAr != "" {
		t.Error("expected no Arabic feedback without attempts")
	}
}

func TestEncouragement(t *testing.T) {
	if got := Encouragement(LevelGood); got != "You're doing well! Keep practicing and you'll improve even more." {
		t.Errorf("Encouragement(good) = %q", got)
	}
	if got := Encouragement(Level("bogus")); got != "Keep learning and practicing!" {
		t.Errorf("Encouragement(bogus) = %q", got)
	}
	if ForAnswer(true) != Encouragement(LevelExcellent) {
		t.Error("correct answer should use excellent encouragement")
	}
	if ForAnswer(false) != Encouragement(LevelNeedsImprovement) {
		t.Error("wrong answer should use needs_improvement encouragement")
	}
}
