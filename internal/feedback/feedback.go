// Package feedback turns quiz results into performance levels and
// encouragement.
package feedback

// Level is a coarse performance grade.
type Level string

const (
	LevelExcellent        Level = "excellent"
	LevelGood             Level = "good"
	LevelNeedsImprovement Level = "needs_improvement"
	LevelUnknown          Level = "unknown"
)

// Score thresholds in percent.
const (
	ExcellentThreshold = 80.0
	GoodThreshold      = 60.0
)

// Performance summarizes a set of quiz answers.
type Performance struct {
	ScorePercentage float64 `json:"score_percentage"`
	Level           Level   `json:"performance_level"`
	Feedback        string  `json:"feedback"`
	FeedbackAr      string  `json:"feedback_ar,omitempty"`
	Suggestion      string  `json:"suggestion"`
}

// Analyze grades correct out of total answers.
func Analyze(total, correct int) Performance {
	if total <= 0 {
		return Performance{
			ScorePercentage: 0,
			Level:           LevelUnknown,
			Feedback:        "No quiz attempted yet.",
			Suggestion:      "Try taking a quiz to test your understanding.",
		}
	}

	score := float64(correct) * 100 / float64(total)

	switch {
	case score >= ExcellentThreshold:
		return Performance{
			ScorePercentage: score,
			Level:           LevelExcellent,
			Feedback:        "Excellent work! You have a strong understanding of the concept.",
			FeedbackAr:      "عمل ممتاز! لديك فهم قوي للمفهوم.",
			Suggestion:      "Move on to more advanced topics or practice applying this concept.",
		}
	case score >= GoodThreshold:
		return Performance{
			ScorePercentage: score,
			Level:           LevelGood,
			Feedback:        "Good job! You understand the basics, but there's room for improvement.",
			FeedbackAr:      "عمل جيد! تفهم الأساسيات، ولكن هناك مجال للتحسين.",
			Suggestion:      "Review the areas you struggled with and try another quiz.",
		}
	default:
		return Performance{
			ScorePercentage: score,
			Level:           LevelNeedsImprovement,
			Feedback:        "You need more practice with this concept.",
			FeedbackAr:      "تحتاج إلى مزيد من الممارسة مع هذا المفهوم.",
			Suggestion:      "Review the explanation carefully and ask for clarification on confusing points.",
		}
	}
}

var encouragements = map[Level]string{
	LevelExcellent:        "Keep up the excellent work! You're making great progress.",
	LevelGood:             "You're doing well! Keep practicing and you'll improve even more.",
	LevelNeedsImprovement: "Don't give up! Learning takes time and practice. You can do this!",
}

// Encouragement returns a short motivational line for level.
func Encouragement(level Level) string {
	if msg, ok := encouragements[level]; ok {
		return msg
	}
	return "Keep learning and practicing!"
}

// ForAnswer picks the encouragement for a single checked answer.
func ForAnswer(correct bool) string {
	if correct {
		return Encouragement(LevelExcellent)
	}
	return Encouragement(LevelNeedsImprovement)
}
