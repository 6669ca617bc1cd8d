package content

import (
	"fmt"
	"strings"
)

// InvalidQuestionIndex is the explanation returned for an out-of-range
// question index.
const InvalidQuestionIndex = "Invalid question index"

// CheckAnswer grades userAnswer against question questionIndex of quiz.
// An out-of-range index is a normal negative result, not an error.
func CheckAnswer(questionIndex, userAnswer int, quiz *Quiz) AnswerCheck {
	if quiz == nil || questionIndex < 0 || questionIndex >= len(quiz.Questions) {
		return AnswerCheck{IsCorrect: false, Explanation: InvalidQuestionIndex}
	}

	q := quiz.Questions[questionIndex]
	rationale := q.Explanation
	if strings.TrimSpace(rationale) == "" {
		rationale = NoRationale
	}

	if userAnswer == q.CorrectAnswer {
		return AnswerCheck{IsCorrect: true, Explanation: "Correct! " + rationale}
	}

	correct := ""
	if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
		correct = q.Options[q.CorrectAnswer]
	}
	return AnswerCheck{
		IsCorrect:   false,
		Explanation: fmt.Sprintf("Incorrect. The correct answer is: %s. %s", correct, rationale),
	}
}
