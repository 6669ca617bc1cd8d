// Package topic recovers the subject of a quiz request from the raw text.
package topic

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// minTopicLen is the shortest extracted topic kept; anything shorter falls
// back to the raw input.
const minTopicLen = 3

// requestPhrases are removed in order, longest first, so that a short phrase
// never cuts into a longer one.
var requestPhrases = []string{
	"generate a quiz on the topic of",
	"generate quiz on the topic of",
	"create a quiz on the topic of",
	"create quiz on the topic of",
	"make a quiz on the topic of",
	"make quiz on the topic of",
	"generate a quiz on the topic",
	"generate quiz on the topic",
	"create a quiz on the topic",
	"create quiz on the topic",
	"make a quiz on the topic",
	"make quiz on the topic",
	"quiz on the topic of",
	"test on the topic of",
	"quiz on the topic",
	"test on the topic",
	"generate a quiz on",
	"generate quiz on",
	"create a quiz on",
	"create quiz on",
	"make a quiz on",
	"make quiz on",
	"quiz on",
	"quiz about",
	"test on",
	"test about",
	"generate quiz",
	"create quiz",
	"make quiz",
	"اختبار عن",
	"اختبار حول",
}

var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`what is [\p{L}\p{N}_]+`),
	regexp.MustCompile(`what are [\p{L}\p{N}_]+`),
	regexp.MustCompile(`how does [\p{L}\p{N}_]+`),
	regexp.MustCompile(`how do [\p{L}\p{N}_]+`),
	regexp.MustCompile(`why is [\p{L}\p{N}_]+`),
	regexp.MustCompile(`why are [\p{L}\p{N}_]+`),
	regexp.MustCompile(`explain [\p{L}\p{N}_]+`),
}

var fillerWords = lo.SliceToMap(
	[]string{"generate", "create", "make", "quiz", "test", "exam", "the", "a", "an"},
	func(w string) (string, struct{}) { return w, struct{}{} },
)

var wordToken = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var punctuation = strings.NewReplacer("?", "", "!", "", ",", "")

// Extract strips quiz-request boilerplate from raw and returns the topic.
// Question-shaped remainders such as "what is langgraph" are kept whole.
// If stripping leaves fewer than three characters, raw is returned as-is.
func Extract(raw string) string {
	t := strings.ToLower(raw)
	for _, p := range requestPhrases {
		t = strings.ReplaceAll(t, p, " ")
	}
	t = collapse(t)

	if !isQuestion(t) {
		t = wordToken.ReplaceAllStringFunc(t, func(w string) string {
			if _, ok := fillerWords[w]; ok {
				return ""
			}
			return w
		})
	}

	t = collapse(punctuation.Replace(t))

	if utf8.RuneCountInString(t) < minTopicLen {
		return raw
	}
	return t
}

func isQuestion(s string) bool {
	for _, re := range questionPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
