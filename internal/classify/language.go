package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DetectLanguage labels text by script: Arabic letters, Latin letters, both,
// or neither. Text shorter than three characters is unknown.
func DetectLanguage(text string) Language {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 3 {
		return LanguageUnknown
	}

	var hasArabic, hasLatin bool
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r):
			hasArabic = true
		case r < utf8.RuneSelf && unicode.IsLetter(r):
			hasLatin = true
		}
		if hasArabic && hasLatin {
			return LanguageMixed
		}
	}

	switch {
	case hasArabic:
		return LanguageArabic
	case hasLatin:
		return LanguageEnglish
	default:
		return LanguageUnknown
	}
}
