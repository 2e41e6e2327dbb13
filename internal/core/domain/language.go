package domain

import "strings"

// Language identifies the language of a question
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageUrdu    Language = "urdu"

	// LanguageUnknown is returned when detection exhausts its retry budget
	// or the detector emits a value outside the known set. Unknown questions
	// take the english path (no translation).
	LanguageUnknown Language = "unknown"
)

// ParseLanguage normalises a detector result to a known Language.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english":
		return LanguageEnglish
	case "urdu":
		return LanguageUrdu
	default:
		return LanguageUnknown
	}
}
