package driven

import (
	"context"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// LanguageDetector classifies the language of a question.
// When the underlying completer exhausts its retry budget the detector
// reports domain.LanguageUnknown with a nil error; the engine then takes
// the english path.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (domain.Language, error)
}

// Translator converts text between the two supported languages.
// ToEnglish is used to rewrite urdu questions for retrieval; ToUrdu
// translates the generated english answer back for the caller.
type Translator interface {
	ToEnglish(ctx context.Context, text string) (string, error)
	ToUrdu(ctx context.Context, text string) (string, error)
}
