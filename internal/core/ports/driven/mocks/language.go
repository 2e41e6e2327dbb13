package mocks

import (
	"context"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// MockLanguageDetector reports a fixed language
type MockLanguageDetector struct {
	Language domain.Language
	Err      error
}

// NewMockLanguageDetector creates a detector reporting lang
func NewMockLanguageDetector(lang domain.Language) *MockLanguageDetector {
	return &MockLanguageDetector{Language: lang}
}

func (m *MockLanguageDetector) Detect(ctx context.Context, text string) (domain.Language, error) {
	if m.Err != nil {
		return domain.LanguageUnknown, m.Err
	}
	return m.Language, nil
}

// MockTranslator applies fixed prefixes so tests can assert which
// direction was used
type MockTranslator struct {
	ToEnglishErr error
	ToUrduErr    error
}

// NewMockTranslator creates a MockTranslator
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

func (m *MockTranslator) ToEnglish(ctx context.Context, text string) (string, error) {
	if m.ToEnglishErr != nil {
		return "", m.ToEnglishErr
	}
	return "en:" + text, nil
}

func (m *MockTranslator) ToUrdu(ctx context.Context, text string) (string, error) {
	if m.ToUrduErr != nil {
		return "", m.ToUrduErr
	}
	return "ur:" + text, nil
}
