package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Ensure Detector implements LanguageDetector
var _ driven.LanguageDetector = (*Detector)(nil)

const detectSystemPrompt = `You are an expert agent and your task is to detect the language of the provided question. Respond with a single JSON object in this exact format:
{"detected_language": "the detected language name: urdu or english"}`

// Detector classifies question language via the chat completer's JSON mode
type Detector struct {
	completer driven.ChatCompleter
}

// NewDetector creates a new Detector over the given completer
func NewDetector(completer driven.ChatCompleter) *Detector {
	return &Detector{completer: completer}
}

// Detect returns the question's language. Exhausting every provider
// combination yields LanguageUnknown with a nil error so callers always
// receive a defined result.
func (d *Detector) Detect(ctx context.Context, text string) (domain.Language, error) {
	raw, err := d.completer.Complete(ctx, driven.ChatRequest{
		System:    detectSystemPrompt,
		User:      "Detect the language of the following question: " + text,
		MaxTokens: 512,
		JSONMode:  true,
	})
	if errors.Is(err, domain.ErrServiceUnavailable) {
		return domain.LanguageUnknown, nil
	}
	if err != nil {
		return domain.LanguageUnknown, err
	}

	value, err := jsonField(raw, "detected_language")
	if err != nil {
		return domain.LanguageUnknown, fmt.Errorf("parse detection response: %w", err)
	}
	return domain.ParseLanguage(value), nil
}

// jsonField extracts a single named string field from a JSON-mode
// completion response.
func jsonField(raw, field string) (string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", fmt.Errorf("invalid JSON output: %w", err)
	}
	data, ok := payload[field]
	if !ok {
		return "", fmt.Errorf("field %q missing from output", field)
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return "", fmt.Errorf("field %q is not a string: %w", field, err)
	}
	return value, nil
}
