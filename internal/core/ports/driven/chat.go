package driven

import (
	"context"
)

// ChatRequest is a single chat completion request
type ChatRequest struct {
	// System is the behavioural system instruction
	System string

	// User is the user-role message
	User string

	// MaxTokens caps the generated output length
	MaxTokens int

	// JSONMode asks the model to emit a single JSON object
	JSONMode bool
}

// ChatCompleter produces a text completion for a chat request.
// Implementations absorb transient provider failures internally; the only
// failure modes surfaced are ErrServiceUnavailable (retry budget exhausted)
// and context cancellation.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
