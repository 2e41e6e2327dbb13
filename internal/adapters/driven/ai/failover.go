package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Ensure FailoverCompleter implements ChatCompleter
var _ driven.ChatCompleter = (*FailoverCompleter)(nil)

// attemptFunc performs a single completion with one (credential, model)
// pair. Satisfied by (*GroqClient).Attempt.
type attemptFunc func(ctx context.Context, apiKey, model, system, user string, maxTokens int, jsonMode bool) (string, error)

// FailoverCompleter enumerates every (credential, model) pair in ranked
// order until one call succeeds. All failure kinds are treated the same:
// back off, then move to the next pair. When the retry policy's pass
// budget is exhausted it returns ErrServiceUnavailable; it never blocks
// forever.
type FailoverCompleter struct {
	attempt attemptFunc
	keys    []string
	models  []string
	policy  domain.RetryPolicy
	logger  *slog.Logger

	// sleep is replaced in tests to avoid real backoff waits
	sleep func(context.Context, time.Duration)
}

// NewFailoverCompleter creates a completer over the ranked credential and
// model lists
func NewFailoverCompleter(client *GroqClient, keys, models []string, policy domain.RetryPolicy, logger *slog.Logger) (*FailoverCompleter, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: at least one API key is required", domain.ErrInvalidInput)
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: at least one model is required", domain.ErrInvalidInput)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FailoverCompleter{
		attempt: client.Attempt,
		keys:    keys,
		models:  models,
		policy:  policy.Normalise(),
		logger:  logger,
		sleep:   sleepCtx,
	}, nil
}

// Complete tries every (credential, model) pair per pass, most-preferred
// first, returning the first successful response text.
func (f *FailoverCompleter) Complete(ctx context.Context, req driven.ChatRequest) (string, error) {
	var lastErr error

	for pass := 0; pass < f.policy.Passes; pass++ {
		for ki, key := range f.keys {
			for mi, model := range f.models {
				if err := ctx.Err(); err != nil {
					return "", err
				}

				out, err := f.attempt(ctx, key, model, req.System, req.User, req.MaxTokens, req.JSONMode)
				if err == nil {
					return out, nil
				}

				lastErr = err
				f.logger.Warn("completion attempt failed",
					"key_index", ki, "model_index", mi, "model", model, "pass", pass, "error", err)
				f.sleep(ctx, f.policy.Backoff)
			}
		}
	}

	return "", fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
