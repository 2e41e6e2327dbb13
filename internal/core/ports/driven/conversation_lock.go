package driven

import (
	"context"
	"time"
)

// ConversationLock serialises answer generation per conversation id so at
// most one generation is in flight for a given conversation. The TTL
// bounds how long a crashed holder can block the id.
type ConversationLock interface {
	// Acquire attempts to take the lock for the conversation.
	// Returns false without error when the lock is held elsewhere.
	Acquire(ctx context.Context, conversationID string, ttl time.Duration) (bool, error)

	// Release frees the lock if held by this instance.
	// Safe to call after expiry.
	Release(ctx context.Context, conversationID string) error
}
