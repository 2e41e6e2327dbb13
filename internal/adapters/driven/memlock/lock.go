package memlock

import (
	"context"
	"sync"
	"time"

	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationLock = (*Lock)(nil)

// Lock implements ConversationLock in process memory. It serialises
// answer generation per conversation within a single backend instance;
// deployments running multiple instances should use the Redis lock
// instead.
type Lock struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

// NewLock creates a new in-memory conversation lock
func NewLock() *Lock {
	return &Lock{
		held: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Acquire attempts to take the lock for a conversation.
// Returns true if acquired, false if another answer is in flight.
// An expired holder's lock can be taken over.
func (l *Lock) Acquire(_ context.Context, conversationID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.held[conversationID]; ok && l.now().Before(expiry) {
		return false, nil
	}
	l.held[conversationID] = l.now().Add(ttl)
	return true, nil
}

// Release releases the conversation's lock.
// Safe to call even if the lock is not held or has expired.
func (l *Lock) Release(_ context.Context, conversationID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, conversationID)
	return nil
}
