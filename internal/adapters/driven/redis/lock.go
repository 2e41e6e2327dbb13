package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationLock = (*Lock)(nil)

const lockPrefix = "askbot:answer:"

// Lock implements ConversationLock using Redis SETNX with TTL, so answer
// generation for a conversation is serialised even across multiple
// backend instances. A unique owner ID prevents accidental release by
// other instances.
type Lock struct {
	client  *redis.Client
	ownerID string
}

// NewLock creates a new Redis-backed conversation lock
func NewLock(client *redis.Client) *Lock {
	return &Lock{
		client:  client,
		ownerID: generateOwnerID(),
	}
}

// generateOwnerID creates a unique identifier for this lock holder.
// Format: hostname:pid:random
func generateOwnerID() string {
	hostname, _ := os.Hostname()
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)
	return fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), hex.EncodeToString(randomBytes))
}

// Acquire attempts to take the lock for a conversation.
// Returns true if acquired, false if another answer is in flight.
func (l *Lock) Acquire(ctx context.Context, conversationID string, ttl time.Duration) (bool, error) {
	key := lockPrefix + conversationID
	result, err := l.client.SetNX(ctx, key, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", conversationID, err)
	}
	return result, nil
}

// releaseScript only deletes the lock if the current owner matches,
// preventing release of locks held by other instances.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release releases the conversation's lock if held by this instance.
// Safe to call even if the lock is not held or has expired.
func (l *Lock) Release(ctx context.Context, conversationID string) error {
	key := lockPrefix + conversationID
	_, err := releaseScript.Run(ctx, l.client, []string{key}, l.ownerID).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("release lock %s: %w", conversationID, err)
	}
	return nil
}
