package mocks

import (
	"context"
	"sync"
	"time"
)

// MockConversationLock tracks held ids with plain try-lock semantics
type MockConversationLock struct {
	mu       sync.Mutex
	held     map[string]bool
	acquires int
	releases int
}

// NewMockConversationLock creates a MockConversationLock
func NewMockConversationLock() *MockConversationLock {
	return &MockConversationLock{held: make(map[string]bool)}
}

func (m *MockConversationLock) Acquire(ctx context.Context, conversationID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquires++
	if m.held[conversationID] {
		return false, nil
	}
	m.held[conversationID] = true
	return true, nil
}

func (m *MockConversationLock) Release(ctx context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases++
	delete(m.held, conversationID)
	return nil
}

// Held reports whether the id is currently locked
func (m *MockConversationLock) Held(conversationID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[conversationID]
}

// Counts returns the number of acquire and release calls
func (m *MockConversationLock) Counts() (acquires, releases int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquires, m.releases
}
