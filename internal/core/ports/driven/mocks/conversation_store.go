package mocks

import (
	"context"
	"sync"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// MockConversationStore is an in-memory ConversationStore for testing
type MockConversationStore struct {
	mu            sync.RWMutex
	conversations map[string][]domain.Turn

	// FailNext makes the next call return this error once
	FailNext error
}

// NewMockConversationStore creates an empty MockConversationStore
func NewMockConversationStore() *MockConversationStore {
	return &MockConversationStore{
		conversations: make(map[string][]domain.Turn),
	}
}

func (m *MockConversationStore) takeErr() error {
	err := m.FailNext
	m.FailNext = nil
	return err
}

func (m *MockConversationStore) Create(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}
	if _, ok := m.conversations[id]; ok {
		return domain.ErrAlreadyExists
	}
	m.conversations[id] = []domain.Turn{}
	return nil
}

func (m *MockConversationStore) History(ctx context.Context, id string) ([]domain.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	turns, ok := m.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (m *MockConversationStore) AppendTurn(ctx context.Context, id string, turn domain.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}
	turns, ok := m.conversations[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.conversations[id] = append(turns, turn)
	return nil
}

func (m *MockConversationStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}
	if _, ok := m.conversations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.conversations, id)
	return nil
}
