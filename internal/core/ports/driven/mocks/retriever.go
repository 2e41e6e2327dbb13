package mocks

import (
	"context"
	"sync"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// MockRetriever returns fixed units and records the queries it receives
type MockRetriever struct {
	mu      sync.Mutex
	queries []string

	// Units is returned (truncated to k) on every call
	Units []domain.DocumentUnit

	// Err, when set, is returned instead
	Err error
}

// NewMockRetriever creates a retriever serving the given units
func NewMockRetriever(units ...domain.DocumentUnit) *MockRetriever {
	return &MockRetriever{Units: units}
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, k int) ([]domain.DocumentUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	if k > 0 && k < len(m.Units) {
		return m.Units[:k], nil
	}
	return m.Units, nil
}

// Queries returns a copy of all recorded queries
func (m *MockRetriever) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}
