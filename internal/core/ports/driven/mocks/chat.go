package mocks

import (
	"context"
	"sync"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// MockChatCompleter records requests and replays scripted responses
type MockChatCompleter struct {
	mu       sync.Mutex
	requests []driven.ChatRequest

	// Response is returned for every call unless Script is set
	Response string

	// Script, when non-empty, is consumed one entry per call
	Script []string

	// Err, when set, is returned instead of a response
	Err error
}

// NewMockChatCompleter returns a completer that answers with response
func NewMockChatCompleter(response string) *MockChatCompleter {
	return &MockChatCompleter{Response: response}
}

// Exhausted returns a completer that always reports ErrServiceUnavailable
func Exhausted() *MockChatCompleter {
	return &MockChatCompleter{Err: domain.ErrServiceUnavailable}
}

func (m *MockChatCompleter) Complete(ctx context.Context, req driven.ChatRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Script) > 0 {
		out := m.Script[0]
		m.Script = m.Script[1:]
		return out, nil
	}
	return m.Response, nil
}

// Requests returns a copy of all recorded requests
func (m *MockChatCompleter) Requests() []driven.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]driven.ChatRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or a zero request
func (m *MockChatCompleter) LastRequest() driven.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return driven.ChatRequest{}
	}
	return m.requests[len(m.requests)-1]
}
