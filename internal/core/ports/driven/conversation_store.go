package driven

import (
	"context"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// ConversationStore persists per-conversation turn history.
// Implementations must support concurrent reads and concurrent appends to
// different conversation ids; per-id write serialisation is the engine's
// responsibility.
type ConversationStore interface {
	// Create registers an empty conversation.
	// Returns domain.ErrAlreadyExists if the id is live.
	Create(ctx context.Context, id string) error

	// History returns all turns in append order.
	// Returns domain.ErrNotFound for unknown ids.
	History(ctx context.Context, id string) ([]domain.Turn, error)

	// AppendTurn adds a turn at the end of the conversation.
	// Returns domain.ErrNotFound for unknown ids.
	AppendTurn(ctx context.Context, id string, turn domain.Turn) error

	// Delete removes the conversation and its turns.
	// Returns domain.ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}
