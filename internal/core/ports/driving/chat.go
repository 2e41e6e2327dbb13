package driving

import (
	"context"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// ChatService is the surface exposed to the web layer
type ChatService interface {
	// CreateConversation generates a fresh id and registers an empty
	// conversation for it
	CreateConversation(ctx context.Context) (string, error)

	// GetConversation returns the full turn history in append order.
	// Returns domain.ErrNotFound for unknown ids.
	GetConversation(ctx context.Context, id string) ([]domain.Turn, error)

	// DeleteConversation removes the conversation wholesale.
	// Returns domain.ErrNotFound for unknown ids.
	DeleteConversation(ctx context.Context, id string) error

	// Answer runs the retrieval-augmented generation pipeline for the
	// question and appends the resulting turn. Returns domain.ErrNotFound
	// for unknown ids. When generation exhausts every provider combination
	// a fixed apology text is returned and no turn is persisted.
	Answer(ctx context.Context, id string, question string) (string, error)
}
