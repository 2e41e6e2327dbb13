package driven

import (
	"context"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// Retriever returns the k corpus units most similar to the query,
// most-similar first. Equal scores keep corpus insertion order.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]domain.DocumentUnit, error)
}
