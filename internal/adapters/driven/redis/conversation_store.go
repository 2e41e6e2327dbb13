package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

const (
	// Key layout: chat:{id} marks existence, chat:{id}:turns is the
	// append-only turn list
	chatPrefix      = "chat:"
	turnsListSuffix = ":turns"
)

// ConversationStore implements driven.ConversationStore using Redis.
// Turns are stored as a JSON list so append order is the list order.
type ConversationStore struct {
	client *redis.Client
}

// NewConversationStore creates a new Redis-backed ConversationStore
func NewConversationStore(client *redis.Client) *ConversationStore {
	return &ConversationStore{client: client}
}

// Create registers an empty conversation
func (s *ConversationStore) Create(ctx context.Context, id string) error {
	created, err := s.client.SetNX(ctx, chatPrefix+id, time.Now().UTC().Format(time.RFC3339), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	if !created {
		return domain.ErrAlreadyExists
	}
	return nil
}

// History returns all turns in append order
func (s *ConversationStore) History(ctx context.Context, id string) ([]domain.Turn, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}

	raw, err := s.client.LRange(ctx, chatPrefix+id+turnsListSuffix, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read turns: %w", err)
	}

	turns := make([]domain.Turn, 0, len(raw))
	for _, item := range raw {
		var t domain.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// AppendTurn adds a turn at the end of the conversation
func (s *ConversationStore) AppendTurn(ctx context.Context, id string, turn domain.Turn) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	if err := s.client.RPush(ctx, chatPrefix+id+turnsListSuffix, data).Err(); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// Delete removes the conversation and its turns
func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}

	if err := s.client.Del(ctx, chatPrefix+id, chatPrefix+id+turnsListSuffix).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (s *ConversationStore) exists(ctx context.Context, id string) error {
	n, err := s.client.Exists(ctx, chatPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to check conversation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
