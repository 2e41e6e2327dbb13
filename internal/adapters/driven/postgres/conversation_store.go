package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

// uniqueViolation is the postgres error code for duplicate keys
const uniqueViolation = "23505"

// ConversationStore implements driven.ConversationStore using PostgreSQL
type ConversationStore struct {
	db *DB
}

// NewConversationStore creates a new ConversationStore
func NewConversationStore(db *DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Create registers an empty conversation
func (s *ConversationStore) Create(ctx context.Context, id string) error {
	query := `INSERT INTO conversations (id, created_at) VALUES ($1, $2)`

	_, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrAlreadyExists
	}
	return err
}

// History returns all turns in append order
func (s *ConversationStore) History(ctx context.Context, id string) ([]domain.Turn, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}

	query := `
		SELECT question, answer
		FROM turns
		WHERE conversation_id = $1
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.Question, &t.Answer); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return turns, nil
}

// AppendTurn adds a turn at the end of the conversation
func (s *ConversationStore) AppendTurn(ctx context.Context, id string, turn domain.Turn) error {
	query := `
		INSERT INTO turns (conversation_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query, id, turn.Question, turn.Answer, time.Now().UTC())
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		// Foreign key violation: the conversation does not exist.
		return domain.ErrNotFound
	}
	return err
}

// Delete removes the conversation; turns cascade
func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ConversationStore) exists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM conversations WHERE id = $1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	return err
}
