package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven"
	"github.com/campuskit/askbot-core/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// ChatConfig tunes the conversation engine
type ChatConfig struct {
	// TopK is the number of corpus units retrieved per question
	TopK int

	// MemoryTokens bounds the rolling history buffer
	MemoryTokens int

	// AnswerMaxTokens caps generated answer length
	AnswerMaxTokens int

	// CallTimeout bounds each external call (detection, retrieval,
	// generation, translation)
	CallTimeout time.Duration

	// LockTTL bounds how long a crashed holder can block a conversation
	LockTTL time.Duration

	// LockRetryInterval is the poll interval while waiting for the
	// per-conversation lock
	LockRetryInterval time.Duration
}

// DefaultChatConfig returns the deployment defaults
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		TopK:              5,
		MemoryTokens:      3000,
		AnswerMaxTokens:   1024,
		CallTimeout:       60 * time.Second,
		LockTTL:           2 * time.Minute,
		LockRetryInterval: 100 * time.Millisecond,
	}
}

func (c ChatConfig) normalise() ChatConfig {
	d := DefaultChatConfig()
	if c.TopK <= 0 {
		c.TopK = d.TopK
	}
	if c.MemoryTokens <= 0 {
		c.MemoryTokens = d.MemoryTokens
	}
	if c.AnswerMaxTokens <= 0 {
		c.AnswerMaxTokens = d.AnswerMaxTokens
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = d.CallTimeout
	}
	if c.LockTTL <= 0 {
		c.LockTTL = d.LockTTL
	}
	if c.LockRetryInterval <= 0 {
		c.LockRetryInterval = d.LockRetryInterval
	}
	return c
}

// chatService implements the ChatService interface: the retrieval-augmented
// conversation engine
type chatService struct {
	store      driven.ConversationStore
	retriever  driven.Retriever
	completer  driven.ChatCompleter
	detector   driven.LanguageDetector
	translator driven.Translator
	lock       driven.ConversationLock
	cfg        ChatConfig
	logger     *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	store driven.ConversationStore,
	retriever driven.Retriever,
	completer driven.ChatCompleter,
	detector driven.LanguageDetector,
	translator driven.Translator,
	lock driven.ConversationLock,
	cfg ChatConfig,
	logger *slog.Logger,
) driving.ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		store:      store,
		retriever:  retriever,
		completer:  completer,
		detector:   detector,
		translator: translator,
		lock:       lock,
		cfg:        cfg.normalise(),
		logger:     logger,
	}
}

// CreateConversation generates a fresh id and registers an empty conversation
func (s *chatService) CreateConversation(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.store.Create(ctx, id); err != nil {
		return "", fmt.Errorf("create conversation: %w", err)
	}
	return id, nil
}

// GetConversation returns the full turn history in append order
func (s *chatService) GetConversation(ctx context.Context, id string) ([]domain.Turn, error) {
	return s.store.History(ctx, id)
}

// DeleteConversation removes the conversation wholesale
func (s *chatService) DeleteConversation(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Answer runs the pipeline: load history, detect language, retrieve
// context, generate, optionally translate, persist the turn.
func (s *chatService) Answer(ctx context.Context, id string, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	if err := s.acquireLock(ctx, id); err != nil {
		return "", err
	}
	defer s.releaseLock(id)

	history, err := s.store.History(ctx, id)
	if err != nil {
		return "", err
	}

	memory := domain.NewMemoryBuffer(s.cfg.MemoryTokens)
	for _, turn := range history {
		memory.Add(turn)
	}

	lang := s.detectLanguage(ctx, question)

	// Urdu questions are translated for retrieval only; the stored
	// question stays in the original language.
	retrievalQuery := question
	if lang == domain.LanguageUrdu {
		translated, err := s.withTimeout(ctx, func(c context.Context) (string, error) {
			return s.translator.ToEnglish(c, question)
		})
		if err != nil {
			s.logger.Warn("question translation failed, retrieving with original text",
				"conversation_id", id, "error", err)
		} else {
			retrievalQuery = translated
		}
	}

	units, err := s.retrieve(ctx, retrievalQuery)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	contextBlock := joinUnits(units)
	prompt := buildSystemPrompt(question, contextBlock, memory.Render())

	answer, err := s.generate(ctx, prompt, question)
	if errors.Is(err, domain.ErrServiceUnavailable) {
		// The apology is returned but never persisted, so history is not
		// polluted with failures.
		s.logger.Error("all provider combinations exhausted", "conversation_id", id)
		return FallbackAnswer, nil
	}
	if err != nil {
		return "", err
	}

	reply := answer
	if lang == domain.LanguageUrdu {
		translated, err := s.withTimeout(ctx, func(c context.Context) (string, error) {
			return s.translator.ToUrdu(c, answer)
		})
		if err != nil {
			s.logger.Warn("answer translation failed, replying in english",
				"conversation_id", id, "error", err)
		} else {
			reply = translated
		}
	}

	// The english answer is persisted even when an urdu translation is
	// returned, keeping stored history in the retrieval language.
	if err := s.store.AppendTurn(ctx, id, domain.Turn{Question: question, Answer: answer}); err != nil {
		return "", fmt.Errorf("append turn: %w", err)
	}

	return reply, nil
}

func (s *chatService) acquireLock(ctx context.Context, id string) error {
	for {
		ok, err := s.lock.Acquire(ctx, id, s.cfg.LockTTL)
		if err != nil {
			return fmt.Errorf("acquire conversation lock: %w", err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.LockRetryInterval):
		}
	}
}

func (s *chatService) releaseLock(id string) {
	// Release must not be skipped when the request context is cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.lock.Release(ctx, id); err != nil {
		s.logger.Warn("failed to release conversation lock", "conversation_id", id, "error", err)
	}
}

// detectLanguage classifies the question, treating detector failure as
// unknown so the request still proceeds down the english path.
func (s *chatService) detectLanguage(ctx context.Context, question string) domain.Language {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	lang, err := s.detector.Detect(cctx, question)
	if err != nil {
		s.logger.Warn("language detection failed, assuming unknown", "error", err)
		return domain.LanguageUnknown
	}
	return lang
}

func (s *chatService) retrieve(ctx context.Context, query string) ([]domain.DocumentUnit, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return s.retriever.Retrieve(cctx, query, s.cfg.TopK)
}

func (s *chatService) generate(ctx context.Context, system, question string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	return s.completer.Complete(cctx, driven.ChatRequest{
		System:    system,
		User:      "Answer the following question: " + question,
		MaxTokens: s.cfg.AnswerMaxTokens,
	})
}

func (s *chatService) withTimeout(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()
	return fn(cctx)
}

// joinUnits concatenates retrieved unit text newline-joined in retrieval
// order.
func joinUnits(units []domain.DocumentUnit) string {
	var sb strings.Builder
	for _, u := range units {
		sb.WriteString(u.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
