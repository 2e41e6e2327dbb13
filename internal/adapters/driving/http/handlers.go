package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campuskit/askbot-core/internal/core/domain"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Chat endpoints

// createChatResponse is returned when a new conversation is opened
type createChatResponse struct {
	ChatID string `json:"chat_id" example:"3f1c8a72-0b9e-4f6d-9a31-5d2e8c47b160"`
}

// handleCreateChat opens a new empty conversation and returns its id
func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	id, err := s.chatService.CreateConversation(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create chat")
		return
	}

	writeJSON(w, http.StatusCreated, createChatResponse{ChatID: id})
}

// chatHistoryResponse carries a conversation's full turn history
type chatHistoryResponse struct {
	ChatID  string        `json:"chat_id"`
	History []domain.Turn `json:"history"`
}

// handleGetChat returns the conversation's full turn history
func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing chat id")
		return
	}

	turns, err := s.chatService.GetConversation(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "chat not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get chat")
		}
		return
	}

	writeJSON(w, http.StatusOK, chatHistoryResponse{ChatID: id, History: turns})
}

// handleDeleteChat removes the conversation and all its turns
func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing chat id")
		return
	}

	if err := s.chatService.DeleteConversation(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "chat not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete chat")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// answerRequest carries the user's question for a conversation
type answerRequest struct {
	Question string `json:"question" example:"How many theaters does the campus have?"`
}

// answerResponse carries the generated answer
type answerResponse struct {
	Answer string `json:"answer"`
}

// handleAnswer runs the retrieval and generation pipeline for a question
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing chat id")
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.chatService.Answer(r.Context(), id, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "chat not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "question is required")
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusServiceUnavailable, "answer generation unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to answer question")
		}
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{Answer: answer})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
