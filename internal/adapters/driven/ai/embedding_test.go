package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewEmbedding_Defaults(t *testing.T) {
	svc, err := NewEmbedding("", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Model() != "BAAI/bge-small-en" {
		t.Errorf("expected default model, got %s", svc.Model())
	}
	if svc.Dimensions() != 384 {
		t.Errorf("expected 384 dimensions, got %d", svc.Dimensions())
	}
}

func TestEmbedding_Dimensions(t *testing.T) {
	testCases := []struct {
		model      string
		dimensions int
	}{
		{"text-embedding-3-small", 1536},
		{"text-embedding-3-large", 3072},
		{"BAAI/bge-small-en", 384},
		{"BAAI/bge-base-en", 768},
		{"unknown-model", 384},
	}

	for _, tc := range testCases {
		t.Run(tc.model, func(t *testing.T) {
			svc, err := NewEmbedding("key", tc.model, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.Dimensions() != tc.dimensions {
				t.Errorf("expected %d dimensions, got %d", tc.dimensions, svc.Dimensions())
			}
		})
	}
}

func TestEmbedding_EmbedPreservesInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		// Return data out of order; the index field must restore it.
		resp := map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0.2, 0.2}},
				{"index": 0, "embedding": []float32{0.1, 0.1}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc, _ := NewEmbedding("key", "BAAI/bge-small-en", server.URL)
	out, err := svc.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(out))
	}
	if out[0][0] != 0.1 || out[1][0] != 0.2 {
		t.Errorf("embeddings not restored to input order: %v", out)
	}
}

func TestEmbedding_EmbedEmptyInput(t *testing.T) {
	svc, _ := NewEmbedding("key", "", "")
	out, err := svc.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}

func TestEmbedding_EmbedMissingVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{0.1}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc, _ := NewEmbedding("key", "", server.URL)
	if _, err := svc.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("expected error when a vector is missing")
	}
}

func TestEmbedding_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "bad input", "type": "invalid_request"},
		})
	}))
	defer server.Close()

	svc, _ := NewEmbedding("key", "", server.URL)
	if _, err := svc.EmbedQuery(context.Background(), "q"); err == nil {
		t.Error("expected error for API error response")
	}
}
