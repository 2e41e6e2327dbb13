package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultGroqBaseURL is the OpenAI-compatible Groq endpoint
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient calls the Groq chat completions API. It is credential-free;
// the API key is supplied per call so the failover completer can rotate
// keys over a single client.
type GroqClient struct {
	baseURL string
	client  *http.Client
}

// NewGroqClient creates a new Groq chat client
func NewGroqClient(baseURL string, timeout time.Duration) *GroqClient {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GroqClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// chatMessage is one role-tagged message
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat selects plain text or JSON object output
type responseFormat struct {
	Type string `json:"type"`
}

// chatCompletionRequest is the request body for the chat completions API
type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// chatCompletionResponse is the response from the chat completions API
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Attempt performs one completion call with the given credential and model.
// Any failure (auth, rate limit, network, malformed response) is returned
// as an error for the failover loop to absorb.
func (c *GroqClient) Attempt(ctx context.Context, apiKey, model, system, user string, maxTokens int, jsonMode bool) (string, error) {
	reqBody := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: maxTokens,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("groq API error: %s (type: %s, code: %s)",
			completion.Error.Message, completion.Error.Type, completion.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq API returned status %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("groq API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// Close releases idle connections
func (c *GroqClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
