package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/campuskit/askbot-core/internal/core/ports/driven"
)

// Ensure Translator implements the Translator port
var _ driven.Translator = (*Translator)(nil)

// DefaultTranslateBaseURL is the unauthenticated Google translate endpoint
const DefaultTranslateBaseURL = "https://translate.googleapis.com"

const urduSystemPrompt = `You are an expert agent and your task is to translate the provided text into proper, corrected urdu without adding irrelevant text. Respond with a single JSON object in this exact format:
{"text": "the translated urdu text"}`

// TranslateClient calls a Google-translate-compatible machine translation
// endpoint. Used for urdu-to-english question rewriting before retrieval.
type TranslateClient struct {
	baseURL string
	client  *http.Client
}

// NewTranslateClient creates a machine translation client
func NewTranslateClient(baseURL string, timeout time.Duration) *TranslateClient {
	if baseURL == "" {
		baseURL = DefaultTranslateBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TranslateClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Translate converts text from source to target language code
func (c *TranslateClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, "GET",
		c.baseURL+"/translate_a/single?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return parseTranslatePayload(body)
}

// parseTranslatePayload extracts the translated segments from the nested
// array payload: [[["segment","original",...],...],...]
func parseTranslatePayload(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translation payload: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("translation response contained no text")
	}
	return sb.String(), nil
}

// Close releases idle connections
func (c *TranslateClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Translator bridges both translation directions: machine translation for
// urdu-to-english (retrieval path) and the chat completer's JSON mode for
// english-to-urdu (reply path).
type Translator struct {
	mt        *TranslateClient
	completer driven.ChatCompleter
}

// NewTranslator creates a Translator over both backends
func NewTranslator(mt *TranslateClient, completer driven.ChatCompleter) *Translator {
	return &Translator{mt: mt, completer: completer}
}

// ToEnglish translates urdu text to english via machine translation
func (t *Translator) ToEnglish(ctx context.Context, text string) (string, error) {
	return t.mt.Translate(ctx, text, "ur", "en")
}

// ToUrdu translates english text to urdu via the language model
func (t *Translator) ToUrdu(ctx context.Context, text string) (string, error) {
	raw, err := t.completer.Complete(ctx, driven.ChatRequest{
		System:    urduSystemPrompt,
		User:      "Translate the following text: " + text,
		MaxTokens: 512,
		JSONMode:  true,
	})
	if err != nil {
		return "", err
	}

	value, err := jsonField(raw, "text")
	if err != nil {
		return "", fmt.Errorf("parse translation response: %w", err)
	}
	return value, nil
}
