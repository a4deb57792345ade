// Package translate implements the client for the external text translation
// provider. Translation is best-effort: callers fall back to the source text
// when the provider fails.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds every translation request.
const DefaultTimeout = 10 * time.Second

// Provider translates text into a target language.
type Provider interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Config holds translation client configuration.
type Config struct {
	BaseURL    string
	SourceLang string
	Timeout    time.Duration
}

// Client calls an HTTP translation endpoint. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sourceLang string
}

type translateRequest struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	source := cfg.SourceLang
	if source == "" {
		source = "en"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		sourceLang: source,
	}
}

// Translate translates text into targetLang.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Text:   text,
		Source: c.sourceLang,
		Target: targetLang,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("translate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: unexpected status %s", resp.Status)
	}

	var body translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("translate: decode response: %w", err)
	}
	return body.TranslatedText, nil
}
