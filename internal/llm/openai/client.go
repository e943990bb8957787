package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"receiptscan/internal/config"
	"receiptscan/internal/domain"
	"receiptscan/internal/port"
)

const apiBase = "https://api.openai.com/v1"

// Client implements port.CompletionClient against the OpenAI REST API. It
// speaks both the chat and the legacy completion endpoint; which one to use
// per model is the dispatcher's decision.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a client from config.
func NewClient(cfg *config.OpenAIConfig) *Client {
	base := cfg.Endpoint
	if base == "" {
		base = apiBase
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateChatCompletion(ctx context.Context, req port.ChatRequest) (*port.ChatResponse, error) {
	body, err := c.post(ctx, "/chat/completions", req)
	if err != nil {
		return nil, err
	}
	var resp port.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling chat response: %v", domain.ErrUpstreamCallFailed, err)
	}
	return &resp, nil
}

func (c *Client) CreateCompletion(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	body, err := c.post(ctx, "/completions", req)
	if err != nil {
		return nil, err
	}
	var resp port.CompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling completion response: %v", domain.ErrUpstreamCallFailed, err)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling openai API: %v", domain.ErrUpstreamCallFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrUpstreamCallFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("%w: openai API error (status %d): %s", domain.ErrUpstreamCallFailed, resp.StatusCode, truncate(respBody, 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, NewRateLimitError(baseErr, parseRetryAfter(resp.Header.Get("Retry-After")))
		}
		return nil, baseErr
	}
	return respBody, nil
}

func parseRetryAfter(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
