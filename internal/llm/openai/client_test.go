package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptscan/internal/config"
	"receiptscan/internal/domain"
	"receiptscan/internal/llm/openai"
	"receiptscan/internal/port"
)

func newTestClient(serverURL string) *openai.Client {
	return openai.NewClient(&config.OpenAIConfig{
		APIKey:      "test-key",
		Endpoint:    serverURL,
		TimeoutSecs: 30,
	})
}

func TestClient_CreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-3.5-turbo", reqBody["model"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Equal(t, "extract this", msg["content"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"role": "assistant", "content": `{"ok":true}`},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	resp, err := c.CreateChatCompletion(context.Background(), port.ChatRequest{
		Model:    "gpt-3.5-turbo",
		Messages: []port.ChatMessage{{Role: "user", Content: "extract this"}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, `{"ok":true}`, resp.Choices[0].Message.Content)
}

func TestClient_CreateCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/completions", r.URL.Path)

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-3.5-turbo-instruct", reqBody["model"])
		assert.Equal(t, "extract this", reqBody["prompt"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"text": `{"ok":true}`},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	resp, err := c.CreateCompletion(context.Background(), port.CompletionRequest{
		Model:  "gpt-3.5-turbo-instruct",
		Prompt: "extract this",
	})

	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, `{"ok":true}`, resp.Choices[0].Text)
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "server exploded"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.CreateChatCompletion(context.Background(), port.ChatRequest{Model: "gpt-3.5-turbo"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamCallFailed)
	assert.Contains(t, err.Error(), "server exploded")
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.CreateChatCompletion(context.Background(), port.ChatRequest{Model: "gpt-3.5-turbo"})

	var rateLimited *openai.RateLimitError
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, 7*time.Second, rateLimited.RetryAfter)
	assert.ErrorIs(t, err, domain.ErrUpstreamCallFailed)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := newTestClient(server.URL)
	_, err := c.CreateCompletion(context.Background(), port.CompletionRequest{Model: "gpt-3.5-turbo-instruct"})

	assert.ErrorIs(t, err, domain.ErrUpstreamCallFailed)
}
