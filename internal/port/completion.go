package port

import "context"

// ChatMessage is a single role-tagged message in a chat-style request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the chat-style invocation shape.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatChoice is one candidate answer from a chat endpoint.
type ChatChoice struct {
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatResponse is the decoded chat endpoint reply.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// CompletionRequest is the legacy single-prompt invocation shape.
type CompletionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// CompletionChoice is one candidate answer from a completion endpoint.
type CompletionChoice struct {
	Text string `json:"text"`
}

// CompletionResponse is the decoded completion endpoint reply.
type CompletionResponse struct {
	Choices []CompletionChoice `json:"choices"`
}

// CompletionClient abstracts the LLM HTTP client. Both call shapes return a
// choices sequence; retry policy, if any, lives behind this boundary.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	CreateCompletion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
