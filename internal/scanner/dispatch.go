package scanner

import (
	"context"
	"strings"

	"receiptscan/internal/domain"
	"receiptscan/internal/port"
)

// Dispatcher selects the invocation shape for a model and calls the LLM
// client, returning the raw textual response.
type Dispatcher struct {
	client port.CompletionClient
}

// NewDispatcher creates a Dispatcher over the given completion client.
func NewDispatcher(client port.CompletionClient) *Dispatcher {
	return &Dispatcher{client: client}
}

// Invoke sends the prompt to the model using its invocation style and
// extracts the first choice's content. Model identifiers outside the
// classification table are rejected, never mapped to a guessed style.
func (d *Dispatcher) Invoke(ctx context.Context, model domain.ModelName, prompt string) (string, error) {
	style, ok := model.Style()
	if !ok {
		return "", &domain.UnsupportedModelError{Model: model}
	}

	var content string
	switch style {
	case domain.ChatStyle:
		resp, err := d.client.CreateChatCompletion(ctx, port.ChatRequest{
			Model: string(model),
			Messages: []port.ChatMessage{
				{Role: "user", Content: prompt},
			},
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", domain.ErrEmptyModelResponse
		}
		content = resp.Choices[0].Message.Content

	case domain.CompletionStyle:
		resp, err := d.client.CreateCompletion(ctx, port.CompletionRequest{
			Model:  string(model),
			Prompt: prompt,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", domain.ErrEmptyModelResponse
		}
		content = resp.Choices[0].Text
	}

	if strings.TrimSpace(content) == "" {
		return "", domain.ErrEmptyModelResponse
	}
	return content, nil
}
