package scanner

import (
	"context"

	"receiptscan/internal/domain"
	"receiptscan/internal/port"
)

const promptName = "receipt"

// DefaultModel is used when the caller does not pick one.
const DefaultModel = domain.ModelTurbo

// Scanner composes the extraction pipeline: prompt rendering, model dispatch,
// response extraction, and normalization. It is stateless between calls;
// concurrent scans are independent.
type Scanner struct {
	prompts      *PromptBuilder
	dispatcher   *Dispatcher
	defaultModel domain.ModelName
}

// Option configures a single scan call.
type Option func(*scanOptions)

type scanOptions struct {
	model domain.ModelName
}

// WithModel overrides the model for one scan.
func WithModel(model domain.ModelName) Option {
	return func(o *scanOptions) {
		o.model = model
	}
}

// New creates a Scanner. An empty defaultModel falls back to DefaultModel.
func New(store port.TemplateStore, client port.CompletionClient, defaultModel domain.ModelName) *Scanner {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	return &Scanner{
		prompts:      NewPromptBuilder(store),
		dispatcher:   NewDispatcher(client),
		defaultModel: defaultModel,
	}
}

// Scan runs the full pipeline over receipt text and returns the typed record.
// Errors from any stage propagate unchanged; Scan adds no error kinds of its
// own.
func (s *Scanner) Scan(ctx context.Context, text string, opts ...Option) (*domain.Receipt, error) {
	options := scanOptions{model: s.defaultModel}
	for _, opt := range opts {
		opt(&options)
	}

	prompt, err := s.prompts.Render(promptName, map[string]string{"context": text})
	if err != nil {
		return nil, err
	}

	raw, err := s.dispatcher.Invoke(ctx, options.model, prompt)
	if err != nil {
		return nil, err
	}

	data, err := Extract(raw)
	if err != nil {
		return nil, err
	}

	return Normalize(data)
}

// ScanMap runs Scan and returns the map projection of the result. The map
// form goes through the exact same validation as the typed form.
func (s *Scanner) ScanMap(ctx context.Context, text string, opts ...Option) (map[string]any, error) {
	receipt, err := s.Scan(ctx, text, opts...)
	if err != nil {
		return nil, err
	}
	return receipt.ToMap(), nil
}
