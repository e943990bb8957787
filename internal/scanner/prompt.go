package scanner

import (
	"fmt"
	"strings"

	"github.com/tyler-sommer/stick"

	"receiptscan/internal/domain"
	"receiptscan/internal/port"
)

// PromptBuilder renders named Twig templates with a context map.
type PromptBuilder struct {
	store port.TemplateStore
	env   *stick.Env
}

// NewPromptBuilder creates a PromptBuilder backed by the given template store.
func NewPromptBuilder(store port.TemplateStore) *PromptBuilder {
	return &PromptBuilder{
		store: store,
		env:   stick.New(nil),
	}
}

// Render loads the named template and substitutes every {{ key }} placeholder
// from the context. A placeholder whose key is absent from the context is an
// error; the prompt must never silently contain an empty value.
func (p *PromptBuilder) Render(name string, context map[string]string) (string, error) {
	source, err := p.store.Load(name)
	if err != nil {
		return "", err
	}

	for _, key := range placeholderKeys(source) {
		if _, ok := context[key]; !ok {
			return "", &domain.MissingContextKeyError{Key: key}
		}
	}

	vars := make(map[string]stick.Value, len(context))
	for k, v := range context {
		vars[k] = v
	}

	var out strings.Builder
	if err := p.env.Execute(source, &out, vars); err != nil {
		return "", fmt.Errorf("rendering template %q: %w", name, err)
	}
	return out.String(), nil
}

// placeholderKeys returns the variable names referenced by {{ ... }}
// placeholders in the template source.
func placeholderKeys(source string) []string {
	var keys []string
	rest := source
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			return keys
		}
		rest = rest[start+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			return keys
		}
		if name := leadingIdent(strings.TrimSpace(rest[:end])); name != "" {
			keys = append(keys, name)
		}
		rest = rest[end+2:]
	}
}

func leadingIdent(expr string) string {
	for i, r := range expr {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' || i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return expr[:i]
	}
	return expr
}
