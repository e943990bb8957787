package scanner

import (
	"embed"
	"io/fs"

	"receiptscan/internal/domain"
)

//go:embed templates/*.twig
var templateFS embed.FS

// EmbeddedTemplates serves the prompt templates compiled into the binary.
// Names map to templates/<name>.twig.
type EmbeddedTemplates struct{}

func (EmbeddedTemplates) Load(name string) (string, error) {
	content, err := fs.ReadFile(templateFS, "templates/"+name+".twig")
	if err != nil {
		return "", domain.ErrTemplateNotFound
	}
	return string(content), nil
}
