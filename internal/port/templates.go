package port

// TemplateStore loads prompt template source by name. Load returns
// domain.ErrTemplateNotFound for unknown names.
type TemplateStore interface {
	Load(name string) (string, error)
}
