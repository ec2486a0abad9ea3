package commands

import (
	"context"
	"maps"
)

type HandlerOpt func(*Handler)

// TemplateLister lists the item template ids that can be added.
type TemplateLister interface {
	Ids(ctx context.Context) ([]string, error)
}

// WithMessages overrides the reason template for each listed error kind
func WithMessages(messages map[string]string) HandlerOpt {
	return func(h *Handler) {
		maps.Copy(h.messages, messages)
	}
}

// WithTemplates lists the available templates in the debug dump.
func WithTemplates(templates TemplateLister) HandlerOpt {
	return func(h *Handler) {
		h.templates = templates
	}
}
