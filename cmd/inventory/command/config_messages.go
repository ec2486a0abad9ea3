package command

import (
	"fmt"
	"maps"

	"github.com/pixil98/go-inventory/internal/commands"
)

// MessagesConfig overrides rejection reason templates by error kind.
type MessagesConfig map[string]string

func (c MessagesConfig) merged() map[string]string {
	messages := commands.DefaultMessages()
	maps.Copy(messages, c)
	return messages
}

func (c MessagesConfig) validate() error {
	if _, err := commands.NewReasons(c.merged()); err != nil {
		return fmt.Errorf("messages: %w", err)
	}
	return nil
}

func (c MessagesConfig) buildHandler(ops commands.Operations, templates commands.TemplateLister) (*commands.Handler, error) {
	return commands.NewHandler(ops, commands.WithMessages(c.merged()), commands.WithTemplates(templates))
}
