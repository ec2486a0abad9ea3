package commands

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/game"
)

// templateFuncs are the sprig helpers available to reason templates.
var templateFuncs = sprig.TxtFuncMap()

// ReasonContext is what a reason template can see.
type ReasonContext struct {
	Request string // inbound request type, e.g. "inventory:split-items"
	Kind    string
	Detail  string // the underlying error text, not meant for players
}

// DefaultMessages returns the stock reason template for every error kind.
func DefaultMessages() map[string]string {
	return map[string]string{
		game.KindNotFound:              "That item is no longer there.",
		game.KindInvalidSlot:           "That slot does not exist.",
		game.KindInvalidQuantity:       "That quantity is not valid.",
		game.KindInsufficientQuantity:  "You do not have enough of that item.",
		game.KindCapacityExceeded:      "You cannot carry any more.",
		game.KindTypeMismatch:          "That item does not fit in that slot.",
		game.KindNotStackable:          "Those items cannot be stacked.",
		game.KindEmptySlot:             "There is nothing in that slot.",
		game.KindConservationViolation: "Your inventory did not add up, so the change was not applied.",
		game.KindPersistence:           "Your inventory could not be saved. Please try again.",
		game.KindInternal:              `Something went wrong with {{ .Request | trimPrefix "inventory:" | replace "-" " " }}.`,
	}
}

// Reasons renders the player-facing text for an error kind.
type Reasons struct {
	tmpls map[string]*template.Template
}

// NewReasons parses every message up front so a bad template fails at
// startup instead of on the first rejection.
func NewReasons(messages map[string]string) (*Reasons, error) {
	el := errors.NewErrorList()
	r := &Reasons{tmpls: make(map[string]*template.Template, len(messages))}
	for kind, msg := range messages {
		tmpl, err := template.New(kind).Funcs(templateFuncs).Parse(msg)
		if err != nil {
			el.Add(fmt.Errorf("message %q: %w", kind, err))
			continue
		}
		r.tmpls[kind] = tmpl
	}
	if _, ok := r.tmpls[game.KindInternal]; !ok && el.Err() == nil {
		el.Add(fmt.Errorf("message %q is required", game.KindInternal))
	}
	if err := el.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// Render expands the template for kind, falling back to the internal
// message when kind has none or its template fails.
func (r *Reasons) Render(kind string, data ReasonContext) string {
	for _, k := range []string{kind, game.KindInternal} {
		tmpl, ok := r.tmpls[k]
		if !ok {
			continue
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			continue
		}
		return strings.TrimSpace(buf.String())
	}
	return "Something went wrong."
}
