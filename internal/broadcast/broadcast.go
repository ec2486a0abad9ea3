package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/game"
)

// Target selects which container snapshots an update carries.
type Target uint8

const (
	Items Target = 1 << iota
	Toolbar
	Equipment

	All = Items | Toolbar | Equipment
)

func (t Target) Has(o Target) bool {
	return t&o != 0
}

// Broadcaster turns a character document into snapshot events and hands
// them to a Publisher.
type Broadcaster struct {
	pub          game.Publisher
	itemSlots    int
	toolbarSlots int
}

// New creates a Broadcaster that pads inventory snapshots to itemSlots and
// toolbar snapshots to toolbarSlots.
func New(pub game.Publisher, itemSlots, toolbarSlots int) *Broadcaster {
	return &Broadcaster{
		pub:          pub,
		itemSlots:    itemSlots,
		toolbarSlots: toolbarSlots,
	}
}

// Envelopes builds the snapshot events for the selected containers, in
// items, toolbar, equipment order.
func (b *Broadcaster) Envelopes(c *game.Character, targets Target) []game.Envelope {
	var out []game.Envelope
	if targets.Has(Items) {
		out = append(out, game.Envelope{Type: game.EventUpdateItems, Payload: c.Items.Slots(b.itemSlots)})
	}
	if targets.Has(Toolbar) {
		out = append(out, game.Envelope{Type: game.EventUpdateToolbar, Payload: c.Toolbar.Slots(b.toolbarSlots)})
	}
	if targets.Has(Equipment) {
		eq := c.Equipment
		if eq == nil {
			eq = game.Equipment{}
		}
		out = append(out, game.Envelope{Type: game.EventUpdateEquipment, Payload: eq})
	}
	return out
}

// Send publishes a snapshot of each selected container to the player. Every
// snapshot is attempted; the returned error lists the ones that failed.
func (b *Broadcaster) Send(ctx context.Context, playerId string, c *game.Character, targets Target) error {
	el := errors.NewErrorList()
	for _, env := range b.Envelopes(c, targets) {
		data, err := json.Marshal(env)
		if err != nil {
			el.Add(fmt.Errorf("encoding %s: %w", env.Type, err))
			continue
		}
		if err := b.pub.PublishToPlayer(playerId, data); err != nil {
			el.Add(fmt.Errorf("publishing %s: %w", env.Type, err))
			continue
		}
		slog.DebugContext(ctx, "snapshot published", "player", playerId, "type", env.Type)
	}
	return el.Err()
}

// Effect publishes a used item to whichever system implements its effect.
func (b *Broadcaster) Effect(ctx context.Context, playerId string, it *game.Item) error {
	if it == nil || it.UseEffect == "" {
		return nil
	}
	data, err := json.Marshal(game.EffectEvent{PlayerId: playerId, Item: it})
	if err != nil {
		return fmt.Errorf("encoding effect %s: %w", it.UseEffect, err)
	}
	if err := b.pub.PublishEffect(it.UseEffect, data); err != nil {
		return fmt.Errorf("publishing effect %s: %w", it.UseEffect, err)
	}
	slog.DebugContext(ctx, "use effect published", "player", playerId, "effect", it.UseEffect)
	return nil
}
