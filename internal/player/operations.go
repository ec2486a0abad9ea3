package player

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-inventory/internal/broadcast"
	"github.com/pixil98/go-inventory/internal/engine"
	"github.com/pixil98/go-inventory/internal/game"
)

// AddItem grants quantity units of a catalog item to the player.
func (m *PlayerManager) AddItem(ctx context.Context, playerId, templateId string, quantity int) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items, func(ctx context.Context, c *game.Character) error {
		tmpl, err := m.catalog.GetBaseItem(ctx, templateId)
		if err != nil {
			return err
		}
		return m.engine.Add(c, templateId, tmpl, quantity)
	})
}

// RemoveItem takes quantity units from an instance or, failing that, from
// every stack of a template.
func (m *PlayerManager) RemoveItem(ctx context.Context, playerId, ref string, quantity int) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items, func(_ context.Context, c *game.Character) error {
		return m.engine.Remove(c, ref, quantity)
	})
}

func (m *PlayerManager) StackItems(ctx context.Context, playerId, targetId, sourceId string) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items, func(_ context.Context, c *game.Character) error {
		return m.engine.Stack(c, targetId, sourceId)
	})
}

// SplitItems moves quantity units of an instance into a new stack and
// returns the new stack.
func (m *PlayerManager) SplitItems(ctx context.Context, playerId, instanceId string, quantity int) (*game.Item, error) {
	var created *game.Item
	_, err := m.mutate(ctx, playerId, broadcast.Items, func(_ context.Context, c *game.Character) error {
		var err error
		created, err = m.engine.Split(c, instanceId, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (m *PlayerManager) SwapItems(ctx context.Context, playerId string, a, b int) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items, func(_ context.Context, c *game.Character) error {
		return m.engine.Swap(c, a, b)
	})
}

// UseItem uses an inventory or toolbar item and dispatches its use effect.
// The effect is only published once the use has been persisted.
func (m *PlayerManager) UseItem(ctx context.Context, playerId, instanceId string) (*game.Item, error) {
	var used *game.Item
	_, err := m.mutate(ctx, playerId, broadcast.Items|broadcast.Toolbar, func(_ context.Context, c *game.Character) error {
		var err error
		used, err = m.engine.Use(c, instanceId)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := m.bc.Effect(ctx, playerId, used); err != nil {
		slog.WarnContext(ctx, "dispatching use effect", "player", playerId, "item", instanceId, "error", err)
	}
	return used, nil
}

func (m *PlayerManager) ClearInventory(ctx context.Context, playerId string) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items, func(_ context.Context, c *game.Character) error {
		return m.engine.Clear(c)
	})
}

func (m *PlayerManager) AssignToToolbar(ctx context.Context, playerId, instanceId string, slot int) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items|broadcast.Toolbar, func(_ context.Context, c *game.Character) error {
		return m.engine.AssignToToolbar(c, instanceId, slot)
	})
}

func (m *PlayerManager) RemoveFromToolbar(ctx context.Context, playerId string, slot int) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items|broadcast.Toolbar, func(_ context.Context, c *game.Character) error {
		return m.engine.RemoveFromToolbar(c, slot)
	})
}

func (m *PlayerManager) SwapToolbarItems(ctx context.Context, playerId string, a, b int) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Toolbar, func(_ context.Context, c *game.Character) error {
		return m.engine.SwapToolbar(c, a, b)
	})
}

func (m *PlayerManager) EquipItem(ctx context.Context, playerId, instanceId, slotId string) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items|broadcast.Equipment, func(_ context.Context, c *game.Character) error {
		return m.engine.Equip(c, instanceId, slotId)
	})
}

func (m *PlayerManager) UnequipItem(ctx context.Context, playerId, slotId string) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Items|broadcast.Equipment, func(_ context.Context, c *game.Character) error {
		return m.engine.Unequip(c, slotId)
	})
}

func (m *PlayerManager) SwapEquipment(ctx context.Context, playerId, a, b string) (*game.Character, error) {
	return m.mutate(ctx, playerId, broadcast.Equipment, func(_ context.Context, c *game.Character) error {
		return m.engine.SwapEquipment(c, a, b)
	})
}

// WeightStatus reports how loaded down the player currently is.
func (m *PlayerManager) WeightStatus(ctx context.Context, playerId string) (engine.WeightStatus, error) {
	c, err := m.Snapshot(ctx, playerId)
	if err != nil {
		return engine.WeightStatus{}, err
	}
	return m.engine.WeightStatus(c), nil
}

// Engine exposes the rules the manager applies, for read-only queries.
func (m *PlayerManager) Engine() *engine.Engine {
	return m.engine
}
