package engine

import (
	"fmt"

	"github.com/pixil98/go-inventory/internal/game"
)

// InitToolbar gives the character an empty toolbar if it has none. It
// reports whether anything changed.
func (e *Engine) InitToolbar(c *game.Character) bool {
	return c.Toolbar.Grow(e.limits.ToolbarSlots)
}

// AssignToToolbar pins an item to a toolbar slot. An item coming from the
// inventory trades places with whatever held the slot; an item already on
// the toolbar swaps position.
func (e *Engine) AssignToToolbar(c *game.Character, instanceId string, slot int) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		w.Toolbar.Grow(e.limits.ToolbarSlots)

		displaced, err := w.Toolbar.Get(slot)
		if err != nil {
			return delta{}, err
		}

		if idx := w.Items.IndexOf(instanceId); idx >= 0 {
			w.Toolbar[slot] = w.Items[idx]
			w.Items[idx] = displaced
			return delta{}, nil
		}

		if from := w.Toolbar.IndexOf(instanceId); from >= 0 {
			return delta{}, w.Toolbar.Swap(from, slot)
		}

		return delta{}, fmt.Errorf("%w: item %s is not in the inventory or toolbar", game.ErrNotFound, instanceId)
	})
}

// RemoveFromToolbar returns the item in a toolbar slot to the inventory.
func (e *Engine) RemoveFromToolbar(c *game.Character, slot int) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		w.Toolbar.Grow(e.limits.ToolbarSlots)

		it, err := w.Toolbar.Get(slot)
		if err != nil {
			return delta{}, err
		}
		if it == nil {
			return delta{}, fmt.Errorf("%w: toolbar slot %d", game.ErrEmptySlot, slot)
		}

		if err := placeInInventory(w, it); err != nil {
			return delta{}, err
		}
		w.Toolbar[slot] = nil
		return delta{}, nil
	})
}

// SwapToolbar exchanges two toolbar slots.
func (e *Engine) SwapToolbar(c *game.Character, a, b int) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		w.Toolbar.Grow(e.limits.ToolbarSlots)
		return delta{}, w.Toolbar.Swap(a, b)
	})
}
