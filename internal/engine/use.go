package engine

import (
	"fmt"

	"github.com/pixil98/go-inventory/internal/game"
)

// Use validates that the player holds the item in the inventory or toolbar.
// A consumable item loses one unit and its slot is freed when it runs out.
// The returned copy reflects the item as it was when used, so the caller can
// dispatch its use effect.
func (e *Engine) Use(c *game.Character, instanceId string) (*game.Item, error) {
	var used *game.Item
	err := e.apply(c, func(w *game.Character) (delta, error) {
		container := w.Items
		idx := container.IndexOf(instanceId)
		if idx < 0 {
			container = w.Toolbar
			idx = container.IndexOf(instanceId)
		}
		if idx < 0 {
			if slotId := w.Equipment.SlotOf(instanceId); slotId != "" {
				return delta{}, fmt.Errorf("%w: item %s is equipped in %s", game.ErrNotFound, instanceId, slotId)
			}
			return delta{}, fmt.Errorf("%w: item %s is not in the inventory or toolbar", game.ErrNotFound, instanceId)
		}

		it := container[idx]
		used = it.Clone()
		if !it.Consumable {
			return delta{}, nil
		}

		it.Quantity--
		if it.Quantity == 0 {
			container[idx] = nil
		}
		return delta{qty: -1, weight: -it.UnitWeight}, nil
	})
	if err != nil {
		return nil, err
	}
	return used, nil
}
