package engine

import (
	"fmt"

	"github.com/pixil98/go-inventory/internal/game"
)

// InitEquipment gives the character the default slot set if it has no
// equipment. It reports whether anything changed.
func (e *Engine) InitEquipment(c *game.Character) bool {
	if len(c.Equipment) > 0 {
		return false
	}
	c.Equipment = game.DefaultEquipment()
	return true
}

func ensureEquipment(w *game.Character) {
	if len(w.Equipment) == 0 {
		w.Equipment = game.DefaultEquipment()
	}
}

// Equip moves an inventory item into a named slot. Whatever the slot held
// goes back to the inventory slot the new item came from.
func (e *Engine) Equip(c *game.Character, instanceId, slotId string) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		ensureEquipment(w)

		slot, err := w.Equipment.Find(slotId)
		if err != nil {
			return delta{}, err
		}

		idx := w.Items.IndexOf(instanceId)
		if idx < 0 {
			return delta{}, fmt.Errorf("%w: item %s is not in the inventory", game.ErrNotFound, instanceId)
		}
		it := w.Items[idx]

		if !slot.Allows(it) {
			return delta{}, fmt.Errorf("%w: %s (%q) cannot go in %s", game.ErrTypeMismatch, it.InstanceId, it.Category(), slot.Id)
		}

		w.Items[idx] = slot.Item
		slot.Item = it
		return delta{}, nil
	})
}

// Unequip returns the item in a named slot to the inventory.
func (e *Engine) Unequip(c *game.Character, slotId string) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		ensureEquipment(w)

		slot, err := w.Equipment.Find(slotId)
		if err != nil {
			return delta{}, err
		}
		if slot.Item == nil {
			return delta{}, fmt.Errorf("%w: equipment slot %s", game.ErrEmptySlot, slot.Id)
		}

		if err := placeInInventory(w, slot.Item); err != nil {
			return delta{}, err
		}
		slot.Item = nil
		return delta{}, nil
	})
}

// SwapEquipment exchanges the items of two slots if each item is allowed in
// the other slot.
func (e *Engine) SwapEquipment(c *game.Character, a, b string) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		ensureEquipment(w)

		from, err := w.Equipment.Find(a)
		if err != nil {
			return delta{}, err
		}
		to, err := w.Equipment.Find(b)
		if err != nil {
			return delta{}, err
		}

		if from.Item == nil && to.Item == nil {
			return delta{}, fmt.Errorf("%w: %s and %s are both empty", game.ErrEmptySlot, a, b)
		}
		if !to.Allows(from.Item) {
			return delta{}, fmt.Errorf("%w: %s cannot go in %s", game.ErrTypeMismatch, from.Item.InstanceId, to.Id)
		}
		if !from.Allows(to.Item) {
			return delta{}, fmt.Errorf("%w: %s cannot go in %s", game.ErrTypeMismatch, to.Item.InstanceId, from.Id)
		}

		from.Item, to.Item = to.Item, from.Item
		return delta{}, nil
	})
}

// ArmorRating sums the armor_rating attribute of every equipped item.
func (e *Engine) ArmorRating(c *game.Character) float64 {
	var total float64
	for _, it := range c.Equipment.Items() {
		total += it.ArmorRating()
	}
	return total
}

// EquippedWeight sums the weight of every equipped item.
func (e *Engine) EquippedWeight(c *game.Character) float64 {
	var total float64
	for _, it := range c.Equipment.Items() {
		total += it.Weight()
	}
	return total
}
