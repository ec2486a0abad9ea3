package game

import (
	"fmt"
	"slices"
)

// EquipmentSlot is a named slot that holds at most one item. An empty
// AllowedCategories list accepts any item.
type EquipmentSlot struct {
	Id                string   `json:"id"`
	Name              string   `json:"name"`
	Icon              string   `json:"icon,omitempty"`
	AllowedCategories []string `json:"allowed_categories,omitempty"`
	Item              *Item    `json:"item"`
}

// Allows reports whether it may be placed in this slot. A nil item always fits.
func (s *EquipmentSlot) Allows(it *Item) bool {
	if it == nil || len(s.AllowedCategories) == 0 {
		return true
	}
	cat := it.Category()
	return slices.ContainsFunc(s.AllowedCategories, func(a string) bool {
		return foldCategory(a) == cat
	})
}

func (s *EquipmentSlot) Clone() *EquipmentSlot {
	if s == nil {
		return nil
	}
	c := *s
	c.AllowedCategories = slices.Clone(s.AllowedCategories)
	c.Item = s.Item.Clone()
	return &c
}

// Equipment is the ordered set of a player's named slots.
type Equipment []*EquipmentSlot

// Find returns the slot with the given id.
func (eq Equipment) Find(slotId string) (*EquipmentSlot, error) {
	for _, s := range eq {
		if s != nil && s.Id == slotId {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown equipment slot %q", ErrInvalidSlot, slotId)
}

// SlotOf returns the id of the slot holding instanceId, or "".
func (eq Equipment) SlotOf(instanceId string) string {
	for _, s := range eq {
		if s != nil && s.Item != nil && s.Item.InstanceId == instanceId {
			return s.Id
		}
	}
	return ""
}

// Items returns the held items in slot order.
func (eq Equipment) Items() []*Item {
	var out []*Item
	for _, s := range eq {
		if s != nil && s.Item != nil {
			out = append(out, s.Item)
		}
	}
	return out
}

func (eq Equipment) Clone() Equipment {
	if eq == nil {
		return nil
	}
	out := make(Equipment, len(eq))
	for i, s := range eq {
		out[i] = s.Clone()
	}
	return out
}

// DefaultEquipment returns a fresh copy of the standard slot set.
func DefaultEquipment() Equipment {
	slot := func(id, name string, allowed ...string) *EquipmentSlot {
		return &EquipmentSlot{Id: id, Name: name, AllowedCategories: allowed}
	}
	return Equipment{
		slot("masks", "Mask", "mask"),
		slot("tops", "Top", "top"),
		slot("undershirts", "Undershirt", "undershirt"),
		slot("body_armors", "Body Armor", "armor"),
		slot("legs", "Legs", "pants"),
		slot("shoes", "Shoes", "shoes", "boots"),
		slot("accessories", "Accessory", "accessory"),
		slot("bags", "Bag", "bag", "parachute"),
		slot("hats", "Hat", "hat"),
		slot("glasses", "Glasses", "glasses"),
		slot("ears", "Ears", "ear accessory"),
		slot("watches", "Watch", "watch"),
		slot("bracelets", "Bracelet", "bracelet"),
	}
}
