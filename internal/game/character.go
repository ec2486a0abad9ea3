package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/storage"
)

// ToolbarSlots is the fixed number of toolbar hotkeys.
const ToolbarSlots = 5

// Character is the per-player document: everything a player carries and
// where it sits. Ext holds fields owned by other systems and is passed
// through untouched.
type Character struct {
	Items Container `json:"items"`

	// Toolbar and Equipment stay empty until the session initialises them
	Toolbar   Container `json:"toolbar,omitempty"`
	Equipment Equipment `json:"equipment,omitempty"`

	Rev int64                  `json:"revision"`
	Ext storage.ExtensionState `json:"ext,omitempty"`
}

// NewCharacter returns an empty document with the given inventory size.
func NewCharacter(slots int) *Character {
	return &Character{Items: NewContainer(slots)}
}

func (c *Character) Revision() int64 {
	return c.Rev
}

func (c *Character) SetRevision(rev int64) {
	c.Rev = rev
}

// Clone returns a deep copy.
func (c *Character) Clone() *Character {
	return &Character{
		Items:     c.Items.Clone(),
		Toolbar:   c.Toolbar.Clone(),
		Equipment: c.Equipment.Clone(),
		Rev:       c.Rev,
		Ext:       c.Ext.Clone(),
	}
}

// All returns every held item across inventory, toolbar and equipment.
func (c *Character) All() []*Item {
	var out []*Item
	out = append(out, c.Items.Items()...)
	out = append(out, c.Toolbar.Items()...)
	out = append(out, c.Equipment.Items()...)
	return out
}

// Totals returns the total quantity and total weight across all containers.
func (c *Character) Totals() (int, float64) {
	var qty int
	var weight float64
	for _, it := range c.All() {
		qty += it.Quantity
		weight += it.Weight()
	}
	return qty, weight
}

// Validate satisfies storage.ValidatingSpec. It checks every held item and
// that no instance id appears twice.
func (c *Character) Validate() error {
	el := errors.NewErrorList()
	seen := map[string]bool{}
	for _, it := range c.All() {
		el.Add(it.Validate())
		if it.InstanceId == "" {
			continue
		}
		if seen[it.InstanceId] {
			el.Add(fmt.Errorf("instance id %s is held more than once", it.InstanceId))
		}
		seen[it.InstanceId] = true
	}

	slots := map[string]bool{}
	for _, s := range c.Equipment {
		if s == nil {
			el.Add(fmt.Errorf("equipment slot is nil"))
			continue
		}
		if slots[s.Id] {
			el.Add(fmt.Errorf("equipment slot %q is defined more than once", s.Id))
		}
		slots[s.Id] = true
	}
	return el.Err()
}
