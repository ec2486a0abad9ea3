package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Template is the catalog definition of an item type. Instances are stamped
// out of a template with NewItem. Template IDs follow the convention
// <category>_<name> (e.g., "weapon_pistol").
type Template struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`

	// Weight is the weight of a single unit
	Weight float64 `json:"weight"`

	// MaxStack is the largest quantity a single instance may hold
	MaxStack int `json:"max_stack"`

	// UseEffect names the effect dispatched when the item is used
	UseEffect string `json:"use_effect,omitempty"`

	// Consumable items lose one unit per use
	Consumable bool `json:"consumable,omitempty"`

	Attributes Attributes `json:"attributes,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (t *Template) Validate() error {
	el := errors.NewErrorList()
	if t.Name == "" {
		el.Add(fmt.Errorf("template name is required"))
	}
	if t.Weight < 0 {
		el.Add(fmt.Errorf("template weight must not be negative"))
	}
	if t.MaxStack < 1 {
		el.Add(fmt.Errorf("template max stack must be at least 1"))
	}
	el.Add(t.Attributes.Validate())
	return el.Err()
}

// NewItem builds an instance of the template. The quantity is not checked.
func (t *Template) NewItem(templateId, instanceId string, quantity int) *Item {
	return &Item{
		TemplateId:  templateId,
		InstanceId:  instanceId,
		Name:        t.Name,
		Description: t.Description,
		Icon:        t.Icon,
		UnitWeight:  t.Weight,
		Quantity:    quantity,
		MaxStack:    t.MaxStack,
		UseEffect:   t.UseEffect,
		Consumable:  t.Consumable,
		Attributes:  t.Attributes.Clone(),
	}
}

// Item is one stack of an item type held in a slot.
type Item struct {
	TemplateId  string `json:"template_id"`
	InstanceId  string `json:"instance_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`

	// UnitWeight is the weight of one unit; see Weight for the stack total
	UnitWeight float64 `json:"weight"`

	Quantity   int        `json:"quantity"`
	MaxStack   int        `json:"max_stack"`
	UseEffect  string     `json:"use_effect,omitempty"`
	Consumable bool       `json:"consumable,omitempty"`
	Attributes Attributes `json:"attributes,omitempty"`
}

// Weight returns the weight of the whole stack.
func (i *Item) Weight() float64 {
	return i.UnitWeight * float64(i.Quantity)
}

// Room returns how many more units fit in this stack.
func (i *Item) Room() int {
	return max(i.MaxStack-i.Quantity, 0)
}

// Category returns the case-folded category tag.
func (i *Item) Category() string {
	return i.Attributes.Category()
}

// ArmorRating returns the armor_rating attribute, or 0 if it is absent.
func (i *Item) ArmorRating() float64 {
	v, _ := i.Attributes.Number(AttrArmorRating)
	return v
}

// SameTemplate reports whether two distinct instances could be merged.
func (i *Item) SameTemplate(o *Item) bool {
	return o != nil && i.TemplateId == o.TemplateId && i.InstanceId != o.InstanceId
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	c.Attributes = i.Attributes.Clone()
	return &c
}

// Validate checks the per-instance invariants.
func (i *Item) Validate() error {
	el := errors.NewErrorList()
	if i.TemplateId == "" {
		el.Add(fmt.Errorf("item template id is required"))
	}
	if i.InstanceId == "" {
		el.Add(fmt.Errorf("item %s: instance id is required", i.TemplateId))
	}
	if i.UnitWeight < 0 {
		el.Add(fmt.Errorf("item %s: weight must not be negative", i.InstanceId))
	}
	if i.MaxStack < 1 {
		el.Add(fmt.Errorf("item %s: max stack must be at least 1", i.InstanceId))
	}
	if i.Quantity < 1 || i.Quantity > i.MaxStack {
		el.Add(fmt.Errorf("item %s: quantity %d outside [1, %d]", i.InstanceId, i.Quantity, i.MaxStack))
	}
	return el.Err()
}
