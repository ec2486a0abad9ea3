package engine

import (
	"fmt"

	"github.com/pixil98/go-inventory/internal/game"
)

// Add puts quantity units of the template into the inventory. It tops up
// the first partial stack of the same template and places the remainder
// according to the stack policy.
func (e *Engine) Add(c *game.Character, templateId string, tmpl *game.Template, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: cannot add %d", game.ErrInvalidQuantity, quantity)
	}
	if tmpl == nil {
		return fmt.Errorf("%w: item template %q", game.ErrNotFound, templateId)
	}
	if tmpl.MaxStack < 1 {
		return fmt.Errorf("%w: template %q has no stack capacity", game.ErrInvalidQuantity, templateId)
	}

	return e.apply(c, func(w *game.Character) (delta, error) {
		// Topped-up units weigh what their stack weighs, which can differ
		// from the template after a catalog update.
		var added float64
		remaining := quantity
		for _, it := range w.Items.Items() {
			if remaining == 0 {
				break
			}
			if it.TemplateId != templateId || it.Room() == 0 {
				continue
			}
			n := min(it.Room(), remaining)
			it.Quantity += n
			added += it.UnitWeight * float64(n)
			remaining -= n
			if e.limits.StackPolicy != StackPolicyChunk {
				break
			}
		}

		if remaining > tmpl.MaxStack && e.limits.StackPolicy != StackPolicyChunk {
			return delta{}, fmt.Errorf("%w: %d exceeds a single stack of %d", game.ErrInvalidQuantity, remaining, tmpl.MaxStack)
		}
		added += tmpl.Weight * float64(remaining)

		_, carried := c.Totals()
		if carried+added > e.limits.MaxWeight {
			return delta{}, fmt.Errorf("%w: %g + %g exceeds max weight %g", game.ErrCapacityExceeded, carried, added, e.limits.MaxWeight)
		}

		for remaining > 0 {
			n := min(remaining, tmpl.MaxStack)
			if err := placeInInventory(w, tmpl.NewItem(templateId, e.newId(), n)); err != nil {
				return delta{}, err
			}
			remaining -= n
		}

		return delta{qty: quantity, weight: added}, nil
	})
}

// Remove takes quantity units out of the inventory. If ref names an instance
// only that stack is drawn from; otherwise ref is a template id and stacks
// are consumed in slot order. Nothing is removed unless the full quantity is
// available.
func (e *Engine) Remove(c *game.Character, ref string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: cannot remove %d", game.ErrInvalidQuantity, quantity)
	}

	return e.apply(c, func(w *game.Character) (delta, error) {
		var stacks []int
		if idx := w.Items.IndexOf(ref); idx >= 0 {
			stacks = []int{idx}
		} else {
			for i, it := range w.Items {
				if it != nil && it.TemplateId == ref {
					stacks = append(stacks, i)
				}
			}
		}
		if len(stacks) == 0 {
			return delta{}, fmt.Errorf("%w: no item %q in inventory", game.ErrNotFound, ref)
		}

		var available int
		for _, i := range stacks {
			available += w.Items[i].Quantity
		}
		if available < quantity {
			return delta{}, fmt.Errorf("%w: have %d of %q, need %d", game.ErrInsufficientQuantity, available, ref, quantity)
		}

		d := delta{qty: -quantity}
		remaining := quantity
		for _, i := range stacks {
			if remaining == 0 {
				break
			}
			it := w.Items[i]
			n := min(it.Quantity, remaining)
			d.weight -= it.UnitWeight * float64(n)
			it.Quantity -= n
			remaining -= n
			if it.Quantity == 0 {
				w.Items[i] = nil
			}
		}

		return d, nil
	})
}

// Stack moves as many units as fit from source onto target.
func (e *Engine) Stack(c *game.Character, targetId, sourceId string) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		ti := w.Items.IndexOf(targetId)
		if ti < 0 {
			return delta{}, fmt.Errorf("%w: stack target %s", game.ErrNotFound, targetId)
		}
		si := w.Items.IndexOf(sourceId)
		if si < 0 {
			return delta{}, fmt.Errorf("%w: stack source %s", game.ErrNotFound, sourceId)
		}
		return delta{}, stackSlots(w.Items, ti, si)
	})
}

func stackSlots(items game.Container, ti, si int) error {
	target, source := items[ti], items[si]
	if ti == si {
		return fmt.Errorf("%w: cannot stack %s onto itself", game.ErrNotStackable, target.InstanceId)
	}
	if target.TemplateId != source.TemplateId {
		return fmt.Errorf("%w: %s and %s are different items", game.ErrNotStackable, target.TemplateId, source.TemplateId)
	}
	if target.Room() == 0 {
		return fmt.Errorf("%w: %s is full", game.ErrNotStackable, target.InstanceId)
	}

	n := min(target.Room(), source.Quantity)
	target.Quantity += n
	source.Quantity -= n
	if source.Quantity == 0 {
		items[si] = nil
	}
	return nil
}

// Split moves quantity units of an instance into a new stack placed in the
// first free slot, and returns the new stack.
func (e *Engine) Split(c *game.Character, instanceId string, quantity int) (*game.Item, error) {
	var created *game.Item
	err := e.apply(c, func(w *game.Character) (delta, error) {
		idx := w.Items.IndexOf(instanceId)
		if idx < 0 {
			return delta{}, fmt.Errorf("%w: item %s", game.ErrNotFound, instanceId)
		}
		src := w.Items[idx]
		if quantity <= 0 || quantity >= src.Quantity {
			return delta{}, fmt.Errorf("%w: split %d must be between 0 and %d exclusive", game.ErrInvalidQuantity, quantity, src.Quantity)
		}

		n := src.Clone()
		n.InstanceId = e.newId()
		n.Quantity = quantity
		if err := placeInInventory(w, n); err != nil {
			return delta{}, err
		}
		src.Quantity -= quantity

		created = n
		return delta{}, nil
	})
	if err != nil {
		return nil, err
	}
	return created.Clone(), nil
}

// Swap exchanges two inventory slots. Two different stacks of the same
// template are merged instead, with a onto b.
func (e *Engine) Swap(c *game.Character, a, b int) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		ia, err := w.Items.Get(a)
		if err != nil {
			return delta{}, err
		}
		ib, err := w.Items.Get(b)
		if err != nil {
			return delta{}, err
		}

		if ia != nil && ia.SameTemplate(ib) {
			return delta{}, stackSlots(w.Items, b, a)
		}
		return delta{}, w.Items.Swap(a, b)
	})
}

// Clear empties the inventory. Toolbar and equipment are left alone.
func (e *Engine) Clear(c *game.Character) error {
	return e.apply(c, func(w *game.Character) (delta, error) {
		var d delta
		for i, it := range w.Items {
			if it == nil {
				continue
			}
			d.qty -= it.Quantity
			d.weight -= it.Weight()
			w.Items[i] = nil
		}
		return d, nil
	})
}

// TotalWeight returns the weight carried across inventory, toolbar and
// equipment.
func (e *Engine) TotalWeight(c *game.Character) float64 {
	_, w := c.Totals()
	return w
}

// HasItem reports whether the player holds any instance of the template.
func (e *Engine) HasItem(c *game.Character, templateId string) bool {
	return e.ItemCount(c, templateId) > 0
}

// ItemCount sums the quantity of a template across all containers.
func (e *Engine) ItemCount(c *game.Character, templateId string) int {
	var n int
	for _, it := range c.All() {
		if it.TemplateId == templateId {
			n += it.Quantity
		}
	}
	return n
}

// CanAdd reports whether Add would accept the candidate stack.
func (e *Engine) CanAdd(c *game.Character, it *game.Item) bool {
	if it == nil || it.Quantity <= 0 || it.MaxStack < 1 {
		return false
	}
	if e.TotalWeight(c)+it.Weight() > e.limits.MaxWeight {
		return false
	}

	remaining := it.Quantity
	for _, have := range c.Items.Items() {
		if have.TemplateId == it.TemplateId && have.Room() > 0 {
			remaining -= min(have.Room(), remaining)
			if e.limits.StackPolicy != StackPolicyChunk {
				break
			}
		}
	}
	if remaining == 0 {
		return true
	}

	free := max(e.limits.MaxSlots-c.Items.Len(), 0)
	for _, slot := range c.Items {
		if slot == nil {
			free++
		}
	}
	need := (remaining + it.MaxStack - 1) / it.MaxStack
	if e.limits.StackPolicy != StackPolicyChunk && need > 1 {
		return false
	}
	return need <= free
}
