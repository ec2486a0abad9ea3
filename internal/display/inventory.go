package display

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-inventory/internal/engine"
	"github.com/pixil98/go-inventory/internal/game"
)

const emptySlot = "-"

// Inventory renders a player's document as plain text lines for
// diagnostics. Long toolbar and equipment summaries wrap with a hanging
// indent.
func Inventory(c *game.Character, status engine.WeightStatus) []string {
	held := c.Items.Items()

	lines := []string{
		"=== Inventory ===",
		fmt.Sprintf("Total items: %d", len(held)),
	}
	for i, it := range held {
		lines = append(lines, fmt.Sprintf("%d. %s (%s) - Qty: %d", i+1, it.Name, it.InstanceId, it.Quantity))
	}

	toolbar := make([]string, len(c.Toolbar))
	for i, it := range c.Toolbar {
		toolbar[i] = fmt.Sprintf("%d: %s", i+1, itemName(it))
	}
	if len(toolbar) > 0 {
		lines = append(lines, Hanging("Toolbar: "+strings.Join(toolbar, ", "), 2)...)
	}

	var equipped []string
	for _, s := range c.Equipment {
		if s == nil {
			continue
		}
		equipped = append(equipped, fmt.Sprintf("%s: %s", s.Name, itemName(s.Item)))
	}
	if len(equipped) > 0 {
		lines = append(lines, Hanging("Equipped: "+strings.Join(equipped, ", "), 2)...)
	}

	lines = append(lines, fmt.Sprintf("Weight: %.1f / %.1f (%s)", status.Carried, status.Max, Capitalize(string(status.State))))
	return lines
}

// Templates renders the ids players can be granted, wrapped like the
// toolbar summary.
func Templates(ids []string) []string {
	if len(ids) == 0 {
		return []string{"Templates: none"}
	}
	return Hanging("Templates: "+strings.Join(ids, ", "), 2)
}

func itemName(it *game.Item) string {
	if it == nil {
		return emptySlot
	}
	if it.Quantity > 1 {
		return fmt.Sprintf("%s x%d", it.Name, it.Quantity)
	}
	return it.Name
}
