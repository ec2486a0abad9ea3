package command

import (
	"fmt"

	"github.com/pixil98/go-inventory/internal/engine"
)

// InventoryConfig overrides the engine limits. Zero values keep the defaults.
type InventoryConfig struct {
	MaxWeight         float64 `json:"max_weight"`
	MaxSlots          int     `json:"max_slots"`
	OverweightPenalty float64 `json:"overweight_penalty"`
	StackPolicy       string  `json:"stack_policy"`
}

func (c *InventoryConfig) limits() engine.Limits {
	l := engine.DefaultLimits()
	if c.MaxWeight != 0 {
		l.MaxWeight = c.MaxWeight
	}
	if c.MaxSlots != 0 {
		l.MaxSlots = c.MaxSlots
	}
	if c.OverweightPenalty != 0 {
		l.OverweightPenalty = c.OverweightPenalty
	}
	if c.StackPolicy != "" {
		l.StackPolicy = engine.StackPolicy(c.StackPolicy)
	}
	return l
}

func (c *InventoryConfig) validate() error {
	if err := c.limits().Validate(); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	return nil
}

func (c *InventoryConfig) buildEngine() *engine.Engine {
	return engine.New(c.limits())
}
