package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/game"
)

const (
	DefaultMaxWeight         = 250.0
	DefaultMaxSlots          = 64
	DefaultOverweightPenalty = 0.7

	// weightTolerance absorbs float drift when comparing weight totals.
	weightTolerance = 1e-9
)

// StackPolicy decides what Add does with quantity that does not fit in an
// existing partial stack.
type StackPolicy string

const (
	// StackPolicySingle creates at most one new stack and rejects a
	// remainder larger than the template's max stack.
	StackPolicySingle StackPolicy = "single"
	// StackPolicyChunk fills every partial stack, then creates as many full
	// stacks as the remainder needs.
	StackPolicyChunk StackPolicy = "chunk"
)

// Limits are the static rules every player is held to.
type Limits struct {
	MaxWeight         float64
	MaxSlots          int
	ToolbarSlots      int
	OverweightPenalty float64
	StackPolicy       StackPolicy
}

func DefaultLimits() Limits {
	return Limits{
		MaxWeight:         DefaultMaxWeight,
		MaxSlots:          DefaultMaxSlots,
		ToolbarSlots:      game.ToolbarSlots,
		OverweightPenalty: DefaultOverweightPenalty,
		StackPolicy:       StackPolicySingle,
	}
}

func (l Limits) Validate() error {
	el := errors.NewErrorList()
	if l.MaxWeight <= 0 {
		el.Add(fmt.Errorf("max weight must be positive"))
	}
	if l.MaxSlots < 1 {
		el.Add(fmt.Errorf("max slots must be at least 1"))
	}
	if l.ToolbarSlots < 1 {
		el.Add(fmt.Errorf("toolbar slots must be at least 1"))
	}
	if l.OverweightPenalty < 0 || l.OverweightPenalty > 1 {
		el.Add(fmt.Errorf("overweight penalty must be in [0, 1]"))
	}
	switch l.StackPolicy {
	case StackPolicySingle, StackPolicyChunk:
	default:
		el.Add(fmt.Errorf("stack policy %q is invalid", l.StackPolicy))
	}
	return el.Err()
}

// Engine applies inventory, toolbar and equipment operations to a character.
// It holds no per-player state and is safe for concurrent use as long as
// each character is only touched by one goroutine at a time.
type Engine struct {
	limits Limits
	newId  func() string
}

func New(limits Limits, opts ...EngineOpt) *Engine {
	e := &Engine{
		limits: limits,
		newId:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Limits() Limits {
	return e.limits
}

// delta is the change in totals an operation is expected to make.
type delta struct {
	qty    int
	weight float64
}

// apply runs fn against a clone of c and copies the result back only if fn
// succeeded and the clone still satisfies every invariant. On any error c is
// left exactly as it was.
func (e *Engine) apply(c *game.Character, fn func(w *game.Character) (delta, error)) error {
	w := c.Clone()
	w.Items.Grow(e.limits.MaxSlots)

	beforeQty, beforeWeight := w.Totals()

	d, err := fn(w)
	if err != nil {
		return err
	}

	afterQty, afterWeight := w.Totals()
	if afterQty-beforeQty != d.qty {
		return fmt.Errorf("%w: quantity changed by %d, expected %d", game.ErrConservationViolation, afterQty-beforeQty, d.qty)
	}
	drift := math.Abs((afterWeight - beforeWeight) - d.weight)
	if drift > weightTolerance*math.Max(1, math.Abs(beforeWeight)) {
		return fmt.Errorf("%w: weight changed by %g, expected %g", game.ErrConservationViolation, afterWeight-beforeWeight, d.weight)
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %w", game.ErrConservationViolation, err)
	}

	*c = *w
	return nil
}

// placeInInventory puts it in the first free inventory slot.
func placeInInventory(w *game.Character, it *game.Item) error {
	idx := w.Items.FirstEmpty()
	if idx < 0 {
		return fmt.Errorf("%w: no free inventory slot for %s", game.ErrCapacityExceeded, it.InstanceId)
	}
	w.Items[idx] = it
	return nil
}
