package game

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidSlot           = errors.New("invalid slot")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInsufficientQuantity  = errors.New("insufficient quantity")
	ErrCapacityExceeded      = errors.New("capacity exceeded")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrNotStackable          = errors.New("not stackable")
	ErrEmptySlot             = errors.New("empty slot")
	ErrConservationViolation = errors.New("conservation violation")
	ErrPersistence           = errors.New("persistence failure")
)

// Kind names reported to clients alongside a rejection.
const (
	KindNotFound              = "not_found"
	KindInvalidSlot           = "invalid_slot"
	KindInvalidQuantity       = "invalid_quantity"
	KindInsufficientQuantity  = "insufficient_quantity"
	KindCapacityExceeded      = "capacity_exceeded"
	KindTypeMismatch          = "type_mismatch"
	KindNotStackable          = "not_stackable"
	KindEmptySlot             = "empty_slot"
	KindConservationViolation = "conservation_violation"
	KindPersistence           = "persistence_failure"
	KindInternal              = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	// Conservation and persistence are checked first; they can wrap the others.
	{ErrConservationViolation, KindConservationViolation},
	{ErrPersistence, KindPersistence},
	{ErrNotFound, KindNotFound},
	{ErrInvalidSlot, KindInvalidSlot},
	{ErrInvalidQuantity, KindInvalidQuantity},
	{ErrInsufficientQuantity, KindInsufficientQuantity},
	{ErrCapacityExceeded, KindCapacityExceeded},
	{ErrTypeMismatch, KindTypeMismatch},
	{ErrNotStackable, KindNotStackable},
	{ErrEmptySlot, KindEmptySlot},
}

// KindOf maps err to a stable kind string. Nil maps to "" and anything
// unrecognised to KindInternal.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
