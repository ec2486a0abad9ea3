package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ExtensionState carries document fields owned by the host game, such as
// appearance or quest flags. Values stay raw JSON so a load, mutate and save
// cycle never drops or rewrites them.
type ExtensionState map[string]json.RawMessage

// Set replaces the value stored under key.
func (e *ExtensionState) Set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}
	if *e == nil {
		*e = make(ExtensionState, 1)
	}
	(*e)[key] = b
	return nil
}

// Get decodes the value under key into out and reports whether it was there.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw := e[key]
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

func (e ExtensionState) Keys() []string {
	return slices.Sorted(maps.Keys(e))
}

// Clone deep copies the raw values; nil stays nil.
func (e ExtensionState) Clone() ExtensionState {
	if e == nil {
		return nil
	}
	out := make(ExtensionState, len(e))
	for k, v := range e {
		out[k] = slices.Clone(v)
	}
	return out
}
