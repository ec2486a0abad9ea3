package game

import "fmt"

// Container is an ordered, fixed-length run of slots. A nil entry is an
// empty slot. It encodes as a JSON array of item-or-null.
type Container []*Item

// NewContainer creates a container with n empty slots.
func NewContainer(n int) Container {
	return make(Container, n)
}

func (c Container) Len() int {
	return len(c)
}

func (c Container) check(i int) error {
	if i < 0 || i >= len(c) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidSlot, i, len(c))
	}
	return nil
}

// Get returns the item at slot i, which may be nil.
func (c Container) Get(i int) (*Item, error) {
	if err := c.check(i); err != nil {
		return nil, err
	}
	return c[i], nil
}

// Set places it in slot i, replacing whatever was there.
func (c Container) Set(i int, it *Item) error {
	if err := c.check(i); err != nil {
		return err
	}
	c[i] = it
	return nil
}

// Take clears slot i and returns what it held.
func (c Container) Take(i int) (*Item, error) {
	if err := c.check(i); err != nil {
		return nil, err
	}
	it := c[i]
	c[i] = nil
	return it, nil
}

// Swap exchanges the contents of two slots.
func (c Container) Swap(a, b int) error {
	if err := c.check(a); err != nil {
		return err
	}
	if err := c.check(b); err != nil {
		return err
	}
	c[a], c[b] = c[b], c[a]
	return nil
}

// IndexOf returns the slot holding instanceId, or -1.
func (c Container) IndexOf(instanceId string) int {
	for i, it := range c {
		if it != nil && it.InstanceId == instanceId {
			return i
		}
	}
	return -1
}

// FirstEmpty returns the lowest empty slot, or -1 if the container is full.
func (c Container) FirstEmpty() int {
	for i, it := range c {
		if it == nil {
			return i
		}
	}
	return -1
}

// Items returns the held items in slot order.
func (c Container) Items() []*Item {
	var out []*Item
	for _, it := range c {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Slots returns a copy of the slot array, padded with empty slots to at
// least n entries.
func (c Container) Slots(n int) []*Item {
	out := make([]*Item, max(len(c), n))
	copy(out, c)
	return out
}

// Grow pads the container with empty slots up to n. It never shrinks.
func (c *Container) Grow(n int) bool {
	if len(*c) >= n {
		return false
	}
	grown := make(Container, n)
	copy(grown, *c)
	*c = grown
	return true
}

// Clone returns a deep copy.
func (c Container) Clone() Container {
	if c == nil {
		return nil
	}
	out := make(Container, len(c))
	for i, it := range c {
		out[i] = it.Clone()
	}
	return out
}
