package engine

import (
	"testing"

	"github.com/pixil98/go-inventory/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestEngine_InitToolbar(t *testing.T) {
	e := newTestEngine()
	c := game.NewCharacter(8)

	testutil.AssertEqual(t, "created", e.InitToolbar(c), true)
	testutil.AssertEqual(t, "length", c.Toolbar.Len(), 5)

	c.Toolbar[2] = stack(pistol, "weapon_pistol", "p", 1)
	testutil.AssertEqual(t, "idempotent", e.InitToolbar(c), false)
	testutil.AssertEqual(t, "kept item", c.Toolbar.IndexOf("p"), 2)
}

func TestEngine_AssignToToolbar(t *testing.T) {
	tests := map[string]struct {
		items      []*game.Item
		toolbar    map[int]*game.Item
		id         string
		slot       int
		expErr     error
		expToolbar []string
		expItems   []string
	}{
		"from inventory into empty slot": {
			items:      []*game.Item{stack(pistol, "weapon_pistol", "p", 1)},
			id:         "p",
			slot:       0,
			expToolbar: []string{"p", "", "", "", ""},
			expItems:   []string{""},
		},
		"from inventory displaces into freed slot": {
			items:      []*game.Item{stack(burger, "food_burger", "f", 1), stack(pistol, "weapon_pistol", "p", 1)},
			toolbar:    map[int]*game.Item{2: stack(vest, "armor_vest", "x", 1)},
			id:         "p",
			slot:       2,
			expToolbar: []string{"", "", "p", "", ""},
			expItems:   []string{"f", "x"},
		},
		"re-pin swaps toolbar positions": {
			toolbar:    map[int]*game.Item{0: stack(pistol, "weapon_pistol", "p", 1), 4: stack(burger, "food_burger", "f", 1)},
			id:         "p",
			slot:       4,
			expToolbar: []string{"f", "", "", "", "p"},
		},
		"re-pin into same slot": {
			toolbar:    map[int]*game.Item{1: stack(pistol, "weapon_pistol", "p", 1)},
			id:         "p",
			slot:       1,
			expToolbar: []string{"", "p", "", "", ""},
		},
		"slot too high": {
			items:  []*game.Item{stack(pistol, "weapon_pistol", "p", 1)},
			id:     "p",
			slot:   5,
			expErr: game.ErrInvalidSlot,
		},
		"slot negative": {
			items:  []*game.Item{stack(pistol, "weapon_pistol", "p", 1)},
			id:     "p",
			slot:   -1,
			expErr: game.ErrInvalidSlot,
		},
		"unknown item": {
			items:  []*game.Item{stack(pistol, "weapon_pistol", "p", 1)},
			id:     "q",
			slot:   0,
			expErr: game.ErrNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine()
			c := newChar(e, tt.items...)
			for i, it := range tt.toolbar {
				c.Toolbar[i] = it
			}
			before := snapshot(t, c)
			beforeQty, _ := c.Totals()

			err := e.AssignToToolbar(c, tt.id, tt.slot)

			if tt.expErr != nil {
				assertIs(t, err, tt.expErr)
				testutil.AssertEqual(t, "unchanged", snapshot(t, c), before)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertSlots(t, "toolbar", c.Toolbar, tt.expToolbar)
			assertSlots(t, "inventory", c.Items, tt.expItems)
			afterQty, _ := c.Totals()
			testutil.AssertEqual(t, "quantity conserved", afterQty, beforeQty)
		})
	}
}

func TestEngine_RemoveFromToolbar(t *testing.T) {
	tests := map[string]struct {
		slots    int
		items    []*game.Item
		slot     int
		expErr   error
		expItems []string
	}{
		"returns to first free slot": {
			items:    []*game.Item{stack(burger, "food_burger", "f", 1)},
			slot:     3,
			expItems: []string{"f", "p"},
		},
		"empty slot": {
			slot:   0,
			expErr: game.ErrEmptySlot,
		},
		"out of range": {
			slot:   7,
			expErr: game.ErrInvalidSlot,
		},
		"inventory full": {
			slots:  1,
			items:  []*game.Item{stack(burger, "food_burger", "f", 1)},
			slot:   3,
			expErr: game.ErrCapacityExceeded,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(func(l *Limits) {
				if tt.slots > 0 {
					l.MaxSlots = tt.slots
				}
			})
			c := newChar(e, tt.items...)
			c.Toolbar[3] = stack(pistol, "weapon_pistol", "p", 1)
			before := snapshot(t, c)

			err := e.RemoveFromToolbar(c, tt.slot)

			if tt.expErr != nil {
				assertIs(t, err, tt.expErr)
				testutil.AssertEqual(t, "unchanged", snapshot(t, c), before)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertSlots(t, "inventory", c.Items, tt.expItems)
			testutil.AssertEqual(t, "toolbar slot cleared", c.Toolbar[tt.slot] == nil, true)
		})
	}
}

func TestEngine_SwapToolbar(t *testing.T) {
	e := newTestEngine()
	c := newChar(e)
	c.Toolbar[0] = stack(pistol, "weapon_pistol", "p", 1)

	if err := e.SwapToolbar(c, 0, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSlots(t, "toolbar", c.Toolbar, []string{"", "", "", "", "p"})

	before := snapshot(t, c)
	err := e.SwapToolbar(c, 4, 5)
	assertIs(t, err, game.ErrInvalidSlot)
	testutil.AssertEqual(t, "unchanged", snapshot(t, c), before)
}

func TestEngine_ToolbarOpsInitialiseMissingToolbar(t *testing.T) {
	e := newTestEngine()
	c := game.NewCharacter(8)
	c.Items[0] = stack(pistol, "weapon_pistol", "p", 1)

	if err := e.AssignToToolbar(c, "p", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "toolbar length", c.Toolbar.Len(), 5)
	testutil.AssertEqual(t, "pinned", c.Toolbar.IndexOf("p"), 4)
}

func assertSlots(t *testing.T, name string, c game.Container, exp []string) {
	t.Helper()
	for i, id := range exp {
		got := ""
		if i < c.Len() && c[i] != nil {
			got = c[i].InstanceId
		}
		testutil.AssertEqual(t, name+" slot", got, id)
	}
}
