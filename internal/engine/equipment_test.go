package engine

import (
	"testing"

	"github.com/pixil98/go-inventory/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestEngine_InitEquipment(t *testing.T) {
	e := newTestEngine()
	c := game.NewCharacter(8)

	testutil.AssertEqual(t, "created", e.InitEquipment(c), true)
	testutil.AssertEqual(t, "slots", len(c.Equipment), 13)

	c.Equipment[0].Item = stack(vest, "armor_vest", "v", 1)
	testutil.AssertEqual(t, "idempotent", e.InitEquipment(c), false)
	testutil.AssertEqual(t, "kept item", c.Equipment.SlotOf("v"), c.Equipment[0].Id)
}

func TestEngine_Equip(t *testing.T) {
	tests := map[string]struct {
		items    []*game.Item
		equipped map[string]*game.Item
		id       string
		slot     string
		expErr   error
		expItems []string
	}{
		"into empty slot": {
			items:    []*game.Item{stack(vest, "armor_vest", "v", 1)},
			id:       "v",
			slot:     "body_armors",
			expItems: []string{""},
		},
		"displaced item takes the freed slot": {
			items:    []*game.Item{stack(burger, "food_burger", "f", 1), stack(vest, "armor_vest", "v2", 1)},
			equipped: map[string]*game.Item{"body_armors": stack(vest, "armor_vest", "v1", 1)},
			id:       "v2",
			slot:     "body_armors",
			expItems: []string{"f", "v1"},
		},
		"case-insensitive category": {
			items: []*game.Item{{
				TemplateId: "hat_fedora", InstanceId: "h", Quantity: 1, MaxStack: 1,
				Attributes: game.Attributes{"type": "HAT"},
			}},
			id:       "h",
			slot:     "hats",
			expItems: []string{""},
		},
		"unknown slot": {
			items:  []*game.Item{stack(vest, "armor_vest", "v", 1)},
			id:     "v",
			slot:   "tail",
			expErr: game.ErrInvalidSlot,
		},
		"not in inventory": {
			items:  []*game.Item{stack(vest, "armor_vest", "v", 1)},
			id:     "w",
			slot:   "body_armors",
			expErr: game.ErrNotFound,
		},
		"wrong category": {
			items:  []*game.Item{stack(ballCap, "hat_cap", "c", 1)},
			id:     "c",
			slot:   "body_armors",
			expErr: game.ErrTypeMismatch,
		},
		"no category": {
			items:  []*game.Item{stack(burger, "food_burger", "f", 1)},
			id:     "f",
			slot:   "hats",
			expErr: game.ErrTypeMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine()
			c := newChar(e, tt.items...)
			for id, it := range tt.equipped {
				s, err := c.Equipment.Find(id)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				s.Item = it
			}
			before := snapshot(t, c)

			err := e.Equip(c, tt.id, tt.slot)

			if tt.expErr != nil {
				assertIs(t, err, tt.expErr)
				testutil.AssertEqual(t, "unchanged", snapshot(t, c), before)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "equipped", c.Equipment.SlotOf(tt.id), tt.slot)
			testutil.AssertEqual(t, "left inventory", c.Items.IndexOf(tt.id), -1)
			assertSlots(t, "inventory", c.Items, tt.expItems)
		})
	}
}

func TestEngine_Unequip(t *testing.T) {
	tests := map[string]struct {
		slots  int
		items  []*game.Item
		slot   string
		expErr error
	}{
		"returns to inventory": {
			items: []*game.Item{stack(burger, "food_burger", "f", 1)},
			slot:  "body_armors",
		},
		"empty slot": {
			slot:   "hats",
			expErr: game.ErrEmptySlot,
		},
		"unknown slot": {
			slot:   "tail",
			expErr: game.ErrInvalidSlot,
		},
		"inventory full": {
			slots:  1,
			items:  []*game.Item{stack(burger, "food_burger", "f", 1)},
			slot:   "body_armors",
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
			armor, _ := c.Equipment.Find("body_armors")
			armor.Item = stack(vest, "armor_vest", "v", 1)
			before := snapshot(t, c)

			err := e.Unequip(c, tt.slot)

			if tt.expErr != nil {
				assertIs(t, err, tt.expErr)
				testutil.AssertEqual(t, "unchanged", snapshot(t, c), before)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "back in inventory", c.Items.IndexOf("v"), 1)
			testutil.AssertEqual(t, "slot empty", c.Equipment.SlotOf("v"), "")
		})
	}
}

func TestEngine_SwapEquipment(t *testing.T) {
	unlimited := func(c *game.Character) {
		c.Equipment = append(c.Equipment, &game.EquipmentSlot{Id: "pocket", Name: "Pocket"})
	}

	tests := map[string]struct {
		setup  func(*game.Character)
		a, b   string
		expErr error
		expA   string
		expB   string
	}{
		"into unlimited slot": {
			setup: func(c *game.Character) {
				unlimited(c)
				s, _ := c.Equipment.Find("hats")
				s.Item = stack(ballCap, "hat_cap", "c", 1)
			},
			a:    "hats",
			b:    "pocket",
			expB: "c",
		},
		"both directions allowed": {
			setup: func(c *game.Character) {
				unlimited(c)
				s, _ := c.Equipment.Find("shoes")
				s.Item = &game.Item{TemplateId: "boots_hiking", InstanceId: "b", Quantity: 1, MaxStack: 1, Attributes: game.Attributes{"type": "boots"}}
				p, _ := c.Equipment.Find("pocket")
				p.Item = &game.Item{TemplateId: "shoes_sneaker", InstanceId: "s", Quantity: 1, MaxStack: 1, Attributes: game.Attributes{"type": "shoes"}}
			},
			a:    "shoes",
			b:    "pocket",
			expA: "s",
			expB: "b",
		},
		"same slot": {
			setup: func(c *game.Character) {
				s, _ := c.Equipment.Find("hats")
				s.Item = stack(ballCap, "hat_cap", "c", 1)
			},
			a:    "hats",
			b:    "hats",
			expA: "c",
			expB: "c",
		},
		"target rejects": {
			setup: func(c *game.Character) {
				s, _ := c.Equipment.Find("hats")
				s.Item = stack(ballCap, "hat_cap", "c", 1)
			},
			a:      "hats",
			b:      "body_armors",
			expErr: game.ErrTypeMismatch,
		},
		"source rejects returning item": {
			setup: func(c *game.Character) {
				unlimited(c)
				p, _ := c.Equipment.Find("pocket")
				p.Item = stack(burger, "food_burger", "f", 1)
			},
			a:      "hats",
			b:      "pocket",
			expErr: game.ErrTypeMismatch,
		},
		"both empty": {
			a:      "hats",
			b:      "masks",
			expErr: game.ErrEmptySlot,
		},
		"unknown slot": {
			a:      "hats",
			b:      "tail",
			expErr: game.ErrInvalidSlot,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine()
			c := newChar(e)
			if tt.setup != nil {
				tt.setup(c)
			}
			before := snapshot(t, c)

			err := e.SwapEquipment(c, tt.a, tt.b)

			if tt.expErr != nil {
				assertIs(t, err, tt.expErr)
				testutil.AssertEqual(t, "unchanged", snapshot(t, c), before)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			held := func(id string) string {
				s, _ := c.Equipment.Find(id)
				if s.Item == nil {
					return ""
				}
				return s.Item.InstanceId
			}
			testutil.AssertEqual(t, "slot a", held(tt.a), tt.expA)
			testutil.AssertEqual(t, "slot b", held(tt.b), tt.expB)
		})
	}
}

func TestEngine_EquipmentAggregates(t *testing.T) {
	e := newTestEngine()
	c := newChar(e)
	armor, _ := c.Equipment.Find("body_armors")
	armor.Item = stack(vest, "armor_vest", "v", 1)
	hat, _ := c.Equipment.Find("hats")
	hat.Item = stack(ballCap, "hat_cap", "c", 1)
	bag, _ := c.Equipment.Find("bags")
	bag.Item = &game.Item{TemplateId: "bag_duffel", InstanceId: "d", UnitWeight: 1.5, Quantity: 1, MaxStack: 1}

	testutil.AssertEqual(t, "armor rating", e.ArmorRating(c), 42.0)
	testutil.AssertEqual(t, "equipped weight", e.EquippedWeight(c), 10.0)
}
