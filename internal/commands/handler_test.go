package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/pixil98/go-inventory/internal/broadcast"
	"github.com/pixil98/go-inventory/internal/engine"
	"github.com/pixil98/go-inventory/internal/game"
	"github.com/pixil98/go-testutil"
)

// fakeOps records the last call and returns err for every operation.
type fakeOps struct {
	call string
	args []any
	err  error
	char *game.Character
}

func (f *fakeOps) record(call string, args ...any) {
	f.call = call
	f.args = args
}

func (f *fakeOps) result() (*game.Character, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.char, nil
}

func (f *fakeOps) AddItem(_ context.Context, _ string, templateId string, quantity int) (*game.Character, error) {
	f.record("AddItem", templateId, quantity)
	return f.result()
}

func (f *fakeOps) RemoveItem(_ context.Context, _ string, ref string, quantity int) (*game.Character, error) {
	f.record("RemoveItem", ref, quantity)
	return f.result()
}

func (f *fakeOps) StackItems(_ context.Context, _ string, targetId, sourceId string) (*game.Character, error) {
	f.record("StackItems", targetId, sourceId)
	return f.result()
}

func (f *fakeOps) SplitItems(_ context.Context, _ string, instanceId string, quantity int) (*game.Item, error) {
	f.record("SplitItems", instanceId, quantity)
	if f.err != nil {
		return nil, f.err
	}
	return &game.Item{InstanceId: "new", Quantity: quantity}, nil
}

func (f *fakeOps) SwapItems(_ context.Context, _ string, a, b int) (*game.Character, error) {
	f.record("SwapItems", a, b)
	return f.result()
}

func (f *fakeOps) UseItem(_ context.Context, _ string, instanceId string) (*game.Item, error) {
	f.record("UseItem", instanceId)
	if f.err != nil {
		return nil, f.err
	}
	return &game.Item{InstanceId: instanceId, Quantity: 1}, nil
}

func (f *fakeOps) ClearInventory(context.Context, string) (*game.Character, error) {
	f.record("ClearInventory")
	return f.result()
}

func (f *fakeOps) AssignToToolbar(_ context.Context, _ string, instanceId string, slot int) (*game.Character, error) {
	f.record("AssignToToolbar", instanceId, slot)
	return f.result()
}

func (f *fakeOps) RemoveFromToolbar(_ context.Context, _ string, slot int) (*game.Character, error) {
	f.record("RemoveFromToolbar", slot)
	return f.result()
}

func (f *fakeOps) SwapToolbarItems(_ context.Context, _ string, a, b int) (*game.Character, error) {
	f.record("SwapToolbarItems", a, b)
	return f.result()
}

func (f *fakeOps) EquipItem(_ context.Context, _ string, instanceId, slotId string) (*game.Character, error) {
	f.record("EquipItem", instanceId, slotId)
	return f.result()
}

func (f *fakeOps) UnequipItem(_ context.Context, _ string, slotId string) (*game.Character, error) {
	f.record("UnequipItem", slotId)
	return f.result()
}

func (f *fakeOps) SwapEquipment(_ context.Context, _ string, a, b string) (*game.Character, error) {
	f.record("SwapEquipment", a, b)
	return f.result()
}

func (f *fakeOps) Refresh(_ context.Context, _ string, targets broadcast.Target) (*game.Character, error) {
	f.record("Refresh", targets)
	return f.result()
}

func (f *fakeOps) WeightStatus(context.Context, string) (engine.WeightStatus, error) {
	if f.call == "" {
		f.record("WeightStatus")
	}
	if f.err != nil {
		return engine.WeightStatus{}, f.err
	}
	return engine.WeightStatus{Carried: 15, Max: 250, State: engine.WeightNormal}, nil
}

func testChar() *game.Character {
	c := game.NewCharacter(4)
	c.Items[0] = &game.Item{TemplateId: "food_burger", InstanceId: "f1", Name: "Burger", Quantity: 3, MaxStack: 12}
	c.Toolbar = game.NewContainer(game.ToolbarSlots)
	c.Equipment = game.DefaultEquipment()
	return c
}

func newTestHandler(t *testing.T, ops Operations) *Handler {
	t.Helper()
	h, err := NewHandler(ops)
	if err != nil {
		t.Fatalf("unexpected error creating handler: %v", err)
	}
	return h
}

func TestHandler_Dispatch(t *testing.T) {
	tests := map[string]struct {
		req     string
		payload string
		expCall string
		expArgs string
	}{
		"request items":       {req: game.RequestItems, expCall: "Refresh", expArgs: "[1]"},
		"stack":               {req: game.RequestStackItems, payload: `{"target_id":"a","source_id":"b"}`, expCall: "StackItems", expArgs: "[a b]"},
		"split":               {req: game.RequestSplitItems, payload: `{"instance_id":"a","quantity":2}`, expCall: "SplitItems", expArgs: "[a 2]"},
		"swap":                {req: game.RequestSwapItems, payload: `{"from":0,"to":3}`, expCall: "SwapItems", expArgs: "[0 3]"},
		"use":                 {req: game.RequestUseItem, payload: `{"instance_id":"a"}`, expCall: "UseItem", expArgs: "[a]"},
		"assign to toolbar":   {req: game.RequestAssignToToolbar, payload: `{"instance_id":"a","slot":2}`, expCall: "AssignToToolbar", expArgs: "[a 2]"},
		"remove from toolbar": {req: game.RequestRemoveFromToolbar, payload: `{"slot":4}`, expCall: "RemoveFromToolbar", expArgs: "[4]"},
		"swap toolbar":        {req: game.RequestSwapToolbarItems, payload: `{"from":1,"to":2}`, expCall: "SwapToolbarItems", expArgs: "[1 2]"},
		"get toolbar":         {req: game.RequestGetToolbar, expCall: "Refresh", expArgs: "[2]"},
		"equip":               {req: game.RequestEquipItem, payload: `{"instance_id":"a","slot_id":"hats"}`, expCall: "EquipItem", expArgs: "[a hats]"},
		"unequip":             {req: game.RequestUnequipItem, payload: `{"slot_id":"hats"}`, expCall: "UnequipItem", expArgs: "[hats]"},
		"swap equipment":      {req: game.RequestSwapEquipment, payload: `{"from":"hats","to":"masks"}`, expCall: "SwapEquipment", expArgs: "[hats masks]"},
		"get equipment":       {req: game.RequestGetEquipment, expCall: "Refresh", expArgs: "[4]"},
		"add item":            {req: game.RequestAddItem, payload: `{"template_id":"food_burger","quantity":5}`, expCall: "AddItem", expArgs: "[food_burger 5]"},
		"remove item":         {req: game.RequestRemoveItem, payload: `{"ref":"food_burger","quantity":1}`, expCall: "RemoveItem", expArgs: "[food_burger 1]"},
		"clear":               {req: game.RequestClear, expCall: "ClearInventory", expArgs: "[]"},
		"weight status":       {req: game.RequestWeightStatus, expCall: "WeightStatus", expArgs: "[]"},
		"debug":               {req: game.RequestDebug, expCall: "Refresh", expArgs: "[0]"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ops := &fakeOps{char: testChar()}
			h := newTestHandler(t, ops)

			reply := h.Exec(context.Background(), "alice", Request{Type: tt.req, Payload: json.RawMessage(tt.payload)})

			testutil.AssertEqual(t, "ok", reply.Ok, true)
			testutil.AssertEqual(t, "error", reply.Error, "")
			testutil.AssertEqual(t, "call", ops.call, tt.expCall)
			testutil.AssertEqual(t, "args", fmt.Sprint(ops.args), tt.expArgs)
		})
	}
}

func TestHandler_ReplyData(t *testing.T) {
	ops := &fakeOps{char: testChar()}
	h := newTestHandler(t, ops)
	ctx := context.Background()

	reply := h.Exec(ctx, "alice", Request{Type: game.RequestSplitItems, Payload: json.RawMessage(`{"instance_id":"f1","quantity":2}`)})
	created, ok := reply.Data.(*game.Item)
	if !ok {
		t.Fatalf("expected *game.Item, got %T", reply.Data)
	}
	testutil.AssertEqual(t, "created", created.Quantity, 2)

	reply = h.Exec(ctx, "alice", Request{Type: game.RequestItems})
	items, ok := reply.Data.(game.Container)
	if !ok {
		t.Fatalf("expected game.Container, got %T", reply.Data)
	}
	testutil.AssertEqual(t, "slots", len(items), 4)

	reply = h.Exec(ctx, "alice", Request{Type: game.RequestDebug})
	lines, ok := reply.Data.([]string)
	if !ok {
		t.Fatalf("expected []string, got %T", reply.Data)
	}
	testutil.AssertEqual(t, "debug header", lines[0], "=== Inventory ===")

	reply = h.Exec(ctx, "alice", Request{Type: game.RequestAddItem, Payload: json.RawMessage(`{"template_id":"food_burger","quantity":5}`)})
	testutil.AssertEqual(t, "add message", reply.Data, any("Added food_burger x5 to inventory."))
}

type fakeTemplates struct {
	ids []string
	err error
}

func (f fakeTemplates) Ids(context.Context) ([]string, error) {
	return f.ids, f.err
}

func TestHandler_DebugTemplates(t *testing.T) {
	tests := map[string]struct {
		templates fakeTemplates

		expLast string
		expErr  string
	}{
		"lists templates": {
			templates: fakeTemplates{ids: []string{"food_burger", "weapon_pistol"}},
			expLast:   "Templates: food_burger, weapon_pistol",
		},
		"empty catalog": {
			templates: fakeTemplates{},
			expLast:   "Templates: none",
		},
		"catalog failure": {
			templates: fakeTemplates{err: errors.New("store offline")},
			expErr:    "Something went wrong with debug.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, err := NewHandler(&fakeOps{char: testChar()}, WithTemplates(tt.templates))
			if err != nil {
				t.Fatalf("unexpected error creating handler: %v", err)
			}

			reply := h.Exec(context.Background(), "alice", Request{Type: game.RequestDebug})

			if tt.expErr != "" {
				testutil.AssertEqual(t, "ok", reply.Ok, false)
				testutil.AssertEqual(t, "kind", reply.Kind, game.KindInternal)
				testutil.AssertEqual(t, "error", reply.Error, tt.expErr)
				return
			}
			lines, ok := reply.Data.([]string)
			if !ok {
				t.Fatalf("expected []string, got %T", reply.Data)
			}
			testutil.AssertEqual(t, "last line", lines[len(lines)-1], tt.expLast)
		})
	}
}

func TestHandler_Rejections(t *testing.T) {
	tests := map[string]struct {
		req      Request
		err      error
		expKind  string
		expError string
	}{
		"unknown request": {
			req:      Request{Type: "inventory:dance"},
			expKind:  KindInvalidRequest,
			expError: "Unknown request: inventory:dance",
		},
		"missing payload": {
			req:      Request{Type: game.RequestSplitItems},
			expKind:  KindInvalidRequest,
			expError: "Request payload is missing.",
		},
		"malformed payload": {
			req:      Request{Type: game.RequestSplitItems, Payload: json.RawMessage(`{"quantity":"two"}`)},
			expKind:  KindInvalidRequest,
			expError: "Request payload is malformed",
		},
		"add without template": {
			req:      Request{Type: game.RequestAddItem, Payload: json.RawMessage(`{"quantity":1}`)},
			expKind:  KindInvalidRequest,
			expError: "An item template is required.",
		},
		"engine rejection": {
			req:      Request{Type: game.RequestSplitItems, Payload: json.RawMessage(`{"instance_id":"a","quantity":9}`)},
			err:      fmt.Errorf("%w: split 9 of 3", game.ErrInvalidQuantity),
			expKind:  game.KindInvalidQuantity,
			expError: "That quantity is not valid.",
		},
		"type mismatch": {
			req:      Request{Type: game.RequestEquipItem, Payload: json.RawMessage(`{"instance_id":"c","slot_id":"body_armors"}`)},
			err:      fmt.Errorf("%w: hat in body armor", game.ErrTypeMismatch),
			expKind:  game.KindTypeMismatch,
			expError: "That item does not fit in that slot.",
		},
		"conservation violation": {
			req:      Request{Type: game.RequestSwapItems, Payload: json.RawMessage(`{"from":0,"to":1}`)},
			err:      fmt.Errorf("%w: quantity changed by 1", game.ErrConservationViolation),
			expKind:  game.KindConservationViolation,
			expError: "Your inventory did not add up",
		},
		"persistence": {
			req:      Request{Type: game.RequestClear},
			err:      fmt.Errorf("%w: saving alice: disk full", game.ErrPersistence),
			expKind:  game.KindPersistence,
			expError: "could not be saved",
		},
		"unknown error": {
			req:      Request{Type: game.RequestSwapItems, Payload: json.RawMessage(`{"from":0,"to":1}`)},
			err:      errors.New("boom"),
			expKind:  game.KindInternal,
			expError: "Something went wrong with swap items.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler(t, &fakeOps{char: testChar(), err: tt.err})

			reply := h.Exec(context.Background(), "alice", tt.req)

			testutil.AssertEqual(t, "ok", reply.Ok, false)
			testutil.AssertEqual(t, "kind", reply.Kind, tt.expKind)
			testutil.AssertErrorContains(t, errors.New(reply.Error), tt.expError)
			if reply.Data != nil {
				t.Errorf("expected no data, got %v", reply.Data)
			}
		})
	}
}

func TestHandler_RegisterHandler(t *testing.T) {
	noop := func(context.Context, string, json.RawMessage) (any, error) { return nil, nil }

	tests := map[string]struct {
		name   string
		fn     CommandFunc
		expErr string
	}{
		"empty name": {
			fn:     noop,
			expErr: "handler name cannot be empty",
		},
		"nil func": {
			name:   "inventory:noop",
			expErr: "handler func cannot be nil",
		},
		"duplicate": {
			name:   game.RequestUseItem,
			fn:     noop,
			expErr: `handler "inventory:use-item" already registered`,
		},
		"new": {
			name: "inventory:noop",
			fn:   noop,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler(t, &fakeOps{})

			err := h.RegisterHandler(tt.name, tt.fn)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			reply := h.Exec(context.Background(), "alice", Request{Type: tt.name})
			testutil.AssertEqual(t, "ok", reply.Ok, true)
		})
	}
}

func TestHandler_WithMessages(t *testing.T) {
	h, err := NewHandler(&fakeOps{err: game.ErrCapacityExceeded}, WithMessages(map[string]string{
		game.KindCapacityExceeded: `{{ .Request | trimPrefix "inventory:" | upper }} failed: your bags are full.`,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply := h.Exec(context.Background(), "alice", Request{Type: game.RequestAddItem, Payload: json.RawMessage(`{"template_id":"rock","quantity":1}`)})

	testutil.AssertEqual(t, "error", reply.Error, "ADD-ITEM failed: your bags are full.")
}

func TestNewHandler_BadMessage(t *testing.T) {
	_, err := NewHandler(&fakeOps{}, WithMessages(map[string]string{
		game.KindNotFound: "{{ .Request",
	}))

	testutil.AssertErrorContains(t, err, `message "not_found"`)
}
