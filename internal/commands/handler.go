package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-inventory/internal/broadcast"
	"github.com/pixil98/go-inventory/internal/engine"
	"github.com/pixil98/go-inventory/internal/game"
)

// KindInvalidRequest is reported for requests that never reach the engine:
// unknown types and malformed payloads.
const KindInvalidRequest = "invalid_request"

// Operations is the per-player work a request can trigger.
type Operations interface {
	AddItem(ctx context.Context, playerId, templateId string, quantity int) (*game.Character, error)
	RemoveItem(ctx context.Context, playerId, ref string, quantity int) (*game.Character, error)
	StackItems(ctx context.Context, playerId, targetId, sourceId string) (*game.Character, error)
	SplitItems(ctx context.Context, playerId, instanceId string, quantity int) (*game.Item, error)
	SwapItems(ctx context.Context, playerId string, a, b int) (*game.Character, error)
	UseItem(ctx context.Context, playerId, instanceId string) (*game.Item, error)
	ClearInventory(ctx context.Context, playerId string) (*game.Character, error)
	AssignToToolbar(ctx context.Context, playerId, instanceId string, slot int) (*game.Character, error)
	RemoveFromToolbar(ctx context.Context, playerId string, slot int) (*game.Character, error)
	SwapToolbarItems(ctx context.Context, playerId string, a, b int) (*game.Character, error)
	EquipItem(ctx context.Context, playerId, instanceId, slotId string) (*game.Character, error)
	UnequipItem(ctx context.Context, playerId, slotId string) (*game.Character, error)
	SwapEquipment(ctx context.Context, playerId, a, b string) (*game.Character, error)
	Refresh(ctx context.Context, playerId string, targets broadcast.Target) (*game.Character, error)
	WeightStatus(ctx context.Context, playerId string) (engine.WeightStatus, error)
}

// CommandFunc runs one request for a player. The returned value becomes the
// reply's data.
type CommandFunc func(ctx context.Context, playerId string, payload json.RawMessage) (any, error)

type Handler struct {
	ops       Operations
	handlers  map[string]CommandFunc
	messages  map[string]string
	reasons   *Reasons
	templates TemplateLister
}

func NewHandler(ops Operations, opts ...HandlerOpt) (*Handler, error) {
	h := &Handler{
		ops:      ops,
		handlers: make(map[string]CommandFunc),
		messages: DefaultMessages(),
	}

	for _, opt := range opts {
		opt(h)
	}

	reasons, err := NewReasons(h.messages)
	if err != nil {
		return nil, fmt.Errorf("compiling messages: %w", err)
	}
	h.reasons = reasons

	// Register built-in handlers
	for name, fn := range map[string]CommandFunc{
		game.RequestItems:             h.requestItems,
		game.RequestStackItems:        h.stackItems,
		game.RequestSplitItems:        h.splitItems,
		game.RequestSwapItems:         h.swapItems,
		game.RequestUseItem:           h.useItem,
		game.RequestAssignToToolbar:   h.assignToToolbar,
		game.RequestRemoveFromToolbar: h.removeFromToolbar,
		game.RequestSwapToolbarItems:  h.swapToolbarItems,
		game.RequestGetToolbar:        h.getToolbar,
		game.RequestEquipItem:         h.equipItem,
		game.RequestUnequipItem:       h.unequipItem,
		game.RequestSwapEquipment:     h.swapEquipment,
		game.RequestGetEquipment:      h.getEquipment,
		game.RequestAddItem:           h.addItem,
		game.RequestRemoveItem:        h.removeItem,
		game.RequestClear:             h.clear,
		game.RequestDebug:             h.debug,
		game.RequestWeightStatus:      h.weightStatus,
	} {
		if err := h.RegisterHandler(name, fn); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// RegisterHandler registers a command function by request type.
func (h *Handler) RegisterHandler(name string, fn CommandFunc) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("handler func cannot be nil")
	}
	if _, exists := h.handlers[name]; exists {
		return fmt.Errorf("handler %q already registered", name)
	}
	h.handlers[name] = fn
	return nil
}

// Exec runs a request for a player and always produces a reply. Errors are
// turned into a player-facing reason; nothing here ends the session.
func (h *Handler) Exec(ctx context.Context, playerId string, req Request) Reply {
	fn, ok := h.handlers[req.Type]
	if !ok {
		return h.reject(ctx, playerId, req, NewUserError(fmt.Sprintf("Unknown request: %s", req.Type)))
	}

	data, err := fn(ctx, playerId, req.Payload)
	if err != nil {
		return h.reject(ctx, playerId, req, err)
	}
	return Reply{Ok: true, Data: data}
}

func (h *Handler) reject(ctx context.Context, playerId string, req Request, err error) Reply {
	var userErr *UserError
	if errors.As(err, &userErr) {
		slog.DebugContext(ctx, "request refused", "player", playerId, "request", req.Type, "error", err)
		return Reply{Error: userErr.Message, Kind: userErr.Kind}
	}

	kind := game.KindOf(err)
	switch kind {
	case game.KindConservationViolation:
		slog.ErrorContext(ctx, "inventory integrity check failed", "player", playerId, "request", req.Type, "error", err)
	case game.KindPersistence:
		slog.WarnContext(ctx, "inventory change not persisted", "player", playerId, "request", req.Type, "error", err)
	case game.KindInternal:
		slog.ErrorContext(ctx, "request failed", "player", playerId, "request", req.Type, "error", err)
	default:
		slog.DebugContext(ctx, "request rejected", "player", playerId, "request", req.Type, "kind", kind, "error", err)
	}

	return Reply{
		Error: h.reasons.Render(kind, ReasonContext{Request: req.Type, Kind: kind, Detail: err.Error()}),
		Kind:  kind,
	}
}

// decode unmarshals a request payload, reporting problems as user errors.
func decode[T any](payload json.RawMessage) (T, error) {
	var args T
	if len(payload) == 0 {
		return args, NewUserError("Request payload is missing.")
	}
	if err := json.Unmarshal(payload, &args); err != nil {
		return args, NewUserError(fmt.Sprintf("Request payload is malformed: %v", err))
	}
	return args, nil
}
