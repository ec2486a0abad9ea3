package commands

import (
	"context"
	"encoding/json"

	"github.com/pixil98/go-inventory/internal/broadcast"
)

func (h *Handler) assignToToolbar(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[ToolbarAssignArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.AssignToToolbar(ctx, playerId, args.InstanceId, args.Slot)
	return nil, err
}

func (h *Handler) removeFromToolbar(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[SlotArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.RemoveFromToolbar(ctx, playerId, args.Slot)
	return nil, err
}

func (h *Handler) swapToolbarItems(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[SwapArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.SwapToolbarItems(ctx, playerId, args.From, args.To)
	return nil, err
}

func (h *Handler) getToolbar(ctx context.Context, playerId string, _ json.RawMessage) (any, error) {
	c, err := h.ops.Refresh(ctx, playerId, broadcast.Toolbar)
	if err != nil {
		return nil, err
	}
	return c.Toolbar, nil
}
