package commands

import (
	"context"
	"encoding/json"

	"github.com/pixil98/go-inventory/internal/broadcast"
)

func (h *Handler) requestItems(ctx context.Context, playerId string, _ json.RawMessage) (any, error) {
	c, err := h.ops.Refresh(ctx, playerId, broadcast.Items)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

func (h *Handler) stackItems(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[StackArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.StackItems(ctx, playerId, args.TargetId, args.SourceId)
	return nil, err
}

func (h *Handler) splitItems(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[SplitArgs](payload)
	if err != nil {
		return nil, err
	}
	created, err := h.ops.SplitItems(ctx, playerId, args.InstanceId, args.Quantity)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (h *Handler) swapItems(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[SwapArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.SwapItems(ctx, playerId, args.From, args.To)
	return nil, err
}

func (h *Handler) useItem(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[InstanceArgs](payload)
	if err != nil {
		return nil, err
	}
	used, err := h.ops.UseItem(ctx, playerId, args.InstanceId)
	if err != nil {
		return nil, err
	}
	return used, nil
}
