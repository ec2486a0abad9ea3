package commands

import (
	"context"
	"encoding/json"

	"github.com/pixil98/go-inventory/internal/broadcast"
)

func (h *Handler) equipItem(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[EquipArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.EquipItem(ctx, playerId, args.InstanceId, args.SlotId)
	return nil, err
}

func (h *Handler) unequipItem(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[EquipSlotArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.UnequipItem(ctx, playerId, args.SlotId)
	return nil, err
}

func (h *Handler) swapEquipment(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[EquipSwapArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.SwapEquipment(ctx, playerId, args.From, args.To)
	return nil, err
}

func (h *Handler) getEquipment(ctx context.Context, playerId string, _ json.RawMessage) (any, error) {
	c, err := h.ops.Refresh(ctx, playerId, broadcast.Equipment)
	if err != nil {
		return nil, err
	}
	return c.Equipment, nil
}
