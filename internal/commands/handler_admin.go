package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-inventory/internal/display"
)

func (h *Handler) addItem(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[AddItemArgs](payload)
	if err != nil {
		return nil, err
	}
	if args.TemplateId == "" {
		return nil, NewUserError("An item template is required.")
	}
	_, err = h.ops.AddItem(ctx, playerId, args.TemplateId, args.Quantity)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Added %s x%d to inventory.", args.TemplateId, args.Quantity), nil
}

func (h *Handler) removeItem(ctx context.Context, playerId string, payload json.RawMessage) (any, error) {
	args, err := decode[RemoveItemArgs](payload)
	if err != nil {
		return nil, err
	}
	_, err = h.ops.RemoveItem(ctx, playerId, args.Ref, args.Quantity)
	return nil, err
}

func (h *Handler) clear(ctx context.Context, playerId string, _ json.RawMessage) (any, error) {
	_, err := h.ops.ClearInventory(ctx, playerId)
	return nil, err
}

func (h *Handler) debug(ctx context.Context, playerId string, _ json.RawMessage) (any, error) {
	c, err := h.ops.Refresh(ctx, playerId, 0)
	if err != nil {
		return nil, err
	}
	status, err := h.ops.WeightStatus(ctx, playerId)
	if err != nil {
		return nil, err
	}
	lines := display.Inventory(c, status)
	if h.templates == nil {
		return lines, nil
	}
	ids, err := h.templates.Ids(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return append(lines, display.Templates(ids)...), nil
}

func (h *Handler) weightStatus(ctx context.Context, playerId string, _ json.RawMessage) (any, error) {
	status, err := h.ops.WeightStatus(ctx, playerId)
	if err != nil {
		return nil, err
	}
	return status, nil
}
