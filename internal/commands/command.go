package commands

import (
	"encoding/json"
)

// Request is the inbound envelope sent by the presentation layer.
type Request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Reply answers every request. Kind is empty on success and otherwise holds
// a stable error kind clients can branch on; Error is the player-facing text.
type Reply struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Request payloads

type InstanceArgs struct {
	InstanceId string `json:"instance_id"`
}

type StackArgs struct {
	TargetId string `json:"target_id"`
	SourceId string `json:"source_id"`
}

type SplitArgs struct {
	InstanceId string `json:"instance_id"`
	Quantity   int    `json:"quantity"`
}

type SwapArgs struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type ToolbarAssignArgs struct {
	InstanceId string `json:"instance_id"`
	Slot       int    `json:"slot"`
}

type SlotArgs struct {
	Slot int `json:"slot"`
}

type EquipArgs struct {
	InstanceId string `json:"instance_id"`
	SlotId     string `json:"slot_id"`
}

type EquipSlotArgs struct {
	SlotId string `json:"slot_id"`
}

type EquipSwapArgs struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type AddItemArgs struct {
	TemplateId string `json:"template_id"`
	Quantity   int    `json:"quantity"`
}

// RemoveItemArgs names either an instance id or a template id in Ref.
type RemoveItemArgs struct {
	Ref      string `json:"ref"`
	Quantity int    `json:"quantity"`
}
