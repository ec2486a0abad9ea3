package game

// Outbound snapshot events.
const (
	EventUpdateItems     = "inventory:update-items"
	EventUpdateToolbar   = "inventory:update-toolbar"
	EventUpdateEquipment = "inventory:update-equipment"
)

// Inbound requests from the presentation layer.
const (
	RequestUseItem           = "inventory:use-item"
	RequestItems             = "inventory:request-items"
	RequestStackItems        = "inventory:stack-items"
	RequestSplitItems        = "inventory:split-items"
	RequestSwapItems         = "inventory:swap-items"
	RequestAssignToToolbar   = "inventory:assign-to-toolbar"
	RequestRemoveFromToolbar = "inventory:remove-from-toolbar"
	RequestSwapToolbarItems  = "inventory:swap-toolbar-items"
	RequestEquipItem         = "inventory:equip-item"
	RequestUnequipItem       = "inventory:unequip-item"
	RequestSwapEquipment     = "inventory:swap-equipment"
	RequestGetToolbar        = "inventory:get-toolbar"
	RequestGetEquipment      = "inventory:get-equipment"

	// Admin and diagnostic requests
	RequestAddItem      = "inventory:add-item"
	RequestRemoveItem   = "inventory:remove-item"
	RequestClear        = "inventory:clear"
	RequestDebug        = "inventory:debug"
	RequestWeightStatus = "inventory:weight-status"
)

// Envelope is the wire form of every outbound event.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// EffectEvent is published when a used item names a use effect.
type EffectEvent struct {
	PlayerId string `json:"player_id"`
	Item     *Item  `json:"item"`
}
