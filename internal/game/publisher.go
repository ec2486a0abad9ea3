package game

// Publisher provides methods for publishing messages out of the service.
type Publisher interface {
	// PublishToPlayer delivers data to every client bound to the player
	PublishToPlayer(playerId string, data []byte) error
	// PublishEffect hands a use effect to whichever system implements it
	PublishEffect(effect string, data []byte) error
}
