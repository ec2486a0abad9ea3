package messaging

const (
	SubjectUpdatePrefix  = "inventory.updates."
	SubjectEffectPrefix  = "inventory.effects."
	SubjectRequestPrefix = "inventory.requests."
	SubjectRequests      = SubjectRequestPrefix + "*"
	SubjectBind          = "inventory.sessions.bind"
	SubjectUnbind        = "inventory.sessions.unbind"
)

// UpdateSubject is where snapshots for a player are published.
func UpdateSubject(playerId string) string {
	return SubjectUpdatePrefix + playerId
}

// EffectSubject is where uses of items with the given effect are published.
func EffectSubject(effect string) string {
	return SubjectEffectPrefix + effect
}

// RequestSubject is where requests on behalf of a player are sent.
func RequestSubject(playerId string) string {
	return SubjectRequestPrefix + playerId
}

// Broker is the publish side of the message bus.
type Broker interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher publishes messages to individual player NATS channels.
type NatsPublisher struct {
	broker Broker
}

// NewNatsPublisher wraps a NatsServer for per-player message delivery.
func NewNatsPublisher(broker Broker) *NatsPublisher {
	return &NatsPublisher{broker: broker}
}

func (p *NatsPublisher) PublishToPlayer(playerId string, data []byte) error {
	return p.broker.Publish(UpdateSubject(playerId), data)
}

func (p *NatsPublisher) PublishEffect(effect string, data []byte) error {
	return p.broker.Publish(EffectSubject(effect), data)
}
