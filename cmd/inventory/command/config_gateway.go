package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/listener"
	"github.com/pixil98/go-inventory/internal/messaging"
)

// GatewayConfig configures the websocket gateway. It is disabled when Port
// is zero, leaving NATS as the only transport.
type GatewayConfig struct {
	Port      uint16 `json:"port"`
	JwtSecret string `json:"jwt_secret"`
}

func (c *GatewayConfig) enabled() bool {
	return c.Port != 0
}

func (c *GatewayConfig) validate() error {
	if !c.enabled() {
		return nil
	}

	el := errors.NewErrorList()
	if len(c.JwtSecret) < 16 {
		el.Add(fmt.Errorf("gateway: jwt_secret must be at least 16 characters"))
	}
	return el.Err()
}

func (c *GatewayConfig) buildListener(bus listener.Subscriber, exec messaging.Executor, sessions messaging.Sessions) *listener.WebsocketListener {
	return listener.NewWebsocketListener(c.Port, c.JwtSecret, bus, exec, sessions)
}
