package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/broadcast"
	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/engine"
	"github.com/pixil98/go-inventory/internal/game"
	"github.com/pixil98/go-inventory/internal/player"
	"github.com/pixil98/go-inventory/internal/storage"
)

type SessionsConfig struct {
	IdleTimeout string `json:"idle_timeout"`
	QueueSize   int    `json:"queue_size"`
}

func (c *SessionsConfig) validate() error {
	el := errors.NewErrorList()

	if c.IdleTimeout != "" {
		d, err := time.ParseDuration(c.IdleTimeout)
		if err != nil {
			el.Add(fmt.Errorf("sessions: parsing idle_timeout: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("sessions: idle_timeout must be positive"))
		}
	}
	if c.QueueSize < 0 {
		el.Add(fmt.Errorf("sessions: queue_size must not be negative"))
	}

	return el.Err()
}

func (c *SessionsConfig) buildPlayerManager(
	e *engine.Engine,
	chars storage.Storer[*game.Character],
	items *catalog.Catalog,
	bc *broadcast.Broadcaster,
) (*player.PlayerManager, error) {
	var opts []player.PlayerManagerOpt
	if c.IdleTimeout != "" {
		d, err := time.ParseDuration(c.IdleTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing idle_timeout: %w", err)
		}
		opts = append(opts, player.WithIdleTimeout(d))
	}
	if c.QueueSize != 0 {
		opts = append(opts, player.WithQueueSize(c.QueueSize))
	}

	return player.NewPlayerManager(e, chars, items, bc, opts...), nil
}
