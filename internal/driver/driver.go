package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is housekeeping that runs once per tick, such as evicting idle
// player sessions.
type Manager interface {
	Tick(context.Context) error
}

type Driver struct {
	tickLength time.Duration
	managers   map[string]Manager
}

func NewDriver(managers map[string]Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks every manager until ctx is done. A failing manager is logged
// and retried on the next tick.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				slog.WarnContext(ctx, "driver tick", "error", err)
			}
		}
	}
}

// Tick runs every manager once, even if an earlier one fails.
func (d *Driver) Tick(ctx context.Context) error {
	el := errors.NewErrorList()
	for name, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			el.Add(fmt.Errorf("ticking %s: %w", name, err))
		}
	}
	return el.Err()
}
