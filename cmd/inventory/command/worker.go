package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-inventory/internal/broadcast"
	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/driver"
	"github.com/pixil98/go-inventory/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Storage
	chars, err := cfg.Storage.Characters.buildStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}
	itemStore, err := cfg.Storage.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	items := catalog.New(itemStore)
	if err := items.Seed(context.Background(), catalog.Builtin()); err != nil {
		return nil, fmt.Errorf("seeding item catalog: %w", err)
	}

	// Messaging
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	limits := cfg.Inventory.limits()
	bc := broadcast.New(messaging.NewNatsPublisher(nats), limits.MaxSlots, limits.ToolbarSlots)

	// Sessions
	pm, err := cfg.Sessions.buildPlayerManager(cfg.Inventory.buildEngine(), chars, items, bc)
	if err != nil {
		return nil, fmt.Errorf("creating player manager: %w", err)
	}

	handler, err := cfg.Messages.buildHandler(pm, items)
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}

	drv := driver.NewDriver(map[string]driver.Manager{
		"sessions": pm,
	}, driver.WithTickLength(cfg.tickInterval()))

	workers := service.WorkerList{
		"nats":     nats,
		"sessions": pm,
		"router":   messaging.NewRouter(nats, handler, pm),
		"driver":   drv,
	}
	if cfg.Gateway.enabled() {
		workers["gateway"] = cfg.Gateway.buildListener(nats, handler, pm)
	}

	return workers, nil
}
