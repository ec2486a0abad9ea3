package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-inventory/internal/broadcast"
	"github.com/pixil98/go-inventory/internal/engine"
	"github.com/pixil98/go-inventory/internal/game"
	"github.com/pixil98/go-inventory/internal/storage"
)

const (
	DefaultQueueSize   = 32
	DefaultIdleTimeout = 30 * time.Minute
)

// Catalog resolves template ids to item templates.
type Catalog interface {
	GetBaseItem(ctx context.Context, templateId string) (*game.Template, error)
}

// PlayerManager routes every operation for a player through that player's
// session so a document only ever has one writer.
type PlayerManager struct {
	engine  *engine.Engine
	chars   storage.Storer[*game.Character]
	catalog Catalog
	bc      *broadcast.Broadcaster

	queueSize   int
	idleTimeout time.Duration
	now         func() time.Time

	mu      sync.Mutex
	players map[string]*Player
}

func NewPlayerManager(e *engine.Engine, chars storage.Storer[*game.Character], catalog Catalog, bc *broadcast.Broadcaster, opts ...PlayerManagerOpt) *PlayerManager {
	pm := &PlayerManager{
		engine:      e,
		chars:       chars,
		catalog:     catalog,
		bc:          bc,
		queueSize:   DefaultQueueSize,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		players:     map[string]*Player{},
	}

	for _, opt := range opts {
		opt(pm)
	}

	return pm
}

func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()

	m.mu.Lock()
	players := m.players
	m.players = map[string]*Player{}
	m.mu.Unlock()

	for _, p := range players {
		p.close(ctx)
	}
	slog.InfoContext(ctx, "player sessions stopped", "count", len(players))
	return nil
}

// Tick closes sessions that have been idle longer than the idle timeout.
func (m *PlayerManager) Tick(ctx context.Context) error {
	now := m.now()

	var idle []*Player
	m.mu.Lock()
	for id, p := range m.players {
		if p.idleSince(now) > m.idleTimeout {
			idle = append(idle, p)
			delete(m.players, id)
		}
	}
	m.mu.Unlock()

	for _, p := range idle {
		p.close(ctx)
		slog.InfoContext(ctx, "idle player session evicted", "player", p.Id())
	}
	return nil
}

// Sessions returns the number of live player sessions.
func (m *PlayerManager) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.players)
}

func (m *PlayerManager) player(playerId string) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if p, ok := m.players[playerId]; ok {
		p.touch(now)
		return p
	}

	p := newPlayer(playerId, m.queueSize, now)
	m.players[playerId] = p
	go p.run()
	return p
}

// do runs fn on the player's session, starting one if needed.
func (m *PlayerManager) do(ctx context.Context, playerId string, fn func(context.Context) error) error {
	if err := storage.ValidateIdentifier(playerId); err != nil {
		return fmt.Errorf("%w: player %w", game.ErrNotFound, err)
	}

	err := m.player(playerId).submit(ctx, fn)
	if errors.Is(err, ErrSessionClosed) {
		// Evicted between lookup and submit; a fresh session picks it up
		err = m.player(playerId).submit(ctx, fn)
	}
	return err
}

// load fetches the latest document, creating an empty one for new players.
func (m *PlayerManager) load(ctx context.Context, playerId string) (*game.Character, error) {
	c, err := m.chars.Get(ctx, playerId)
	if errors.Is(err, storage.ErrNotFound) {
		return game.NewCharacter(m.engine.Limits().MaxSlots), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", game.ErrPersistence, playerId, err)
	}
	w := c.Clone()
	w.Items.Grow(m.engine.Limits().MaxSlots)
	return w, nil
}

func (m *PlayerManager) save(ctx context.Context, playerId string, c *game.Character) error {
	if err := m.chars.Save(ctx, playerId, c); err != nil {
		return fmt.Errorf("%w: saving %s: %w", game.ErrPersistence, playerId, err)
	}
	return nil
}

func (m *PlayerManager) send(ctx context.Context, playerId string, c *game.Character, targets broadcast.Target) {
	if err := m.bc.Send(ctx, playerId, c, targets); err != nil {
		slog.WarnContext(ctx, "broadcasting snapshot", "player", playerId, "error", err)
	}
}

// mutate loads the document, applies fn to a working copy, persists it and
// broadcasts the selected containers. Nothing is saved or broadcast if fn or
// the save fails.
func (m *PlayerManager) mutate(ctx context.Context, playerId string, targets broadcast.Target, fn func(context.Context, *game.Character) error) (*game.Character, error) {
	var out *game.Character
	err := m.do(ctx, playerId, func(ctx context.Context) error {
		c, err := m.load(ctx, playerId)
		if err != nil {
			return err
		}
		if err := fn(ctx, c); err != nil {
			return err
		}
		if err := m.save(ctx, playerId, c); err != nil {
			return err
		}
		m.send(ctx, playerId, c, targets)
		out = c.Clone()
		return nil
	})
	return out, err
}

// Bind prepares a player's session: the toolbar and equipment are created if
// missing and every container snapshot is sent.
func (m *PlayerManager) Bind(ctx context.Context, playerId string) error {
	err := m.do(ctx, playerId, func(ctx context.Context) error {
		c, err := m.load(ctx, playerId)
		if err != nil {
			return err
		}
		toolbar := m.engine.InitToolbar(c)
		equipment := m.engine.InitEquipment(c)
		if toolbar || equipment {
			if err := m.save(ctx, playerId, c); err != nil {
				return err
			}
		}
		m.send(ctx, playerId, c, broadcast.All)
		return nil
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "player bound", "player", playerId)
	return nil
}

// Unbind stops the player's session. Work still queued is abandoned.
func (m *PlayerManager) Unbind(ctx context.Context, playerId string) {
	m.mu.Lock()
	p, ok := m.players[playerId]
	delete(m.players, playerId)
	m.mu.Unlock()

	if ok {
		p.close(ctx)
		slog.InfoContext(ctx, "player unbound", "player", playerId)
	}
}

// Refresh sends the selected container snapshots without changing anything.
func (m *PlayerManager) Refresh(ctx context.Context, playerId string, targets broadcast.Target) (*game.Character, error) {
	var out *game.Character
	err := m.do(ctx, playerId, func(ctx context.Context) error {
		c, err := m.load(ctx, playerId)
		if err != nil {
			return err
		}
		// Show the slot layout a bound session would have without persisting it
		m.engine.InitToolbar(c)
		m.engine.InitEquipment(c)
		m.send(ctx, playerId, c, targets)
		out = c
		return nil
	})
	return out, err
}

// Snapshot returns a copy of the player's current document.
func (m *PlayerManager) Snapshot(ctx context.Context, playerId string) (*game.Character, error) {
	var out *game.Character
	err := m.do(ctx, playerId, func(ctx context.Context) error {
		c, err := m.load(ctx, playerId)
		out = c
		return err
	})
	return out, err
}
