package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-inventory/internal/commands"
	"github.com/pixil98/go-inventory/internal/game"
)

// Executor runs a request on behalf of a player.
type Executor interface {
	Exec(ctx context.Context, playerId string, req commands.Request) commands.Reply
}

// Sessions binds and releases player sessions.
type Sessions interface {
	Bind(ctx context.Context, playerId string) error
	Unbind(ctx context.Context, playerId string)
}

// Bus is the subscribe side of the message bus.
type Bus interface {
	WaitReady(ctx context.Context) error
	Serve(subject string, handler func(subject string, data []byte) []byte) (func(), error)
}

// SessionMessage is the payload of bind and unbind messages.
type SessionMessage struct {
	PlayerId string `json:"player_id"`
}

// Router feeds requests and session changes arriving over the bus into the
// player sessions.
type Router struct {
	bus      Bus
	exec     Executor
	sessions Sessions
}

func NewRouter(bus Bus, exec Executor, sessions Sessions) *Router {
	return &Router{bus: bus, exec: exec, sessions: sessions}
}

func (r *Router) Start(ctx context.Context) error {
	if err := r.bus.WaitReady(ctx); err != nil {
		// Shut down before the bus came up
		return nil
	}

	routes := map[string]func(subject string, data []byte) []byte{
		SubjectRequests: func(subject string, data []byte) []byte { return r.handleRequest(ctx, subject, data) },
		SubjectBind:     func(_ string, data []byte) []byte { return r.handleBind(ctx, data) },
		SubjectUnbind:   func(_ string, data []byte) []byte { return r.handleUnbind(ctx, data) },
	}

	var unsubs []func()
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()
	for subject, fn := range routes {
		unsub, err := r.bus.Serve(subject, fn)
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		unsubs = append(unsubs, unsub)
	}

	slog.InfoContext(ctx, "request router listening", "subject", SubjectRequests)
	<-ctx.Done()
	return nil
}

func (r *Router) handleRequest(ctx context.Context, subject string, data []byte) []byte {
	playerId := strings.TrimPrefix(subject, SubjectRequestPrefix)

	var req commands.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return encodeReply(commands.Reply{Error: "Request is malformed.", Kind: commands.KindInvalidRequest})
	}
	return encodeReply(r.exec.Exec(ctx, playerId, req))
}

func (r *Router) handleBind(ctx context.Context, data []byte) []byte {
	var msg SessionMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.PlayerId == "" {
		return encodeReply(commands.Reply{Error: "A player id is required.", Kind: commands.KindInvalidRequest})
	}
	if err := r.sessions.Bind(ctx, msg.PlayerId); err != nil {
		slog.WarnContext(ctx, "binding player session", "player", msg.PlayerId, "error", err)
		return encodeReply(commands.Reply{Error: err.Error(), Kind: game.KindOf(err)})
	}
	return encodeReply(commands.Reply{Ok: true})
}

func (r *Router) handleUnbind(ctx context.Context, data []byte) []byte {
	var msg SessionMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.PlayerId == "" {
		return encodeReply(commands.Reply{Error: "A player id is required.", Kind: commands.KindInvalidRequest})
	}
	r.sessions.Unbind(ctx, msg.PlayerId)
	return encodeReply(commands.Reply{Ok: true})
}

func encodeReply(reply commands.Reply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		// Data that cannot be encoded still gets an answer
		data, _ = json.Marshal(commands.Reply{Error: "Reply could not be encoded.", Kind: game.KindInternal})
	}
	return data
}
