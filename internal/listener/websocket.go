package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-inventory/internal/auth"
	"github.com/pixil98/go-inventory/internal/commands"
	"github.com/pixil98/go-inventory/internal/messaging"
)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second

	ReplyType = "inventory:reply"
)

// Subscriber delivers messages published on a subject.
type Subscriber interface {
	WaitReady(ctx context.Context) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// ReplyMessage wraps a request reply so clients can tell it apart from
// snapshot events on the same socket.
type ReplyMessage struct {
	Type    string         `json:"type"`
	Request string         `json:"request"`
	Payload commands.Reply `json:"payload"`
}

// WebsocketListener is the presentation-layer gateway. Each connection is
// authenticated with a token, bound to the player's session and then relays
// snapshot events out and request envelopes in.
type WebsocketListener struct {
	port     uint16
	secret   string
	bus      Subscriber
	exec     messaging.Executor
	sessions messaging.Sessions
	upgrader websocket.Upgrader

	wg sync.WaitGroup
}

func NewWebsocketListener(port uint16, secret string, bus Subscriber, exec messaging.Executor, sessions messaging.Sessions) *WebsocketListener {
	return &WebsocketListener{
		port:     port,
		secret:   secret,
		bus:      bus,
		exec:     exec,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	if err := l.bus.WaitReady(ctx); err != nil {
		// Shut down before the bus came up
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", l.Handler(ctx))

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := svr.Shutdown(shutdownCtx); err != nil {
				slog.WarnContext(ctx, "websocket gateway shutdown", "error", err)
			}
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "websocket gateway listening", "port", l.port)
	err := svr.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket gateway on port %d: %w", l.port, err)
	}

	// Hijacked connections are not tracked by Shutdown
	l.wg.Wait()
	return nil
}

// Handler returns the http handler for gateway connections. Connections end
// when ctx does.
func (l *WebsocketListener) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerId, err := auth.ValidateToken(l.secret, r.URL.Query().Get("token"))
		if err != nil {
			slog.DebugContext(ctx, "gateway connection refused", "remote", r.RemoteAddr, "error", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.WarnContext(ctx, "websocket upgrade failed", "player", playerId, "error", err)
			return
		}

		l.wg.Add(1)
		defer l.wg.Done()
		l.serve(ctx, playerId, conn)
	})
}

func (l *WebsocketListener) serve(ctx context.Context, playerId string, conn *websocket.Conn) {
	s := &connSession{conn: conn}
	defer s.close()

	// Subscribe before binding so the initial snapshots are not missed
	unsub, err := l.bus.Subscribe(messaging.UpdateSubject(playerId), func(data []byte) {
		if err := s.write(data); err != nil {
			slog.DebugContext(ctx, "relaying snapshot", "player", playerId, "error", err)
		}
	})
	if err != nil {
		slog.WarnContext(ctx, "subscribing to player updates", "player", playerId, "error", err)
		s.closeWith(websocket.CloseInternalServerErr, "updates unavailable")
		return
	}
	defer unsub()

	if err := l.sessions.Bind(ctx, playerId); err != nil {
		slog.WarnContext(ctx, "binding player session", "player", playerId, "error", err)
		s.closeWith(websocket.CloseInternalServerErr, "session unavailable")
		return
	}
	defer l.sessions.Unbind(context.WithoutCancel(ctx), playerId)

	stop := context.AfterFunc(ctx, func() {
		s.closeWith(websocket.CloseGoingAway, "server shutting down")
	})
	defer stop()

	slog.InfoContext(ctx, "gateway connection opened", "player", playerId)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			slog.InfoContext(ctx, "gateway connection closed", "player", playerId, "reason", err)
			return
		}

		var req commands.Request
		if err := json.Unmarshal(payload, &req); err != nil {
			slog.DebugContext(ctx, "discarding malformed message", "player", playerId, "error", err)
			continue
		}

		reply := l.exec.Exec(ctx, playerId, req)
		data, err := json.Marshal(ReplyMessage{Type: ReplyType, Request: req.Type, Payload: reply})
		if err != nil {
			slog.WarnContext(ctx, "encoding reply", "player", playerId, "error", err)
			continue
		}
		if err := s.write(data); err != nil {
			return
		}
	}
}

// connSession serialises writes; gorilla connections allow one writer at a time.
type connSession struct {
	mu   sync.Mutex
	conn *websocket.Conn
	once sync.Once
}

func (s *connSession) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *connSession) closeWith(code int, reason string) {
	s.mu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeTimeout))
	s.mu.Unlock()
	s.close()
}

func (s *connSession) close() {
	s.once.Do(func() { _ = s.conn.Close() })
}
