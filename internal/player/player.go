package player

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

var ErrSessionClosed = errors.New("player session closed")

type job struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// Player is the single writer for one player's document. Jobs run one at a
// time in arrival order, each to completion before the next starts.
type Player struct {
	id string

	queue chan job
	stop  chan struct{}
	done  chan struct{}

	stopOnce   atomic.Bool
	lastActive atomic.Int64
}

func newPlayer(id string, queueSize int, now time.Time) *Player {
	p := &Player{
		id:    id,
		queue: make(chan job, queueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	p.touch(now)
	return p
}

// Id returns the player's unique identifier
func (p *Player) Id() string {
	return p.id
}

func (p *Player) touch(now time.Time) {
	p.lastActive.Store(now.UnixNano())
}

// idleSince reports how long it has been since the last job was submitted.
func (p *Player) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, p.lastActive.Load()))
}

func (p *Player) run() {
	defer close(p.done)
	for {
		// Prefer stop so a closed player does not keep draining its queue
		select {
		case <-p.stop:
			return
		default:
		}

		select {
		case <-p.stop:
			return
		case j := <-p.queue:
			j.result <- j.fn(j.ctx)
		}
	}
}

// submit queues fn and waits for it to finish. The caller's context bounds
// how long it waits for room in the queue; once queued the job always runs
// to completion and its context is detached from cancellation.
func (p *Player) submit(ctx context.Context, fn func(context.Context) error) error {
	j := job{
		ctx:    context.WithoutCancel(ctx),
		fn:     fn,
		result: make(chan error, 1),
	}

	select {
	case p.queue <- j:
	case <-p.stop:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.result:
		return err
	case <-p.done:
		// The job may have finished just before the player stopped
		select {
		case err := <-j.result:
			return err
		default:
			return ErrSessionClosed
		}
	}
}

// close stops the player after the job in progress, if any, and waits for it.
func (p *Player) close(ctx context.Context) {
	if p.stopOnce.CompareAndSwap(false, true) {
		close(p.stop)
	}
	<-p.done
	slog.DebugContext(ctx, "player session closed", "player", p.id)
}
