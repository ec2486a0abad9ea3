package player

import "time"

type PlayerManagerOpt func(*PlayerManager)

// WithQueueSize sets how many requests may wait on a single player
func WithQueueSize(n int) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.queueSize = n
	}
}

// WithIdleTimeout sets how long a session may sit unused before Tick closes it
func WithIdleTimeout(d time.Duration) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.idleTimeout = d
	}
}

// WithClock replaces the time source used for idle tracking
func WithClock(now func() time.Time) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.now = now
	}
}
