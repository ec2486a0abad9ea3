package engine

type EngineOpt func(*Engine)

// WithIDGenerator replaces the instance id generator (uuid v4 by default)
func WithIDGenerator(fn func() string) EngineOpt {
	return func(e *Engine) {
		e.newId = fn
	}
}
