package graft

import "log/slog"

// Option defines a functional option for configuring a Bin at
// construction.
type Option func(*Bin)

// WithLogger sets a structured logger for the bin's lifecycle events.
// Without it the bin logs nowhere.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bin) {
		b.logger = logger
	}
}

// WithHooks registers observability callbacks. Later options replace
// earlier ones; use Join to compose hook sets.
func WithHooks(hooks Hooks) Option {
	return func(b *Bin) {
		b.hooks = hooks
	}
}
