package event

import "github.com/rs/zerolog"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// Observer receives dispatch notifications, typically for metrics.
// Methods are called synchronously from Emit and must not block.
type Observer interface {
	// Emitted is called after every listener of an emit has been invoked.
	Emitted(name string, listeners int)

	// Mismatched is called when an emit is rejected for a signature mismatch.
	Mismatched(name string)
}

// WithLogger sets the logger used for dispatcher diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger.With().Str("component", "dispatcher").Logger()
	}
}

// WithObserver installs an observer for emit notifications.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observer = o
		}
	}
}
