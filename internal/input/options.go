package input

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/inputbus/internal/event"
)

// DefaultTapThreshold is the dwell time below which a release is a tap.
const DefaultTapThreshold = 250 * time.Millisecond

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithClock sets the clock used to timestamp transitions.
func WithClock(c Clock) Option {
	return func(s *Synthesizer) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithTapThreshold sets the tap threshold. Non-positive values are ignored.
func WithTapThreshold(d time.Duration) Option {
	return func(s *Synthesizer) {
		if d > 0 {
			s.threshold.Store(int64(d))
		}
	}
}

// WithDispatcher publishes on an existing dispatcher instead of a new one.
func WithDispatcher(d *event.Dispatcher) Option {
	return func(s *Synthesizer) {
		if d != nil {
			s.dispatcher = d
		}
	}
}

// WithLogger sets the logger used for synthesizer diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger.With().Str("component", "input").Logger()
	}
}
