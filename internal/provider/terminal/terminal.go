// Package terminal feeds a Sink from a tcell screen.
//
// Terminals report key presses but not releases, so each key event becomes a
// press immediately followed by a release, which the synthesizer reports as a
// tap. Mouse reports carry the full held-button mask; the provider diffs it
// against the previous report to produce button transitions.
package terminal

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/inputbus/internal/input"
)

// Provider translates tcell events into Sink notifications.
type Provider struct {
	screen tcell.Screen
	logger zerolog.Logger

	mu      sync.Mutex
	sink    input.Sink
	buttons tcell.ButtonMask
	lastX   int
	lastY   int
	seen    bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the provider's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger.With().Str("component", "terminal").Logger()
	}
}

// New creates a provider reading from screen. The screen may be nil when
// events are fed through Handle only.
func New(screen tcell.Screen, opts ...Option) *Provider {
	p := &Provider{
		screen: screen,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attach implements input.Provider.
func (p *Provider) Attach(sink input.Sink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink = sink
}

// Handle translates one tcell event. Events without a mapping are ignored.
func (p *Provider) Handle(ev tcell.Event) error {
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()
	if sink == nil {
		return nil
	}

	switch e := ev.(type) {
	case *tcell.EventKey:
		return p.handleKey(sink, e)
	case *tcell.EventMouse:
		return p.handleMouse(sink, e)
	}
	return nil
}

func (p *Provider) handleKey(sink input.Sink, e *tcell.EventKey) error {
	key, implied, ok := convertKey(e.Key(), e.Rune())
	if !ok {
		p.logger.Debug().Int("tcell_key", int(e.Key())).Str("rune", string(e.Rune())).Msg("unmapped key")
		return nil
	}
	mods := convertMod(e.Modifiers()) | implied
	scancode := int(e.Key())

	return errors.Join(
		sink.KeyEvent(key, scancode, input.ActionPress, mods),
		sink.KeyEvent(key, scancode, input.ActionRelease, mods),
	)
}

func (p *Provider) handleMouse(sink input.Sink, e *tcell.EventMouse) error {
	x, y := e.Position()
	mask := e.Buttons()
	mods := convertMod(e.Modifiers())

	p.mu.Lock()
	moved := !p.seen || x != p.lastX || y != p.lastY
	p.seen = true
	p.lastX, p.lastY = x, y
	prev := p.buttons
	held := mask &^ wheelMask
	p.buttons = held
	p.mu.Unlock()

	if moved {
		sink.CursorPosEvent(float64(x), float64(y))
	}

	var errs []error
	for _, bm := range buttonMasks {
		was, is := prev&bm.mask != 0, held&bm.mask != 0
		switch {
		case is && !was:
			errs = append(errs, sink.MouseButtonEvent(bm.button, input.ActionPress, mods))
		case was && !is:
			errs = append(errs, sink.MouseButtonEvent(bm.button, input.ActionRelease, mods))
		}
	}

	var dx, dy float64
	if mask&tcell.WheelUp != 0 {
		dy++
	}
	if mask&tcell.WheelDown != 0 {
		dy--
	}
	if mask&tcell.WheelLeft != 0 {
		dx++
	}
	if mask&tcell.WheelRight != 0 {
		dx--
	}
	if dx != 0 || dy != 0 {
		sink.ScrollEvent(dx, dy)
	}

	return errors.Join(errs...)
}

// Run polls the screen until ctx is cancelled, the screen is finalized, or
// Ctrl+C is typed. Translation errors are logged.
func (p *Provider) Run(ctx context.Context) error {
	if p.screen == nil {
		return errors.New("terminal: no screen")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = p.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		if k, ok := ev.(*tcell.EventKey); ok && k.Key() == tcell.KeyCtrlC {
			return nil
		}
		if err := p.Handle(ev); err != nil {
			p.logger.Warn().Err(err).Msg("listener failed")
		}
	}
}
