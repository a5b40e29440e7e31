package input

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/inputbus/internal/event"
)

// digital is the state of one key or button.
type digital struct {
	down  bool
	since time.Time
}

// outcome is the semantic result of applying a raw transition.
type outcome uint8

const (
	outcomeNone outcome = iota
	outcomeDown
	outcomeUp
	outcomeTap
)

// apply updates st for action and reports what should be emitted.
// duplicate is true when the transition re-asserts the current state.
func (st *digital) apply(action Action, now time.Time, threshold time.Duration) (result outcome, duplicate bool) {
	switch action {
	case ActionPress:
		duplicate = st.down
		st.down = true
		st.since = now
		return outcomeDown, duplicate

	case ActionRelease:
		duplicate = !st.down
		st.down = false
		// A release without a recorded press has a zero down-time, so the
		// elapsed time is never below the threshold.
		result = outcomeUp
		if !st.since.IsZero() && now.Sub(st.since) < threshold {
			result = outcomeTap
		}
		st.since = time.Time{}
		return result, duplicate

	default:
		return outcomeNone, false
	}
}

// Synthesizer converts raw notifications into semantic events on a
// Dispatcher and tracks current input state. It implements Sink.
type Synthesizer struct {
	dispatcher *event.Dispatcher
	clock      Clock
	logger     zerolog.Logger
	threshold  atomic.Int64

	mu      sync.RWMutex
	keys    [KeyLast + 1]digital
	buttons [ButtonLast + 1]digital
	pointer Vec2
	delta   Vec2
}

// New creates a Synthesizer and declares its event signatures on the
// dispatcher. It fails only if a shared dispatcher already holds listeners or
// declarations that conflict with those signatures.
func New(opts ...Option) (*Synthesizer, error) {
	s := &Synthesizer{
		clock:  SystemClock{},
		logger: zerolog.Nop(),
	}
	s.threshold.Store(int64(DefaultTapThreshold))

	for _, opt := range opts {
		opt(s)
	}

	if s.dispatcher == nil {
		s.dispatcher = event.New(event.WithLogger(s.logger))
	}
	if err := declareEvents(s.dispatcher); err != nil {
		return nil, err
	}
	return s, nil
}

// Bind attaches the synthesizer to a provider.
func (s *Synthesizer) Bind(p Provider) {
	p.Attach(s)
}

// Dispatcher returns the dispatcher events are published on.
func (s *Synthesizer) Dispatcher() *event.Dispatcher {
	return s.dispatcher
}

// On registers a listener for one of the synthesized events. The callback
// must match the event's signature.
func (s *Synthesizer) On(name string, callback any) (event.ListenerID, error) {
	return s.dispatcher.Register(name, callback)
}

// Off removes a listener registered with On.
func (s *Synthesizer) Off(id event.ListenerID) error {
	return s.dispatcher.Unregister(id)
}

// TapThreshold returns the current tap threshold.
func (s *Synthesizer) TapThreshold() time.Duration {
	return time.Duration(s.threshold.Load())
}

// SetTapThreshold changes the tap threshold. Non-positive values are ignored.
// Safe to call from any goroutine.
func (s *Synthesizer) SetTapThreshold(d time.Duration) {
	if d <= 0 {
		return
	}
	s.threshold.Store(int64(d))
	s.logger.Info().Dur("threshold", d).Msg("tap threshold changed")
}

// KeyEvent implements Sink.
func (s *Synthesizer) KeyEvent(key Key, scancode int, action Action, mods Modifier) error {
	if !key.Valid() {
		return &CodeError{Kind: "key", Code: int(key), Max: int(KeyLast)}
	}

	now := s.clock.Now()
	s.mu.Lock()
	result, duplicate := s.keys[key].apply(action, now, s.TapThreshold())
	s.mu.Unlock()

	if duplicate {
		s.logger.Debug().Stringer("key", key).Int("scancode", scancode).Stringer("action", action).Msg("duplicate key transition")
	}

	switch result {
	case outcomeDown:
		return s.dispatcher.Emit(EventKeyDown, key, mods)
	case outcomeUp:
		return s.dispatcher.Emit(EventKeyUp, key, mods)
	case outcomeTap:
		return s.dispatcher.Emit(EventKeyPressed, key, mods)
	}
	return nil
}

// MouseButtonEvent implements Sink.
func (s *Synthesizer) MouseButtonEvent(button Button, action Action, mods Modifier) error {
	if !button.Valid() {
		return &CodeError{Kind: "button", Code: int(button), Max: int(ButtonLast)}
	}

	now := s.clock.Now()
	s.mu.Lock()
	result, duplicate := s.buttons[button].apply(action, now, s.TapThreshold())
	s.mu.Unlock()

	if duplicate {
		s.logger.Debug().Stringer("button", button).Stringer("action", action).Msg("duplicate button transition")
	}

	switch result {
	case outcomeDown:
		return s.dispatcher.Emit(EventButtonDown, button, mods)
	case outcomeUp:
		return s.dispatcher.Emit(EventButtonUp, button, mods)
	case outcomeTap:
		return s.dispatcher.Emit(EventButtonClicked, button, mods)
	}
	return nil
}

// ScrollEvent implements Sink. Each nonzero axis emits one directional
// event carrying the truncated magnitude of that axis. NaN axes emit nothing.
func (s *Synthesizer) ScrollEvent(dx, dy float64) {
	switch {
	case dx > 0:
		s.emit(EventWheelLeft, wheelMagnitude(dx))
	case dx < 0:
		s.emit(EventWheelRight, wheelMagnitude(dx))
	}

	switch {
	case dy > 0:
		s.emit(EventWheelUp, wheelMagnitude(dy))
	case dy < 0:
		s.emit(EventWheelDown, wheelMagnitude(dy))
	}
}

// wheelMagnitude truncates |v| to an int, saturating at math.MaxInt.
func wheelMagnitude(v float64) int {
	a := math.Abs(v)
	if a >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(a)
}

// CursorPosEvent implements Sink. The reported delta is previous minus new.
func (s *Synthesizer) CursorPosEvent(x, y float64) {
	next := Vec2{X: x, Y: y}

	s.mu.Lock()
	s.delta = s.pointer.Sub(next)
	s.pointer = next
	delta := s.delta
	s.mu.Unlock()

	s.emit(EventPointerMoved, next, delta)
}

// emit publishes an event whose handling cannot fail the notification.
// Listener errors are logged.
func (s *Synthesizer) emit(name string, args ...any) {
	if err := s.dispatcher.Emit(name, args...); err != nil {
		s.logger.Warn().Err(err).Str("event", name).Msg("listener failed")
	}
}

// IsKeyDown reports whether key is currently held.
func (s *Synthesizer) IsKeyDown(key Key) (bool, error) {
	if !key.Valid() {
		return false, &CodeError{Kind: "key", Code: int(key), Max: int(KeyLast)}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[key].down, nil
}

// IsButtonDown reports whether button is currently held.
func (s *Synthesizer) IsButtonDown(button Button) (bool, error) {
	if !button.Valid() {
		return false, &CodeError{Kind: "button", Code: int(button), Max: int(ButtonLast)}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buttons[button].down, nil
}

// KeyDownSince returns when key went down, or the zero time if it is up.
func (s *Synthesizer) KeyDownSince(key Key) (time.Time, error) {
	if !key.Valid() {
		return time.Time{}, &CodeError{Kind: "key", Code: int(key), Max: int(KeyLast)}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[key].since, nil
}

// PointerPosition returns the last reported pointer position.
func (s *Synthesizer) PointerPosition() Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointer
}

// PointerDelta returns the delta of the last pointer motion (previous minus new).
func (s *Synthesizer) PointerDelta() Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delta
}

// Snapshot is a point-in-time copy of the synthesizer's state.
type Snapshot struct {
	KeysDown     []Key         `json:"keys_down"`
	ButtonsDown  []Button      `json:"buttons_down"`
	Pointer      Vec2          `json:"pointer"`
	PointerDelta Vec2          `json:"pointer_delta"`
	TapThreshold time.Duration `json:"tap_threshold"`
}

// Snapshot returns the current state. Key and button lists are in ascending order.
func (s *Synthesizer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		KeysDown:     []Key{},
		ButtonsDown:  []Button{},
		Pointer:      s.pointer,
		PointerDelta: s.delta,
		TapThreshold: s.TapThreshold(),
	}
	for k := range s.keys {
		if s.keys[k].down {
			snap.KeysDown = append(snap.KeysDown, Key(k))
		}
	}
	for b := range s.buttons {
		if s.buttons[b].down {
			snap.ButtonsDown = append(snap.ButtonsDown, Button(b))
		}
	}
	return snap
}
