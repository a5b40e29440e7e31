package replay

import (
	"sync"
	"time"

	"github.com/dshills/inputbus/internal/input"
)

// Recorder is a Sink that captures notifications and forwards them to
// another Sink. It is safe for concurrent use.
type Recorder struct {
	next  input.Sink
	clock input.Clock

	mu     sync.Mutex
	start  time.Time
	events []Step
}

// NewRecorder creates a recorder forwarding to next. Offsets are measured
// from the first notification.
func NewRecorder(next input.Sink, clock input.Clock) *Recorder {
	if clock == nil {
		clock = input.SystemClock{}
	}
	return &Recorder{next: next, clock: clock}
}

func (r *Recorder) add(st Step) {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.start.IsZero() {
		r.start = now
	}
	st.At = now.Sub(r.start).Milliseconds()
	r.events = append(r.events, st)
}

// KeyEvent implements input.Sink.
func (r *Recorder) KeyEvent(key input.Key, scancode int, action input.Action, mods input.Modifier) error {
	r.add(Step{Kind: KindKey, Code: int(key), Action: action.String(), Mods: mods.String()})
	if r.next == nil {
		return nil
	}
	return r.next.KeyEvent(key, scancode, action, mods)
}

// MouseButtonEvent implements input.Sink.
func (r *Recorder) MouseButtonEvent(button input.Button, action input.Action, mods input.Modifier) error {
	r.add(Step{Kind: KindButton, Code: int(button), Action: action.String(), Mods: mods.String()})
	if r.next == nil {
		return nil
	}
	return r.next.MouseButtonEvent(button, action, mods)
}

// ScrollEvent implements input.Sink.
func (r *Recorder) ScrollEvent(dx, dy float64) {
	r.add(Step{Kind: KindScroll, DX: dx, DY: dy})
	if r.next != nil {
		r.next.ScrollEvent(dx, dy)
	}
}

// CursorPosEvent implements input.Sink.
func (r *Recorder) CursorPosEvent(x, y float64) {
	r.add(Step{Kind: KindCursor, X: x, Y: y})
	if r.next != nil {
		r.next.CursorPosEvent(x, y)
	}
}

// Script returns a copy of the captured notifications.
func (r *Recorder) Script(threshold time.Duration) *Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]Step, len(r.events))
	copy(events, r.events)
	return &Script{ThresholdMS: threshold.Milliseconds(), Events: events}
}
