package event

import (
	"errors"
	"reflect"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// Dispatcher is a name-keyed registry of listeners and the engine that
// invokes them. The zero value is not usable; create one with New.
type Dispatcher struct {
	mu       sync.Mutex
	reg      *registry
	lastID   uint64
	logger   zerolog.Logger
	observer Observer
}

// New creates a Dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:      newRegistry(),
		logger:   zerolog.Nop(),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register stores callback under name and returns its listener id.
//
// callback must be a non-variadic function. Its return values are ignored,
// except for a trailing error which Emit reports as a ListenerError. If name
// has a declared signature, the callback's parameters must match it exactly.
func (d *Dispatcher) Register(name string, callback any) (ListenerID, error) {
	if name == "" {
		return "", ErrInvalidName
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id := ListenerID(name + "_" + strconv.FormatUint(d.lastID+1, 10))

	l, err := newListener(id, name, callback)
	if err != nil {
		return "", err
	}

	if sig, ok := d.reg.sigs[name]; ok && !sig.Equal(l.params) {
		return "", &SignatureError{Event: name, Want: sig, Got: l.params}
	}

	d.lastID++
	d.reg.add(l)
	d.logger.Debug().Str("event", name).Str("listener", string(id)).Msg("listener registered")
	return id, nil
}

// Unregister removes the listener with the given id.
// Returns ErrListenerNotFound if no such listener exists.
func (d *Dispatcher) Unregister(id ListenerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.reg.remove(id) {
		return ErrListenerNotFound
	}
	d.logger.Debug().Str("listener", string(id)).Msg("listener removed")
	return nil
}

// Emit invokes every listener registered under name with args, in
// registration order.
//
// The listener list is snapshotted first and every listener's signature is
// checked against the argument types before any of them runs; a mismatch
// returns a *SignatureError and nothing is invoked. Errors returned by
// listeners are collected and joined after all listeners have run.
func (d *Dispatcher) Emit(name string, args ...any) error {
	d.mu.Lock()
	snapshot := d.reg.snapshot(name)
	d.mu.Unlock()

	if len(snapshot) == 0 {
		return nil
	}

	got := TypesOf(args...)
	for _, l := range snapshot {
		if !l.params.Accepts(got) {
			d.observer.Mismatched(name)
			d.logger.Error().
				Str("event", name).
				Str("listener", string(l.id)).
				Stringer("want", l.params).
				Stringer("got", got).
				Msg("signature mismatch")
			return &SignatureError{Event: name, Listener: l.id, Want: l.params, Got: got}
		}
	}

	var errs []error
	for _, l := range snapshot {
		if err := l.call(argValues(l.params, args)); err != nil {
			errs = append(errs, &ListenerError{Listener: l.id, Event: name, Err: err})
		}
	}

	d.observer.Emitted(name, len(snapshot))
	return errors.Join(errs...)
}

// Declare fixes the parameter signature of an event name. Later
// registrations under name must match it. Declaring the same signature twice
// is a no-op; a different signature, or one that conflicts with listeners
// already registered, is a *SignatureError.
func (d *Dispatcher) Declare(name string, sig Signature) error {
	if name == "" {
		return ErrInvalidName
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.reg.sigs[name]; ok {
		if existing.Equal(sig) {
			return nil
		}
		return &SignatureError{Event: name, Want: existing, Got: sig}
	}

	for _, l := range d.reg.byName[name] {
		if !l.params.Equal(sig) {
			return &SignatureError{Event: name, Listener: l.id, Want: l.params, Got: sig}
		}
	}

	d.reg.sigs[name] = append(Signature(nil), sig...)
	return nil
}

// SignatureOf returns the declared signature of name, if any.
func (d *Dispatcher) SignatureOf(name string) (Signature, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sig, ok := d.reg.sigs[name]
	if !ok {
		return nil, false
	}
	return append(Signature(nil), sig...), true
}

// Count returns the total number of registered listeners.
func (d *Dispatcher) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.reg.byID)
}

// CountByName returns the number of listeners registered under name.
func (d *Dispatcher) CountByName(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.reg.byName[name])
}

// Names returns the event names that have listeners, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.reg.names()
}

// Clear removes all listeners. Declared signatures are kept.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reg.clear()
}

// argValues converts args to reflect values for a call with params.
// Untyped nils become zero values of the parameter type.
func argValues(params Signature, args []any) []reflect.Value {
	values := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			values[i] = reflect.Zero(params[i])
			continue
		}
		values[i] = reflect.ValueOf(a)
	}
	return values
}

type noopObserver struct{}

func (noopObserver) Emitted(string, int) {}
func (noopObserver) Mismatched(string)   {}
