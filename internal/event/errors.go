package event

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the dispatcher.
var (
	// ErrListenerNotFound is returned when unregistering an unknown listener id.
	ErrListenerNotFound = errors.New("listener not found")

	// ErrSignatureMismatch is returned when argument types do not match a
	// listener's parameter signature.
	ErrSignatureMismatch = errors.New("listener signature mismatch")

	// ErrNotCallable is returned when a callback is nil, not a function, or variadic.
	ErrNotCallable = errors.New("callback is not callable")

	// ErrInvalidName is returned when an event name is empty.
	ErrInvalidName = errors.New("invalid event name")
)

// SignatureError describes a mismatch between a listener and the arguments
// (or declared signature) it was checked against.
type SignatureError struct {
	// Event is the event name being emitted or registered.
	Event string

	// Listener is the offending listener id. Empty for registration-time checks.
	Listener ListenerID

	// Want is the listener's parameter signature.
	Want Signature

	// Got is the signature that was supplied.
	Got Signature
}

// Error implements the error interface.
func (e *SignatureError) Error() string {
	var b strings.Builder
	b.WriteString("signature mismatch for event ")
	b.WriteString(e.Event)
	if e.Listener != "" {
		b.WriteString(" (listener ")
		b.WriteString(string(e.Listener))
		b.WriteString(")")
	}
	fmt.Fprintf(&b, ": want %s, got %s", e.Want, e.Got)
	return b.String()
}

// Is allows errors.Is to match SignatureError with ErrSignatureMismatch.
func (e *SignatureError) Is(target error) bool {
	return target == ErrSignatureMismatch
}

// ListenerError wraps an error returned by a listener callback.
type ListenerError struct {
	// Listener is the id of the listener that failed.
	Listener ListenerID

	// Event is the event name being emitted.
	Event string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return "listener " + string(e.Listener) + " on event " + e.Event + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}
