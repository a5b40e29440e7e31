// Package event provides the name-keyed listener dispatcher used by inputbus.
//
// A Dispatcher maps an event name to an ordered list of listeners. Each
// listener wraps a callback of a specific parameter signature; the signature
// is recovered with reflection and checked against the argument types every
// time the event is emitted.
//
// # Basic Usage
//
//	d := event.New()
//
//	id, err := d.Register("key_down", func(code int, mods uint8) {
//	    fmt.Println("down", code, mods)
//	})
//
//	// Invokes every "key_down" listener in registration order.
//	if err := d.Emit("key_down", 32, uint8(0)); err != nil {
//	    log.Printf("emit failed: %v", err)
//	}
//
//	_ = d.Unregister(id)
//
// # Signatures
//
// Emitting with argument types that do not match a registered listener is a
// contract violation reported as *SignatureError (errors.Is matches
// ErrSignatureMismatch). The check runs over the whole listener snapshot
// before any callback is invoked, so a mismatched emit has no side effects.
//
// When the signature of an event name is known up front it can be declared:
//
//	d.Declare("pointer_moved", event.TypesOf(Vec2{}, Vec2{}))
//
// Register then rejects incompatible callbacks immediately instead of at
// emission time.
//
// # Re-entrancy
//
// Emit copies the listener list before invoking anything and releases the
// registry lock while callbacks run. Callbacks may register, unregister or
// emit; changes take effect on the next emit of the affected name.
//
// # Thread Safety
//
// The registry is guarded by a mutex, so Register, Unregister and Emit may be
// called from different goroutines. Callbacks run in the emitting goroutine
// and must manage their own thread safety.
package event
