// Package input turns raw key, button, wheel and pointer notifications into
// semantic events and keeps queryable input state.
//
// A Synthesizer receives raw notifications through the Sink interface, which
// a windowing or terminal provider calls synchronously from its event loop.
// Each notification updates the synthesizer's state and is re-published on an
// event.Dispatcher under a fixed event name:
//
//	key_down, key_up, key_pressed             (Key, Modifier)
//	button_down, button_up, button_clicked    (Button, Modifier)
//	wheel_left, wheel_right, wheel_up, wheel_down  (int)
//	pointer_moved                             (Vec2, Vec2)
//
// # Taps
//
// When a key or button is released, the time since it went down is compared
// with the tap threshold (250ms by default). A shorter dwell emits the tap
// event (key_pressed or button_clicked) instead of the up event.
//
//	synth, _ := input.New()
//	synth.On(input.EventKeyPressed, func(k input.Key, mods input.Modifier) {
//	    fmt.Println("tapped", k)
//	})
//
// # Pointer Deltas
//
// pointer_moved carries the new position and the delta previous-minus-new, so
// moving from (10,10) to (4,7) reports a delta of (6,3).
//
// # Thread Safety
//
// State is guarded by a read-write mutex that is released before listeners
// run, so listeners may query the synthesizer. Notifications are expected
// from a single goroutine; queries may come from any goroutine.
package input
