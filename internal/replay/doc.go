// Package replay records raw input notifications to YAML scripts and plays
// them back through a Synthesizer on a manual clock.
//
// A script lists notifications with millisecond offsets:
//
//	threshold_ms: 250
//	events:
//	  - {at: 0, kind: key, code: 32, action: press}
//	  - {at: 100, kind: key, code: 32, action: release}
//	  - {at: 150, kind: cursor, x: 10, y: 10}
//	  - {at: 160, kind: scroll, dy: -2}
//
// Run replays a script deterministically and returns every semantic event
// emitted, in order. The example above yields key_down, key_pressed,
// pointer_moved and wheel_down.
//
// A Recorder sits between a provider and a sink and captures the live
// notification stream so it can be saved and replayed later.
package replay
