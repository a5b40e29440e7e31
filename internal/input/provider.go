package input

// Sink receives raw notifications from a windowing or terminal provider.
// Providers call it synchronously from their event loop.
type Sink interface {
	// KeyEvent reports a key transition.
	KeyEvent(key Key, scancode int, action Action, mods Modifier) error

	// MouseButtonEvent reports a mouse button transition.
	MouseButtonEvent(button Button, action Action, mods Modifier) error

	// ScrollEvent reports wheel motion. Positive dx is leftward, positive dy upward.
	ScrollEvent(dx, dy float64)

	// CursorPosEvent reports the absolute pointer position.
	CursorPosEvent(x, y float64)
}

// Provider delivers raw notifications to a Sink.
type Provider interface {
	// Attach installs sink as the receiver of all further notifications.
	Attach(sink Sink)
}
