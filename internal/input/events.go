package input

import "github.com/dshills/inputbus/internal/event"

// Event names emitted by the Synthesizer.
const (
	EventKeyDown    = "key_down"
	EventKeyUp      = "key_up"
	EventKeyPressed = "key_pressed"

	EventButtonDown    = "button_down"
	EventButtonUp      = "button_up"
	EventButtonClicked = "button_clicked"

	EventWheelLeft  = "wheel_left"
	EventWheelRight = "wheel_right"
	EventWheelUp    = "wheel_up"
	EventWheelDown  = "wheel_down"

	EventPointerMoved = "pointer_moved"
)

var (
	keySignature     = event.TypesOf(Key(0), ModNone)
	buttonSignature  = event.TypesOf(Button(0), ModNone)
	wheelSignature   = event.TypesOf(0)
	pointerSignature = event.TypesOf(Vec2{}, Vec2{})
)

// Signatures returns the parameter signature of every event the
// Synthesizer emits, keyed by event name.
func Signatures() map[string]event.Signature {
	return map[string]event.Signature{
		EventKeyDown:       keySignature,
		EventKeyUp:         keySignature,
		EventKeyPressed:    keySignature,
		EventButtonDown:    buttonSignature,
		EventButtonUp:      buttonSignature,
		EventButtonClicked: buttonSignature,
		EventWheelLeft:     wheelSignature,
		EventWheelRight:    wheelSignature,
		EventWheelUp:       wheelSignature,
		EventWheelDown:     wheelSignature,
		EventPointerMoved:  pointerSignature,
	}
}

// declareEvents fixes the signatures of all synthesized events on d.
func declareEvents(d *event.Dispatcher) error {
	for name, sig := range Signatures() {
		if err := d.Declare(name, sig); err != nil {
			return err
		}
	}
	return nil
}
