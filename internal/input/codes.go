package input

import "strconv"

// Key is a keyboard key code. Values follow the GLFW numbering: printable
// keys use their upper-case ASCII code, function keys start at 256.
type Key int

// Key codes.
const (
	KeyUnknown Key = -1

	KeySpace        Key = 32
	KeyApostrophe   Key = 39
	KeyComma        Key = 44
	KeyMinus        Key = 45
	KeyPeriod       Key = 46
	KeySlash        Key = 47
	Key0            Key = 48
	Key1            Key = 49
	Key2            Key = 50
	Key3            Key = 51
	Key4            Key = 52
	Key5            Key = 53
	Key6            Key = 54
	Key7            Key = 55
	Key8            Key = 56
	Key9            Key = 57
	KeySemicolon    Key = 59
	KeyEqual        Key = 61
	KeyA            Key = 65
	KeyZ            Key = 90
	KeyLeftBracket  Key = 91
	KeyBackslash    Key = 92
	KeyRightBracket Key = 93
	KeyGraveAccent  Key = 96

	KeyEscape      Key = 256
	KeyEnter       Key = 257
	KeyTab         Key = 258
	KeyBackspace   Key = 259
	KeyInsert      Key = 260
	KeyDelete      Key = 261
	KeyRight       Key = 262
	KeyLeft        Key = 263
	KeyDown        Key = 264
	KeyUp          Key = 265
	KeyPageUp      Key = 266
	KeyPageDown    Key = 267
	KeyHome        Key = 268
	KeyEnd         Key = 269
	KeyCapsLock    Key = 280
	KeyScrollLock  Key = 281
	KeyNumLock     Key = 282
	KeyPrintScreen Key = 283
	KeyPause       Key = 284
	KeyF1          Key = 290
	KeyF12         Key = 301
	KeyF25         Key = 314
	KeyKP0         Key = 320
	KeyKP9         Key = 329
	KeyKPEnter     Key = 335
	KeyLeftShift   Key = 340
	KeyLeftControl Key = 341
	KeyLeftAlt     Key = 342
	KeyLeftSuper   Key = 343
	KeyRightShift  Key = 344
	KeyRightCtrl   Key = 345
	KeyRightAlt    Key = 346
	KeyRightSuper  Key = 347
	KeyMenu        Key = 348

	// KeyLast is the highest trackable key code.
	KeyLast = KeyMenu
)

var keyNames = map[Key]string{
	KeySpace:       "space",
	KeyEscape:      "escape",
	KeyEnter:       "enter",
	KeyTab:         "tab",
	KeyBackspace:   "backspace",
	KeyInsert:      "insert",
	KeyDelete:      "delete",
	KeyRight:       "right",
	KeyLeft:        "left",
	KeyDown:        "down",
	KeyUp:          "up",
	KeyPageUp:      "pageup",
	KeyPageDown:    "pagedown",
	KeyHome:        "home",
	KeyEnd:         "end",
	KeyCapsLock:    "capslock",
	KeyScrollLock:  "scrolllock",
	KeyNumLock:     "numlock",
	KeyPrintScreen: "printscreen",
	KeyPause:       "pause",
	KeyKPEnter:     "kp-enter",
	KeyLeftShift:   "left-shift",
	KeyLeftControl: "left-ctrl",
	KeyLeftAlt:     "left-alt",
	KeyLeftSuper:   "left-super",
	KeyRightShift:  "right-shift",
	KeyRightCtrl:   "right-ctrl",
	KeyRightAlt:    "right-alt",
	KeyRightSuper:  "right-super",
	KeyMenu:        "menu",
}

// Valid reports whether k is within the trackable range.
func (k Key) Valid() bool {
	return k >= 0 && k <= KeyLast
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k > KeySpace && k <= KeyGraveAccent:
		return string(rune(k))
	case k >= KeyF1 && k <= KeyF25:
		return "f" + strconv.Itoa(int(k-KeyF1)+1)
	case k >= KeyKP0 && k <= KeyKP9:
		return "kp-" + strconv.Itoa(int(k-KeyKP0))
	default:
		return "key(" + strconv.Itoa(int(k)) + ")"
	}
}

// Button is a mouse button code.
type Button int

// Mouse buttons.
const (
	ButtonLeft   Button = 0
	ButtonRight  Button = 1
	ButtonMiddle Button = 2
	Button4      Button = 3
	Button5      Button = 4
	Button6      Button = 5
	Button7      Button = 6
	Button8      Button = 7

	// ButtonLast is the highest trackable button code.
	ButtonLast = Button8
)

// Valid reports whether b is within the trackable range.
func (b Button) Valid() bool {
	return b >= 0 && b <= ButtonLast
}

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "button" + strconv.Itoa(int(b)+1)
	}
}

// Action is the kind of digital transition reported by a provider.
type Action uint8

const (
	// ActionRelease indicates the key or button went up.
	ActionRelease Action = iota
	// ActionPress indicates the key or button went down.
	ActionPress
	// ActionRepeat indicates an auto-repeat while held. It does not change state.
	ActionRepeat
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionRelease:
		return "release"
	case ActionPress:
		return "press"
	case ActionRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// ParseAction parses "press", "release" or "repeat".
func ParseAction(s string) (Action, bool) {
	switch s {
	case "press", "down":
		return ActionPress, true
	case "release", "up":
		return ActionRelease, true
	case "repeat":
		return ActionRepeat, true
	default:
		return 0, false
	}
}
