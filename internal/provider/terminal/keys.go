package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputbus/internal/input"
)

// namedKeys maps tcell's non-rune keys to key codes. Control letters are
// handled separately because several of them alias Tab, Enter and Backspace.
var namedKeys = map[tcell.Key]input.Key{
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyInsert:     input.KeyInsert,
	tcell.KeyDelete:     input.KeyDelete,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyPgUp:       input.KeyPageUp,
	tcell.KeyPgDn:       input.KeyPageDown,
	tcell.KeyHome:       input.KeyHome,
	tcell.KeyEnd:        input.KeyEnd,
	tcell.KeyPrint:      input.KeyPrintScreen,
	tcell.KeyPause:      input.KeyPause,
	tcell.KeyCtrlSpace:  input.KeySpace,
}

// convertKey maps a tcell key event to a key code and the modifiers implied
// by it. ok is false for keys with no code.
func convertKey(k tcell.Key, r rune) (key input.Key, implied input.Modifier, ok bool) {
	if k == tcell.KeyRune {
		return convertRune(r)
	}
	if k == tcell.KeyBacktab {
		return input.KeyTab, input.ModShift, true
	}
	if key, ok := namedKeys[k]; ok {
		return key, input.ModNone, true
	}
	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return input.KeyA + input.Key(k-tcell.KeyCtrlA), input.ModCtrl, true
	case k >= tcell.KeyF1 && k <= tcell.KeyF1+tcell.Key(input.KeyF25-input.KeyF1):
		return input.KeyF1 + input.Key(k-tcell.KeyF1), input.ModNone, true
	}
	return input.KeyUnknown, input.ModNone, false
}

// convertRune maps a typed character to its unshifted key code.
func convertRune(r rune) (input.Key, input.Modifier, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return input.KeyA + input.Key(r-'a'), input.ModNone, true
	case r >= 'A' && r <= 'Z':
		return input.KeyA + input.Key(r-'A'), input.ModShift, true
	case r >= '0' && r <= '9':
		return input.Key0 + input.Key(r-'0'), input.ModNone, true
	}
	switch r {
	case ' ', '\'', ',', '-', '.', '/', ';', '=', '[', '\\', ']', '`':
		return input.Key(r), input.ModNone, true
	}
	if base, ok := shiftedRunes[r]; ok {
		return input.Key(base), input.ModShift, true
	}
	return input.KeyUnknown, input.ModNone, false
}

// shiftedRunes maps US-layout shifted symbols to their base key.
var shiftedRunes = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\',
	':': ';', '"': '\'', '<': ',', '>': '.', '?': '/', '~': '`',
}

// convertMod converts tcell modifiers. Meta maps to Super.
func convertMod(m tcell.ModMask) input.Modifier {
	var mod input.Modifier
	if m&tcell.ModShift != 0 {
		mod |= input.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= input.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= input.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= input.ModSuper
	}
	return mod
}

// buttonMasks lists held-button bits in button-code order.
var buttonMasks = [...]struct {
	mask   tcell.ButtonMask
	button input.Button
}{
	{tcell.Button1, input.ButtonLeft},
	{tcell.Button2, input.ButtonRight},
	{tcell.Button3, input.ButtonMiddle},
	{tcell.Button4, input.Button4},
	{tcell.Button5, input.Button5},
	{tcell.Button6, input.Button6},
	{tcell.Button7, input.Button7},
	{tcell.Button8, input.Button8},
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
