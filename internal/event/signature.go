package event

import (
	"reflect"
	"strings"
)

// Signature is the ordered list of parameter types of a listener or of an
// emitted argument tuple. A nil entry stands for an untyped nil argument.
type Signature []reflect.Type

// TypesOf returns the signature of the given values.
func TypesOf(args ...any) Signature {
	sig := make(Signature, len(args))
	for i, a := range args {
		if a != nil {
			sig[i] = reflect.TypeOf(a)
		}
	}
	return sig
}

// signatureOf returns the parameter signature of a function type.
func signatureOf(fn reflect.Type) Signature {
	sig := make(Signature, fn.NumIn())
	for i := range sig {
		sig[i] = fn.In(i)
	}
	return sig
}

// Equal reports whether two signatures have identical parameter types.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Accepts reports whether arguments with signature args can be passed to
// parameters with signature s. Types must be identical; an untyped nil is
// accepted by any nillable parameter.
func (s Signature) Accepts(args Signature) bool {
	if len(s) != len(args) {
		return false
	}
	for i, want := range s {
		got := args[i]
		if got == nil {
			if !nillable(want) {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

// String returns a representation like "(int, input.Modifier)".
func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		if t == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
