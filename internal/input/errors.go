package input

import (
	"errors"
	"strconv"
)

// ErrCodeOutOfRange is returned when a key or button code is outside the
// trackable range.
var ErrCodeOutOfRange = errors.New("input code out of range")

// CodeError reports an out-of-range key or button code.
type CodeError struct {
	// Kind is "key" or "button".
	Kind string

	// Code is the rejected code.
	Code int

	// Max is the highest valid code.
	Max int
}

// Error implements the error interface.
func (e *CodeError) Error() string {
	return e.Kind + " code " + strconv.Itoa(e.Code) + " out of range [0, " + strconv.Itoa(e.Max) + "]"
}

// Is allows errors.Is to match CodeError with ErrCodeOutOfRange.
func (e *CodeError) Is(target error) bool {
	return target == ErrCodeOutOfRange
}
