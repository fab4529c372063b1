package sqltype

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for codec failures.
var (
	// ErrTypeMismatch is returned when a value cannot convert to or
	// from the declared column type.
	ErrTypeMismatch = errors.New("microtype: sql type mismatch")

	// ErrNull is returned when NULL arrives for a wrapper. Wrappers
	// have no null state to decode into.
	ErrNull = errors.New("microtype: cannot decode NULL")
)

// ConvertError describes a failed conversion between a driver value and
// the declared column type.
type ConvertError struct {
	Type   Type   // declared column type
	Value  any    // offending value, nil for NULL
	Goal   string // Go shape the conversion aimed at
	Reason string // optional detail
	Err    error  // optional underlying cause
}

// Error returns the error string.
func (e *ConvertError) Error() string {
	switch {
	case e.Value == nil:
		return fmt.Sprintf("microtype: cannot decode NULL into %s (column type %s)", e.Goal, e.Type)
	case e.Reason != "":
		return fmt.Sprintf("microtype: cannot convert %T to %s (column type %s): %s", e.Value, e.Goal, e.Type, e.Reason)
	default:
		return fmt.Sprintf("microtype: cannot convert %T to %s (column type %s)", e.Value, e.Goal, e.Type)
	}
}

// Is maps the error onto the package sentinels.
// This allows errors.Is(err, ErrTypeMismatch) and errors.Is(err, ErrNull).
func (e *ConvertError) Is(target error) bool {
	switch target {
	case ErrNull:
		return e.Value == nil
	case ErrTypeMismatch:
		return e.Value != nil
	}
	return false
}

// Unwrap returns the underlying cause, if any.
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewConvertError returns a new ConvertError.
func NewConvertError(t Type, value any, goal, reason string) *ConvertError {
	return &ConvertError{Type: t, Value: value, Goal: goal, Reason: reason}
}

// IsConvertError returns true if the error is a ConvertError.
func IsConvertError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConvertError
	return errors.As(err, &e)
}
