package model

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterNotFound is returned when a parameter is not in the list.
	ErrParameterNotFound = errors.New("parameter not found in list")

	// ErrAtBoundary is returned when a move would leave the list bounds.
	ErrAtBoundary = errors.New("parameter already at list boundary")

	// ErrNilParameter is returned for nil parameter arguments.
	ErrNilParameter = errors.New("nil parameter")

	// ErrNilList is returned when a nil list is given as an owner.
	ErrNilList = errors.New("nil list")

	// ErrNonFinite is returned when parsing NaN or infinite numbers.
	ErrNonFinite = errors.New("value must be finite")

	// ErrInvalidTypeKey is returned when a type key is not in the type table.
	ErrInvalidTypeKey = errors.New("invalid type key")
)

// ValueTypeError reports a value that does not match a parameter's declared type.
type ValueTypeError struct {
	TypeKey string
	Want    Kind
	Got     string
}

func (e *ValueTypeError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("type %q has no value slot (got %s)", e.TypeKey, e.Got)
	}
	return fmt.Sprintf("type %q expects %s value, got %s", e.TypeKey, e.Want, e.Got)
}
