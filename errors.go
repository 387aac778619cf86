package goshape

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument is the root of every error returned by the package.
	// All failures are deterministic: the only recovery is fixing the input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeCoercion is returned when a loosely typed value cannot be
	// converted to the declared type of the field.
	ErrTypeCoercion = fmt.Errorf("%w: type coercion failed", ErrInvalidArgument)
)

// ResolutionError describes a field path that cannot be resolved against an
// element type.
type ResolutionError struct {
	// Path is the full path as supplied by the caller.
	Path string
	// Type is the element type the path was resolved against.
	Type reflect.Type
	// Segment is the first segment that could not be resolved. Empty when the
	// path itself is malformed.
	Segment string
	// Reason is a short human readable explanation.
	Reason string
	// Closest is the member name closest to Segment, if any.
	Closest string
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("cannot resolve field path '%s' on type '%s'", e.Path, typeName(e.Type))
	if e.Segment != "" {
		msg += fmt.Sprintf(": segment '%s'", e.Segment)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Closest != "" {
		msg += fmt.Sprintf(". closest: '%s'", e.Closest)
	}

	return msg
}

// Unwrap makes errors.Is(err, ErrInvalidArgument) hold for resolution errors.
func (e *ResolutionError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
