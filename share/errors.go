package share

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched by every error returned when a document
// cannot be parsed or decoded into a [Set].
var ErrMalformedInput = errors.New("malformed input")

// DecodeError reports the document key at which decoding failed.
// An empty Key designates the document itself.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedInput, e.Err)
	}
	return fmt.Sprintf("%s: key %q: %s", ErrMalformedInput, e.Key, e.Err)
}

// Unwrap makes [ErrMalformedInput] and the underlying cause
// reachable through [errors.Is] and [errors.As].
func (e *DecodeError) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}

func malformed(key string, format string, args ...any) error {
	return &DecodeError{Key: key, Err: fmt.Errorf(format, args...)}
}
