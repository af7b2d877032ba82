package typedis

import (
	"errors"
	"fmt"
)

// ErrNilStore is returned by New when Options.Store is missing.
var ErrNilStore = errors.New("typedis: store is required")

// TypeMismatchError reports that a stored scalar could not be decoded into
// the requested type. The stored bytes are left untouched.
type TypeMismatchError struct {
	Key string
	Err error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("typedis: value at %q does not decode into requested type: %v", e.Key, e.Err)
}

func (e *TypeMismatchError) Unwrap() error { return e.Err }
