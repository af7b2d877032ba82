package filecache

import (
	"errors"
	"fmt"
)

var (
	// ErrNilKV is returned by New when Options.KV is missing.
	ErrNilKV = errors.New("filecache: kv facade is required")

	// ErrNilFile is returned by Store when the file handle is nil.
	ErrNilFile = errors.New("filecache: nil file")

	// ErrEmptyName is returned when a file name is empty or unusable as a key.
	ErrEmptyName = errors.New("filecache: empty file name")
)

// DecodeError reports that a cached record holds content that is not valid
// base64. The record is left in place; deletion is the caller's call.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("filecache: cached content for %q is not valid base64: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
