package local

import "errors"

// ErrWrongType mirrors the Redis WRONGTYPE reply: a structure operation was
// issued against a key holding a different kind of value.
var ErrWrongType = errors.New("local store: operation against a key holding the wrong kind of value")
