package typedis

import (
	"context"
	"time"

	"github.com/unkn0wn-root/typedis/store"
)

// KV is the typed facade over the backing store. Every operation issues one
// store call and normalizes absent results: maps and slices are never nil,
// counts on missing keys are 0, existence checks on indeterminate replies are
// false. Transport/server errors propagate unchanged.
type KV interface {
	// SetValue stores value under key using the facade's default TTL
	// (no expiry unless Options.DefaultTTL is set).
	SetValue(ctx context.Context, key, value string) error

	// SetValueTTL stores value and expires the key after ttl.
	SetValueTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// GetValue returns the stored scalar; ok=false when the key is absent.
	GetValue(ctx context.Context, key string) (string, bool, error)

	// Hash operations act on the field map stored under key. Absent keys or
	// fields yield empty results, never a fault.
	HashPut(ctx context.Context, key, field, value string) error
	HashPutAll(ctx context.Context, key string, fields map[string]string) error
	HashGet(ctx context.Context, key, field string) (string, bool, error)
	HashMultiGet(ctx context.Context, key string, fields ...string) ([]string, error)
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	HashDeleteField(ctx context.Context, key string, fields ...string) (int64, error)

	SetAdd(ctx context.Context, key string, members ...string) (int64, error)
	SetDelete(ctx context.Context, key string, members ...string) (int64, error)
	SetGetAll(ctx context.Context, key string) ([]string, error)

	ZSetAdd(ctx context.Context, key string, members ...store.ScoredMember) (int64, error)
	ZSetDelete(ctx context.Context, key string, members ...string) (int64, error)

	// ListPush appends a single value; ListPushAll appends many. Both return
	// the list length after the push.
	ListPush(ctx context.Context, key, value string) (int64, error)
	ListPushAll(ctx context.Context, key string, values ...string) (int64, error)

	// ListRange returns elements between start and stop inclusive
	// (start=0, stop=-1 selects the whole list). ListGetAll is shorthand.
	ListRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ListGetAll(ctx context.Context, key string) ([]string, error)

	HasKey(ctx context.Context, key string) (bool, error)
	HasField(ctx context.Context, key, field string) (bool, error)

	// Delete removes one key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// DeleteKeys removes many keys and returns how many were removed.
	DeleteKeys(ctx context.Context, keys ...string) (int64, error)

	// Expire sets or refreshes the key's TTL; false when the key is absent.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	Close(ctx context.Context) error
}

// Options tune the facade. Only Store is required.
type Options struct {
	// Required. The backing store collaborator; injected explicitly so tests
	// can substitute a double and no process-wide client is assumed.
	Store store.Store

	Logger     Logger        // if nil, NopLogger is used
	DefaultTTL time.Duration // applied by SetValue; 0 => keys do not expire
}

func New(opts Options) (KV, error) {
	return newKV(opts)
}
