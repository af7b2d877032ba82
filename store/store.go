// Package store defines the key-value collaborator abstraction used by typedis.
//
// A Store is the external ordered key-value service (typically Redis) exposing
// scalar, hash, set, sorted-set and list primitives. Implementations MUST
// distinguish absent keys/fields from empty-but-present ones: Get on a missing
// key returns ok=false, while a stored empty string returns ("", true, nil).
//
// Hash field writes issued through HSetAll under one key MUST become visible
// atomically as a set to subsequent reads of that key. Callers rely on never
// observing a half-written record.
package store

import (
	"context"
	"time"
)

// ScoredMember is a sorted-set member together with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

// Value carries a hash field value along with its presence flag. HMGet uses it
// to report per-field misses without resorting to nil-able strings.
type Value struct {
	Val string
	OK  bool
}

// Store is the minimal contract typedis requires from the backing service.
// Must be safe for concurrent use. All operations are potentially blocking
// network calls; implementations honor ctx cancellation where the underlying
// client supports it.
type Store interface {
	// Get returns (value, true, nil) on hit; ("", false, nil) on miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// HSet writes one hash field.
	HSet(ctx context.Context, key, field, value string) error

	// HSetAll writes all fields in one atomic operation.
	HSetAll(ctx context.Context, key string, fields map[string]string) error

	// HGet returns one hash field; ok=false when key or field is absent.
	HGet(ctx context.Context, key, field string) (string, bool, error)

	// HMGet returns the requested fields in order, each with a presence flag.
	HMGet(ctx context.Context, key string, fields ...string) ([]Value, error)

	// HGetAll returns the full field map; absent keys yield an empty map.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// HDel removes fields and returns how many existed.
	HDel(ctx context.Context, key string, fields ...string) (int64, error)

	// HExists reports whether the field is present under key.
	HExists(ctx context.Context, key, field string) (bool, error)

	// SAdd adds members to a set and returns how many were newly added.
	SAdd(ctx context.Context, key string, members ...string) (int64, error)

	// SRem removes members from a set and returns how many were removed.
	SRem(ctx context.Context, key string, members ...string) (int64, error)

	// SMembers returns all members; absent keys yield an empty slice.
	SMembers(ctx context.Context, key string) ([]string, error)

	// ZAdd adds scored members to a sorted set; returns the newly-added count.
	ZAdd(ctx context.Context, key string, members ...ScoredMember) (int64, error)

	// ZRem removes members from a sorted set; returns the removed count.
	ZRem(ctx context.Context, key string, members ...string) (int64, error)

	// RPush appends values to a list; returns the list length after the push.
	RPush(ctx context.Context, key string, values ...string) (int64, error)

	// LRange returns elements between start and stop inclusive
	// (start=0, stop=-1 selects the whole list).
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Del removes keys and returns how many were removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Expire sets or refreshes the key's TTL; false when the key is absent.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
