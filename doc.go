// Package typedis is a typed facade over a Redis-like key-value store.
// It exposes uniform operations for scalar values, hash maps, sets, sorted
// sets and lists, normalizing the store's "missing" replies into safe zero
// values ("", 0, false, empty collections) instead of surfacing them to
// callers as a distinct signal.
//
// Components:
//   - store.Store: the external ordered key-value collaborator (e.g. Redis
//     via store/redis, or in-process via store/local).
//   - KV: the facade itself; one store call per operation.
//   - codec.Codec[V]: pluggable serialization for the typed scalar helpers
//     GetValueAs / SetValueAs.
//   - filecache.Cache: a binary-file cache built on the facade's hash
//     operations (see package filecache).
//
// Transport errors from the store are never swallowed: every operation
// returns them unchanged. Normalization applies only to absent keys, fields
// and nil-shaped counts.
package typedis
