// Package cache provides the resilient key-value store abstraction and
// deterministic key derivation used by the scheduling backend.
//
// # Overview
//
// The package exports two main surfaces:
//
//   - Store: get/set/delete/clear-pattern over a key-value namespace, with
//     all backend faults absorbed into misses and no-ops
//   - KeySerializer / DeriveKey: order-independent hashing of argument
//     trees into fixed-length keys
//
// # Store selection
//
// NewStore selects between two implementations at construction time. When
// the configured backend address answers a bounded handshake, the
// Redis-backed store is used: entries expire natively after their TTL and
// ClearPattern resolves true glob matching. When the handshake fails, or no
// address is configured, an in-process store takes over.
//
// The fallback intentionally diverges in two documented ways: it does not
// enforce TTLs, and ClearPattern matches on ordered substring containment
// of the pattern's literal portions rather than full glob semantics. Both stores
// agree for the common invalidation shape used in this codebase, a literal
// segment surrounded by wildcards (for example "schedule:*|42|*").
//
// # Key derivation
//
// DeriveKey canonicalizes positional and keyword-style arguments into
// {"args": [...], "kwargs": {...}} with sorted map keys at every level and
// digests the result with xxhash. Structurally equal argument sets always
// produce the same key, regardless of map insertion order, and keys are
// stable across process restarts. Collisions are accepted as a cache
// concern, not a correctness concern.
//
// # Failure semantics
//
// Get never reports an error: a connection fault or an undecodable payload
// is a miss. Set reports false, and logs, when the value cannot be encoded
// or the backend write fails. Delete and ClearPattern degrade to no-ops.
// Callers never need a code path for a broken cache.
package cache
