package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the uniform key-value surface the rest of the scheduling backend
// caches through. Implementations absorb backend faults: a broken connection,
// an undecodable payload, or a failed pattern scan become a miss or a no-op,
// never an error returned to the caller. Correctness of the surrounding
// system must never depend on cache availability.
//
// All operations are independently safe for concurrent use. Concurrent Set
// on the same key is last-write-wins.
type Store interface {
	// Get returns the serialized payload for key, or (nil, false) when the
	// key is absent, expired, or the backend faulted.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set serializes value and stores it under key with the given TTL.
	// It reports whether the entry was written. Values must survive a
	// lossless JSON round trip; anything else is a caller error and is
	// reported as false.
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool

	// Delete removes key. Idempotent: deleting an absent key reports true.
	Delete(ctx context.Context, key string) bool

	// ClearPattern removes every key matching pattern and returns the
	// number of entries removed. The networked backend resolves true glob
	// matching; the in-process fallback matches on ordered substring
	// containment of the pattern's literal portions (see internal/cacheinfra).
	ClearPattern(ctx context.Context, pattern string) int
}

// GetJSON reads key from store and decodes the payload into T. A decode
// failure is treated as a miss, keeping the never-raise contract of Store.
func GetJSON[T any](ctx context.Context, store Store, key string) (T, bool) {
	var zero T
	data, ok := store.Get(ctx, key)
	if !ok {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, false
	}
	return out, true
}
