package cacheinfra

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// MemoryStore is the in-process fallback behind cache.Store. It holds
// serialized payloads in a concurrent map, so each get/set/delete is atomic
// at entry granularity without any store-wide locking on the hot path.
//
// Divergences from the networked store, both deliberate and documented:
// TTLs are accepted but not enforced, and ClearPattern matches on ordered
// substring containment of the pattern's literal portions instead of full
// glob semantics.
type MemoryStore struct {
	entries *xsync.MapOf[string, []byte]
	logger  *slog.Logger

	// insertion order bookkeeping, only maintained when capacity > 0
	capacity int
	mu       sync.Mutex
	order    []string
}

// NewMemoryStore creates an in-process store. A capacity greater than zero
// bounds the store: once exceeded, the oldest-inserted entries are dropped
// first. Zero means unbounded.
func NewMemoryStore(capacity int, logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		entries:  xsync.NewMapOf[string, []byte](),
		logger:   logger,
		capacity: capacity,
	}
}

// Get returns the payload stored under key, or (nil, false) on a miss.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	return s.entries.Load(key)
}

// Set serializes value and stores it under key. The TTL is ignored: the
// in-process store keeps entries until they are deleted or evicted.
func (s *MemoryStore) Set(_ context.Context, key string, value any, _ time.Duration) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache set dropped, payload not serializable",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}

	_, existed := s.entries.Load(key)
	s.entries.Store(key, data)
	if s.capacity > 0 && !existed {
		s.recordInsert(key)
	}
	return true
}

// Delete removes key. Idempotent.
func (s *MemoryStore) Delete(_ context.Context, key string) bool {
	s.entries.Delete(key)
	if s.capacity > 0 {
		s.forgetInsert(key)
	}
	return true
}

// ClearPattern removes every key containing the literal portions of the
// glob pattern, in pattern order, and returns the number of entries
// removed. This is an approximation of the networked backend's glob
// matching: segments match by containment without anchoring, so it can
// over-match keys a true glob would reject. For the anchored invalidation
// patterns this codebase emits the two backends agree.
func (s *MemoryStore) ClearPattern(_ context.Context, pattern string) int {
	runs := literalRuns(pattern)

	var matched []string
	s.entries.Range(func(key string, _ []byte) bool {
		if matchesLiteralRuns(key, runs) {
			matched = append(matched, key)
		}
		return true
	})

	for _, key := range matched {
		s.entries.Delete(key)
		if s.capacity > 0 {
			s.forgetInsert(key)
		}
	}
	return len(matched)
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	return s.entries.Size()
}

// recordInsert appends key to the insertion log and evicts the oldest
// entries while the store exceeds its capacity.
func (s *MemoryStore) recordInsert(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = append(s.order, key)
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		s.entries.Delete(oldest)
	}
}

// forgetInsert drops key from the insertion log after an explicit delete so
// the log cannot evict a key that was re-inserted later under a fresh slot.
func (s *MemoryStore) forgetInsert(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
