package schedcache

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/TingTung93/AI-Schedule-Manager-sub003/cache"
	"github.com/TingTung93/AI-Schedule-Manager-sub003/internal/readthrough"
)

// scheduleKeyPrefix namespaces every schedule entry. Keys look like
//
//	schedule:<date>:|<id>|<id>|...:<digest>
//
// The employee segment is embedded in clear text, between pipe delimiters,
// so per-employee invalidation can target it with a glob; everything else
// identifying the computation folds into the digest.
const scheduleKeyPrefix = "schedule:"

// DefaultScheduleTTL bounds how long a computed schedule stays fresh.
const DefaultScheduleTTL = 15 * time.Minute

// ScheduleKey identifies one schedule computation input set. A schedule is
// a pure function of the set of participants, shifts, and constraints, so
// the derived key ignores the order in which they were submitted.
type ScheduleKey struct {
	// Date anchors the scheduling period, e.g. "2026-01-05".
	Date string

	// EmployeeIDs are the participating employees, any order.
	EmployeeIDs []int64

	// ShiftIDs are the shifts being filled, any order.
	ShiftIDs []int64

	// Constraints are raw scheduling rule texts, any order. Only their
	// content participates in the key.
	Constraints []string
}

// ScheduleCache caches computed schedules keyed by the structural identity
// of their inputs. T is the schedule result shape; it must survive a
// lossless JSON round trip.
type ScheduleCache[T any] struct {
	store cache.Store
	ttl   time.Duration
	rt    *readthrough.Service
}

// ScheduleOption configures a ScheduleCache.
type ScheduleOption func(*scheduleOptions)

type scheduleOptions struct {
	ttl time.Duration
	rt  *readthrough.Service
}

// WithScheduleTTL overrides DefaultScheduleTTL.
func WithScheduleTTL(ttl time.Duration) ScheduleOption {
	return func(o *scheduleOptions) { o.ttl = ttl }
}

// WithReadThrough routes GetOrCompute through the given in-process
// read-through service, which coalesces concurrent computations of the
// same schedule.
func WithReadThrough(svc *readthrough.Service) ScheduleOption {
	return func(o *scheduleOptions) { o.rt = svc }
}

// NewScheduleCache builds a schedule cache over the given store.
func NewScheduleCache[T any](store cache.Store, opts ...ScheduleOption) *ScheduleCache[T] {
	o := scheduleOptions{ttl: DefaultScheduleTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return &ScheduleCache[T]{store: store, ttl: o.ttl, rt: o.rt}
}

// Key derives the cache key for k. Structurally equal input sets produce
// identical keys: participants, shifts, and constraint digests are sorted
// before hashing.
func (c *ScheduleCache[T]) Key(k ScheduleKey) (string, error) {
	employees := slices.Clone(k.EmployeeIDs)
	slices.Sort(employees)
	shifts := slices.Clone(k.ShiftIDs)
	slices.Sort(shifts)

	constraintDigests := make([]string, len(k.Constraints))
	for i, text := range k.Constraints {
		constraintDigests[i] = cache.HashText(text)
	}
	sort.Strings(constraintDigests)

	digest, err := cache.DeriveKey(nil, map[string]any{
		"date":        k.Date,
		"employees":   employees,
		"shifts":      shifts,
		"constraints": constraintDigests,
	})
	if err != nil {
		return "", fmt.Errorf("schedcache: schedule key: %w", err)
	}

	return scheduleKeyPrefix + k.Date + ":" + employeeSegment(employees) + ":" + digest, nil
}

// employeeSegment renders sorted employee ids as "|1|2|7|". The pipes keep
// id boundaries unambiguous under substring matching: employee 2 matches
// "|2|" without also matching employee 12.
func employeeSegment(sorted []int64) string {
	var b strings.Builder
	b.WriteByte('|')
	for _, id := range sorted {
		fmt.Fprintf(&b, "%d|", id)
	}
	return b.String()
}

// GetSchedule returns the cached schedule for k, if present.
func (c *ScheduleCache[T]) GetSchedule(ctx context.Context, k ScheduleKey) (T, bool) {
	key, err := c.Key(k)
	if err != nil {
		var zero T
		return zero, false
	}
	return cache.GetJSON[T](ctx, c.store, key)
}

// SetSchedule stores a computed schedule under k's structural key.
func (c *ScheduleCache[T]) SetSchedule(ctx context.Context, k ScheduleKey, result T) bool {
	key, err := c.Key(k)
	if err != nil {
		return false
	}
	return c.store.Set(ctx, key, result, c.ttl)
}

// GetOrCompute returns the cached schedule for k or computes and stores it.
// With a read-through service configured, concurrent callers computing the
// same schedule share a single execution; otherwise concurrent misses may
// each compute (last write wins).
func (c *ScheduleCache[T]) GetOrCompute(ctx context.Context, k ScheduleKey, compute func(ctx context.Context) (T, error)) (T, error) {
	key, err := c.Key(k)
	if err != nil {
		return compute(ctx)
	}

	if c.rt != nil {
		return readthrough.GetOrFetch(ctx, c.rt, key, compute)
	}

	if cached, ok := cache.GetJSON[T](ctx, c.store, key); ok {
		return cached, nil
	}
	result, err := compute(ctx)
	if err != nil {
		return result, err
	}
	c.store.Set(ctx, key, result, c.ttl)
	return result, nil
}

// InvalidateEmployeeSchedules drops every cached schedule the employee
// participates in. Returns the number of store entries cleared.
func (c *ScheduleCache[T]) InvalidateEmployeeSchedules(ctx context.Context, employeeID int64) int {
	segment := fmt.Sprintf("|%d|", employeeID)
	n := c.store.ClearPattern(ctx, scheduleKeyPrefix+"*"+segment+"*")
	c.invalidateReadThrough(func(key string) bool {
		return strings.Contains(key, segment)
	})
	return n
}

// InvalidateDateSchedules drops every cached schedule anchored on date.
// Returns the number of store entries cleared.
func (c *ScheduleCache[T]) InvalidateDateSchedules(ctx context.Context, date string) int {
	prefix := scheduleKeyPrefix + date + ":"
	n := c.store.ClearPattern(ctx, prefix+"*")
	c.invalidateReadThrough(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
	return n
}

func (c *ScheduleCache[T]) invalidateReadThrough(match func(string) bool) {
	if c.rt == nil {
		return
	}
	for _, key := range c.rt.Keys() {
		if strings.HasPrefix(key, scheduleKeyPrefix) && match(key) {
			c.rt.Delete(key)
		}
	}
}
