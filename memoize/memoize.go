// Package memoize provides read-through/write-through caching for pure
// computations.
//
// Two entry points are exposed, selected at wrap time: Wrap for blocking
// computations and WrapContext for context-aware (cancellable) ones. Both
// produce wrappers whose Call receives the cache store per invocation, so
// the same wrapped computation runs cache-free when the store is nil. The
// store never reaches the underlying computation; it is a concern of the
// wrapper alone.
//
// On a hit the computation is skipped entirely, side effects included, so
// only computations that are pure functions of their arguments should be
// wrapped. Computation errors propagate unchanged and are never cached.
// Cache store faults are absorbed by the store itself.
//
// By default concurrent misses on the same key each execute the computation
// and each write a result (last write wins). Callers that need at-most-once
// execution per key opt in with WithSingleFlight.
package memoize

import (
	"context"
	"reflect"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/TingTung93/AI-Schedule-Manager-sub003/cache"
)

// DefaultTTL is applied when no WithTTL option is given.
const DefaultTTL = 5 * time.Minute

type settings struct {
	ttl          time.Duration
	singleFlight bool
}

// Option configures a wrapped computation.
type Option func(*settings)

// WithTTL sets the time-to-live for stored results.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) { s.ttl = ttl }
}

// WithSingleFlight deduplicates concurrent misses: one caller executes the
// computation while the rest wait and share its result.
func WithSingleFlight() Option {
	return func(s *settings) { s.singleFlight = true }
}

func newSettings(opts []Option) settings {
	s := settings{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Func memoizes a blocking computation.
type Func[T any] struct {
	namespace string
	fn        func(args ...any) (T, error)
	set       settings
	group     singleflight.Group
}

// Wrap builds a memoizing wrapper around a blocking computation. The key
// namespace is prefix plus the computation name, so distinct computations
// sharing a prefix never collide.
func Wrap[T any](prefix, name string, fn func(args ...any) (T, error), opts ...Option) *Func[T] {
	return &Func[T]{
		namespace: prefix + cache.KeySeparator + name,
		fn:        fn,
		set:       newSettings(opts),
	}
}

// Call invokes the computation through the cache. A nil store runs it
// directly, as does an argument set that cannot be keyed.
func (m *Func[T]) Call(ctx context.Context, store cache.Store, args ...any) (T, error) {
	exec := func() (T, error) { return m.fn(args...) }
	return callThrough(ctx, store, m.namespace, args, m.set, &m.group, exec)
}

// ContextFunc memoizes a context-aware computation.
type ContextFunc[T any] struct {
	namespace string
	fn        func(ctx context.Context, args ...any) (T, error)
	set       settings
	group     singleflight.Group
}

// WrapContext builds a memoizing wrapper around a context-aware
// computation. Cancellation propagates into the computation; a cancelled
// run returns its error and writes no cache entry.
func WrapContext[T any](prefix, name string, fn func(ctx context.Context, args ...any) (T, error), opts ...Option) *ContextFunc[T] {
	return &ContextFunc[T]{
		namespace: prefix + cache.KeySeparator + name,
		fn:        fn,
		set:       newSettings(opts),
	}
}

// Call invokes the computation through the cache. A nil store runs it
// directly, as does an argument set that cannot be keyed.
func (m *ContextFunc[T]) Call(ctx context.Context, store cache.Store, args ...any) (T, error) {
	exec := func() (T, error) { return m.fn(ctx, args...) }
	return callThrough(ctx, store, m.namespace, args, m.set, &m.group, exec)
}

// callThrough is the shared read-through path for both execution models.
func callThrough[T any](
	ctx context.Context,
	store cache.Store,
	namespace string,
	args []any,
	set settings,
	group *singleflight.Group,
	exec func() (T, error),
) (T, error) {
	if store == nil {
		return exec()
	}

	digest, err := cache.DeriveKey(args, nil)
	if err != nil {
		// Unkeyable arguments: run uncached rather than risk collisions.
		return exec()
	}
	key := namespace + cache.KeySeparator + digest

	lookup := func() (T, error) {
		if cached, ok := cache.GetJSON[T](ctx, store, key); ok {
			return cached, nil
		}
		result, err := exec()
		if err != nil {
			return result, err
		}
		if ctx.Err() == nil && !isAbsent(result) {
			store.Set(ctx, key, result, set.ttl)
		}
		return result, nil
	}

	if !set.singleFlight {
		return lookup()
	}

	shared, err, _ := group.Do(key, func() (any, error) {
		return lookup()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return shared.(T), nil
}

// isAbsent reports whether the computation produced no value to store:
// a nil interface or a nil pointer, map, slice, function, or channel.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
