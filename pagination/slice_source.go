package pagination

import (
	"cmp"
	"context"
)

// SliceSource adapts an in-memory slice, sorted ascending by its order
// key, to both CursorSource and OffsetSource. Besides tests it serves
// small datasets that are already resident, like configuration listings.
type SliceSource[T any, K cmp.Ordered] struct {
	// Records must be sorted ascending by Key.
	Records []T

	// Key extracts the order key of a record.
	Key func(T) K
}

// FetchAfter implements CursorSource.
func (s SliceSource[T, K]) FetchAfter(_ context.Context, after *K, limit int) ([]T, error) {
	out := make([]T, 0, limit)
	for _, r := range s.Records {
		if after != nil && s.Key(r) <= *after {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// OrderKey implements CursorSource.
func (s SliceSource[T, K]) OrderKey(record T) K {
	return s.Key(record)
}

// Count implements OffsetSource.
func (s SliceSource[T, K]) Count(_ context.Context) (int, error) {
	return len(s.Records), nil
}

// Fetch implements OffsetSource.
func (s SliceSource[T, K]) Fetch(_ context.Context, offset, limit int) ([]T, error) {
	if offset >= len(s.Records) {
		return []T{}, nil
	}
	end := offset + limit
	if end > len(s.Records) {
		end = len(s.Records)
	}
	return s.Records[offset:end], nil
}
