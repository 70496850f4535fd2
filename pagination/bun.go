package pagination

import (
	"context"

	"github.com/uptrace/bun"
)

// BunCursorSource adapts a bun model query to CursorSource. T must be a
// struct type with bun model tags; Column names the indexed, monotonic
// order column the traversal walks.
type BunCursorSource[T, K any] struct {
	DB     *bun.DB
	Column string

	// Key extracts the order column's value from a fetched record.
	Key func(T) K

	// Apply, when set, narrows the base query (filters, relations). It
	// must not order, limit, or offset; the source owns those.
	Apply func(*bun.SelectQuery) *bun.SelectQuery
}

// FetchAfter implements CursorSource: ascending on Column, strictly after
// the cursor position when one is given.
func (s *BunCursorSource[T, K]) FetchAfter(ctx context.Context, after *K, limit int) ([]T, error) {
	records := make([]T, 0, limit)
	q := s.DB.NewSelect().Model(&records)
	if s.Apply != nil {
		q = s.Apply(q)
	}
	if after != nil {
		q = q.Where("? > ?", bun.Ident(s.Column), *after)
	}
	if err := q.OrderExpr("? ASC", bun.Ident(s.Column)).Limit(limit).Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// OrderKey implements CursorSource.
func (s *BunCursorSource[T, K]) OrderKey(record T) K {
	return s.Key(record)
}

// BunOffsetSource adapts a bun model query to OffsetSource. T must be a
// struct type with bun model tags; Column names the stable order column.
type BunOffsetSource[T any] struct {
	DB     *bun.DB
	Column string

	// Apply, when set, narrows the base query. Count and Fetch share it,
	// so the total always describes the same filtered set the items come
	// from.
	Apply func(*bun.SelectQuery) *bun.SelectQuery
}

// Count implements OffsetSource with a COUNT over the filtered set.
func (s *BunOffsetSource[T]) Count(ctx context.Context) (int, error) {
	q := s.DB.NewSelect().Model((*T)(nil))
	if s.Apply != nil {
		q = s.Apply(q)
	}
	return q.Count(ctx)
}

// Fetch implements OffsetSource.
func (s *BunOffsetSource[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	records := make([]T, 0, limit)
	q := s.DB.NewSelect().Model(&records)
	if s.Apply != nil {
		q = s.Apply(q)
	}
	if err := q.OrderExpr("? ASC", bun.Ident(s.Column)).Offset(offset).Limit(limit).Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}
