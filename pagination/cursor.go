package pagination

import "context"

// CursorSource feeds Cursor with records totally ordered by a monotonic
// order key. FetchAfter must return up to limit records whose order key is
// strictly greater than after, in ascending key order, from the start when
// after is nil.
type CursorSource[T, K any] interface {
	FetchAfter(ctx context.Context, after *K, limit int) ([]T, error)
	OrderKey(record T) K
}

// Cursor fetches one page of at most limit records positioned strictly
// after cursor (or from the start when cursor is nil).
//
// Cost is O(limit) regardless of total set size or page depth: the source
// is asked for limit+1 records past the cursor, the extra record only
// proves whether another page exists and is never returned. Because the
// filter is purely positional, a cursor pointing at a since-deleted record
// still resumes correctly.
//
// The caller owns read consistency: each page is one query, and a source
// mutating between pages can surface or hide records across page
// boundaries.
func Cursor[T, K any](ctx context.Context, src CursorSource[T, K], cursor *K, limit int) (CursorPage[T, K], error) {
	if limit <= 0 {
		return CursorPage[T, K]{}, ErrInvalidLimit
	}

	records, err := src.FetchAfter(ctx, cursor, limit+1)
	if err != nil {
		return CursorPage[T, K]{}, err
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}

	page := CursorPage[T, K]{
		Data:    records,
		HasMore: hasMore,
		Count:   len(records),
	}
	if hasMore {
		key := src.OrderKey(records[len(records)-1])
		page.NextCursor = &key
	}
	return page, nil
}
