package pagination

import "context"

// OffsetSource feeds Offset with a pre-filtered ordered query. Count must
// tally the full filtered set; Fetch must return up to limit records
// starting at offset, under a stable ordering.
type OffsetSource[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// Offset fetches the 1-indexed page of pageSize records, computing the
// total count once per call.
//
// The count query makes this suitable for small and medium result sets
// only; large ordered datasets should use Cursor instead. Requesting a
// page beyond the last one returns an empty item list without error and
// without issuing the fetch.
func Offset[T any](ctx context.Context, src OffsetSource[T], page, pageSize int) (OffsetPage[T], error) {
	if page < 1 {
		return OffsetPage[T]{}, ErrInvalidPage
	}
	if pageSize < 1 {
		return OffsetPage[T]{}, ErrInvalidLimit
	}

	total, err := src.Count(ctx)
	if err != nil {
		return OffsetPage[T]{}, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	offset := (page - 1) * pageSize

	items := []T{}
	if offset < total {
		items, err = src.Fetch(ctx, offset, pageSize)
		if err != nil {
			return OffsetPage[T]{}, err
		}
	}

	return OffsetPage[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
