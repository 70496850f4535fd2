package pagination

import "errors"

// Caller errors, rejected synchronously before any backend query executes.
var (
	// ErrInvalidLimit reports a non-positive page limit or page size.
	ErrInvalidLimit = errors.New("pagination: limit must be positive")

	// ErrInvalidPage reports a page number below 1.
	ErrInvalidPage = errors.New("pagination: page must be at least 1")

	// ErrInvalidCursor reports a cursor token that cannot be decoded.
	ErrInvalidCursor = errors.New("pagination: malformed cursor")
)

// CursorPage is one page of a cursor-paginated traversal. Count always
// equals len(Data); HasMore is true iff a record exists beyond this page,
// in which case NextCursor resumes strictly after the last returned item.
type CursorPage[T, K any] struct {
	Data       []T  `json:"data"`
	NextCursor *K   `json:"next_cursor,omitempty"`
	HasMore    bool `json:"has_more"`
	Count      int  `json:"count"`
}

// OffsetPage is one page of an offset-paginated query, with the upfront
// total the cursor variant deliberately avoids.
type OffsetPage[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}
