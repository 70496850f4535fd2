// Package pagination provides two pagination primitives over ordered
// record sources, plus opaque cursor tokens for the HTTP boundary.
//
// # Choosing a primitive
//
// Cursor walks a dataset totally ordered by a monotonic key at O(limit)
// cost per page, independent of set size or page depth; it never counts
// and never skips, so it is the right tool for large ordered datasets. It
// cannot jump to an arbitrary page.
//
// Offset supports page/size navigation and an upfront total, at the cost
// of a count query per call and skip cost proportional to page depth. Use
// it for small and medium, possibly non-monotonic, result sets.
//
// # Sources
//
// Both primitives consume narrow source interfaces. SliceSource adapts
// in-memory data; BunCursorSource and BunOffsetSource adapt bun model
// queries, keeping the paginators free of ORM coupling. Neither primitive
// owns any locking: the caller is responsible for executing each page's
// query within one logically consistent read.
//
// # Validation
//
// Caller errors (ErrInvalidLimit, ErrInvalidPage, ErrInvalidCursor) are
// rejected before any backend query executes. Requesting an offset page
// beyond the last returns an empty item list, not an error.
package pagination
