package goshape

import (
	"encoding/base64"
)

var _encoder = base64.RawURLEncoding

// Cursor is an opaque page token. An empty cursor points at the first page.
type Cursor interface {
	String() string
	IsEmpty() bool
	validate(orderBy OrderBy) error
}

// PaginationResult is a generic paginated result container.
type PaginationResult[T any, CursorType Cursor] struct {
	// Items result elements.
	Items []T
	// Total number of elements before pagination. Filled only when requested
	// with Pager.WithTotal and supported by the source.
	Total int64
	// AppliedLimit effective limit used for the query.
	AppliedLimit int
	// NextPageToken token for the next page. Nil on the last page.
	NextPageToken CursorType
}
