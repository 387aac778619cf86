package goshape

import (
	"context"
	"fmt"
	"reflect"

	"github.com/samber/lo"
)

// RawPager is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPager `json:",inline"`
//	}
type RawPager struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// StartToken - base64-encoded cursor token obtained via Cursor.String().
	// If empty, the first page with Limit records is returned.
	StartToken string `json:"startToken"`
	// Sort - ordering in the format "path [asc|desc]". If empty, the fallback
	// ordering passed to Decode* is used.
	Sort string `json:"sort"`
}

// DecodeKeyset converts RawPager into *Pager[*KeysetCursor], normalizing
// Limit and validating StartToken. allowed restricts the sortable paths,
// see ParseSort.
func (p RawPager) DecodeKeyset(fallback OrderBy, allowed ...string) (*Pager[*KeysetCursor], error) {
	orderBy, err := p.orderBy(fallback, allowed...)
	if err != nil {
		return nil, err
	}

	return DecodeKeysetPager(p.Limit, p.StartToken, orderBy)
}

// DecodeOffset converts RawPager into *Pager[*OffsetCursor], normalizing
// Limit and validating StartToken.
func (p RawPager) DecodeOffset(fallback OrderBy, allowed ...string) (*Pager[*OffsetCursor], error) {
	orderBy, err := p.orderBy(fallback, allowed...)
	if err != nil {
		return nil, err
	}

	return DecodeOffsetPager(p.Limit, p.StartToken, orderBy)
}

func (p RawPager) orderBy(fallback OrderBy, allowed ...string) (OrderBy, error) {
	if p.Sort == "" {
		return fallback, nil
	}

	return ParseSort(p.Sort, allowed...)
}

// Pager orchestrates single-field pagination: ordering, page size, lookahead
// and page tokens.
type Pager[CursorType Cursor] struct {
	lookahead bool
	total     bool
	limit     int
	cursor    CursorType
	sort      OrderBy
	resolver  *Resolver
}

func NewPager[CursorType Cursor]() *Pager[CursorType] {
	return new(Pager[CursorType])
}

// DecodeKeysetPager decodes a keyset token into *Pager.
func DecodeKeysetPager(limit int, rawStartToken string, orderBy OrderBy) (*Pager[*KeysetCursor], error) {
	cursor, err := DecodeKeysetCursor(rawStartToken)
	if err != nil {
		return nil, err
	}

	return (&Pager[*KeysetCursor]{
		cursor: cursor,
	}).WithSort(orderBy).WithLimit(limit), nil
}

// DecodeOffsetPager decodes an offset token into *Pager.
func DecodeOffsetPager(limit int, rawStartToken string, orderBy OrderBy) (*Pager[*OffsetCursor], error) {
	cursor, err := DecodeOffsetCursor(rawStartToken)
	if err != nil {
		return nil, err
	}

	return (&Pager[*OffsetCursor]{
		cursor: cursor,
	}).WithSort(orderBy).WithLimit(limit), nil
}

// WithLookahead enables lookahead pagination, which fetches one extra element
// to determine whether the current page is the last.
//
// IMPORTANT:
// Cannot be used together with WithUnlimited() or WithLimit(NoLimit).
func (c *Pager[CursorType]) WithLookahead() *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.lookahead = true

	return c
}

// WithUnlimited allows returning all records without a limit.
//
// IMPORTANT:
// Cannot be used together with WithLookahead.
func (c *Pager[CursorType]) WithUnlimited() *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.limit = NoLimit

	return c
}

// WithLimit sets the maximum number of returned records.
//
// IMPORTANT:
//   - NoLimit cannot be used together with WithLookahead.
//   - If the limit is not NoLimit, NormalizeLimit will be applied.
func (c *Pager[CursorType]) WithLimit(limit int) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	if limit == NoLimit {
		return c.WithUnlimited()
	}
	c.limit = NormalizeLimit(limit)

	return c
}

// WithCursor sets the cursor explicitly.
func (c *Pager[CursorType]) WithCursor(cursor CursorType) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.cursor = cursor

	return c
}

// WithSort replaces the ordering.
func (c *Pager[CursorType]) WithSort(orderBy OrderBy) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.sort = orderBy

	return c
}

// WithTotal requests the number of elements before pagination. It costs an
// extra query on deferred sources and is ignored for sources that cannot
// count.
func (c *Pager[CursorType]) WithTotal() *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.total = true

	return c
}

// WithResolver sets the resolver for the sort path. DefaultResolver is used
// otherwise.
func (c *Pager[CursorType]) WithResolver(r *Resolver) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.resolver = r

	return c
}

// GetSort returns the ordering that will be applied to the dataset.
func (c *Pager[CursorType]) GetSort() OrderBy {
	if c == nil {
		return OrderBy{}
	}

	return c.sort
}

// IsUnlimited returns true if the limit equals NoLimit (unbounded number of records).
func (c *Pager[CursorType]) IsUnlimited() bool {
	if c == nil {
		return false
	}

	return c.limit == NoLimit
}

// IsLookahead returns true if lookahead pagination is enabled.
func (c *Pager[CursorType]) IsLookahead() bool {
	if c == nil {
		return false
	}

	return c.lookahead
}

// GetLimit returns the limit as it is stored in Pager.
func (c *Pager[CursorType]) GetLimit() int {
	if c == nil {
		return 0
	}

	return c.limit
}

// GetCursor returns the cursor stored in Pager as-is.
func (c *Pager[CursorType]) GetCursor() CursorType {
	if c == nil {
		return lo.Empty[CursorType]()
	}

	return c.cursor
}

// GetDatasetLimit returns the limit adjusted for lookahead:
//   - if Lookahead = true → GetLimit() + 1
//   - if Lookahead = false → GetLimit()
func (c *Pager[CursorType]) GetDatasetLimit() int {
	limit := c.GetLimit()
	isLookahead := c.IsLookahead()

	return lo.Ternary(isLookahead, limit+1, limit)
}

func (c *Pager[CursorType]) getResolver() *Resolver {
	if c == nil || c.resolver == nil {
		return DefaultResolver()
	}

	return c.resolver
}

func (c *Pager[_]) validate() error {
	if c == nil {
		return invalidArgf("pager is nil")
	}

	if c.limit == NoLimit && c.lookahead {
		return invalidArgf("cannot apply lookahead to unlimited paging")
	}

	if c.limit == 0 || c.limit < NoLimit {
		return invalidArgf("invalid limit %d", c.limit)
	}

	if err := c.sort.validate(); err != nil {
		return err
	}

	if lo.IsNil(c.cursor) {
		return nil
	}

	return c.cursor.validate(c.sort)
}

// Paginate resolves the pager ordering on T and reads one page of src.
//
// *OffsetCursor pagers page with skip/take, *KeysetCursor pagers page with a
// strict boundary on the sort field. The result carries the token of the next
// page, nil on the last page.
func Paginate[T any, CursorType Cursor](
	ctx context.Context,
	pager *Pager[CursorType],
	src Source[T],
) (*PaginationResult[T, CursorType], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := pager.validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	f, err := pager.getResolver().Resolve(reflect.TypeFor[T](), pager.sort.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	ret := &PaginationResult[T, CursorType]{
		AppliedLimit: pager.limit,
	}

	if counter, ok := src.(Counter); ok && pager.total {
		if ret.Total, err = counter.Count(ctx); err != nil {
			return nil, fmt.Errorf("cannot paginate: %w", err)
		}
	}

	var page Source[T]
	switch cursor := any(pager.cursor).(type) {
	case *OffsetCursor:
		page, err = offset(src, f, pager.sort.Direction, cursor.GetOffset())
	case *KeysetCursor:
		if cursor.IsEmpty() {
			page, err = SortField(src, f, pager.sort.Direction)
		} else {
			page, err = keyset(src, f, cursor.GetValue(), pager.sort.Direction)
		}
	default:
		return nil, invalidArgf("unsupported cursor type %T", pager.cursor)
	}
	if err != nil {
		return nil, err
	}

	// When lookahead is enabled, fetch one extra element to determine if
	// there is a next page.
	if !pager.IsUnlimited() {
		page = page.Take(pager.GetDatasetLimit())
	}

	items, err := page.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	var next any
	switch any(pager).(type) {
	case *Pager[*OffsetCursor]:
		ret.Items, next, err = nextOffsetCursor(pager, items)
	case *Pager[*KeysetCursor]:
		ret.Items, next, err = nextKeysetCursor(pager, f, items)
	}
	if err != nil {
		return nil, err
	}

	if next != nil {
		ret.NextPageToken = next.(CursorType)
	}

	return ret, nil
}

// NextKeysetCursor builds the token for the page following resultSet, a page
// read with pager. Returns the trimmed result set and a nil cursor on the
// last page.
func NextKeysetCursor[T any](pager *Pager[*KeysetCursor], resultSet []T) ([]T, *KeysetCursor, error) {
	if err := pager.validate(); err != nil {
		return nil, nil, fmt.Errorf("cannot build next page cursor: %w", err)
	}

	f, err := pager.getResolver().Resolve(reflect.TypeFor[T](), pager.sort.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page cursor: %w", err)
	}

	items, next, err := nextKeysetCursor(pager, f, resultSet)
	if err != nil || next == nil {
		return items, nil, err
	}

	return items, next.(*KeysetCursor), nil
}

func nextKeysetCursor[T any, CursorType Cursor](pager *Pager[CursorType], f *Field, resultSet []T) ([]T, any, error) {
	if IsLastPage(pager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(pager, resultSet)

	value, ok := f.Lookup(lo.LastOrEmpty(resultSet))
	if !ok {
		return nil, nil, invalidArgf("cannot build next page cursor: field '%s' of the last element is absent", f.Path())
	}

	return resultSet, NewKeysetCursor(f.Path(), value, pager.sort.Direction.ForOperator()), nil
}

// NextOffsetCursor builds the offset token for the page following resultSet.
func NextOffsetCursor[T any](pager *Pager[*OffsetCursor], resultSet []T) ([]T, *OffsetCursor, error) {
	if err := pager.validate(); err != nil {
		return nil, nil, fmt.Errorf("cannot build next page offset cursor: %w", err)
	}

	items, next, err := nextOffsetCursor(pager, resultSet)
	if err != nil || next == nil {
		return items, nil, err
	}

	return items, next.(*OffsetCursor), nil
}

func nextOffsetCursor[T any, CursorType Cursor](pager *Pager[CursorType], resultSet []T) ([]T, any, error) {
	if IsLastPage(pager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(pager, resultSet)

	current, _ := any(pager.cursor).(*OffsetCursor)

	return resultSet, NewOffsetCursor(current.GetOffset() + len(resultSet)), nil
}

// IsLastPage returns true if the result set is the last page in the dataset.
//
// The last page is determined by one of three conditions:
//  1. The pager is unlimited.
//  2. The number of returned records is less than Limit.
//  3. Lookahead = true and the number of returned records is less than or equal to Limit.
//
// In these cases, return the result set unchanged with an empty token to
// signal the end of the dataset to the client.
func IsLastPage[CursorType Cursor, T any](initialPager *Pager[CursorType], resultSet []T) bool {
	return initialPager.IsUnlimited() ||
		len(resultSet) < initialPager.limit ||
		(initialPager.lookahead && len(resultSet) <= initialPager.limit)
}

// TrimResultSet trims the result set to what should be returned to the client.
//
// If lookahead = true, drop the last element before returning. Suppose
// resultSet = [a, b, c].
//
//   - With lookahead → resultSet becomes [a, b].
//   - Without lookahead → resultSet remains unchanged.
//
// This enables building pagination based on a STRICT comparison with the
// last element of the result set.
func TrimResultSet[CursorType Cursor, T any](initialPager *Pager[CursorType], resultSet []T) []T {
	if initialPager.lookahead && len(resultSet) > 0 {
		resultSet = resultSet[:len(resultSet)-1]
	}

	return resultSet
}
