// Package goshape filters, sorts and paginates collections by a field named
// at runtime.
//
// Overview
//
// A field is referenced by a dotted path such as "Address.City", matched
// case-insensitively against exported struct fields, or by a typed Key. The
// path is resolved once into a null-safe Field: behind a nil pointer on the
// path, a pointer field is absent and any other field is its zero value.
//
// Operations
//   - Filter, FilterTyped, FilterKey: equality filter. A nil value matches
//     absent fields; other values are converted to the field type.
//   - Sort, SortKey: stable sort, ascending by default. Absent values come
//     first in ascending order.
//   - Offset, OffsetKey: sort, skip, take.
//   - Keyset, KeysetKey: strict boundary after a cursor value, sort, take.
//     Text fields compare lexicographically, everything else by natural order.
//
// Every operation works over a Source. SliceSource evaluates in memory;
// GormSource translates predicates and orderings into GORM clauses.
//
// Pager and the Cursor implementations turn both paging strategies into
// opaque page tokens for APIs.
package goshape
