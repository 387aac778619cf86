package goshape

import (
	"fmt"
	"reflect"
)

// Offset sorts by the field at path, skips skip elements and takes up to
// take of the rest. Negative counts are rejected.
func Offset[T any](src Source[T], path string, direction Direction, skip, take int) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	f, err := ResolveFor[T](DefaultResolver(), path)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	return OffsetField(src, f, direction, skip, take)
}

// OffsetKey is the strongly typed form of Offset.
func OffsetKey[T, S any](src Source[T], key Key[T, S], direction Direction, skip, take int) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := key.valid(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	return OffsetField(src, key.field, direction, skip, take)
}

// OffsetField pages by an already resolved field.
func OffsetField[T any](src Source[T], f *Field, direction Direction, skip, take int) (Source[T], error) {
	if take < 0 {
		return nil, invalidArgf("negative take %d", take)
	}

	ret, err := offset(src, f, direction, skip)
	if err != nil {
		return nil, err
	}

	return ret.Take(take), nil
}

// offset sorts and skips without bounding the result.
func offset[T any](src Source[T], f *Field, direction Direction, skip int) (Source[T], error) {
	if skip < 0 {
		return nil, invalidArgf("negative skip %d", skip)
	}

	sorted, err := SortField(src, f, direction)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	return sorted.Skip(skip), nil
}

// Keyset keeps the elements strictly after cursor in the given direction
// (greater for ascending, less for descending), sorts them by the field at
// path and takes up to take of them.
//
// Elements equal to cursor are excluded, so with duplicate field values all
// rows tied with the cursor are skipped.
func Keyset[T any](src Source[T], path string, cursor any, direction Direction, take int) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	f, err := ResolveFor[T](DefaultResolver(), path)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	return KeysetField(src, f, cursor, direction, take)
}

// KeysetKey is the strongly typed form of Keyset. A nil pointer cursor is
// rejected.
func KeysetKey[T, S any](src Source[T], key Key[T, S], cursor S, direction Direction, take int) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := key.valid(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	v, ok := deref(reflect.ValueOf(&cursor).Elem())
	if !ok {
		return nil, invalidArgf("nil keyset cursor for field '%s' on '%s'", key.Path(), typeName(key.field.owner))
	}

	return KeysetField(src, key.field, v.Interface(), direction, take)
}

// KeysetField pages after cursor by an already resolved field.
func KeysetField[T any](src Source[T], f *Field, cursor any, direction Direction, take int) (Source[T], error) {
	if take < 0 {
		return nil, invalidArgf("negative take %d", take)
	}

	ret, err := keyset(src, f, cursor, direction)
	if err != nil {
		return nil, err
	}

	return ret.Take(take), nil
}

// keyset applies the boundary and the ordering without bounding the result.
func keyset[T any](src Source[T], f *Field, cursor any, direction Direction) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := checkField[T](f); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}
	if !direction.Valid() {
		return nil, invalidArgf("invalid ordering direction '%s'", direction)
	}

	boundary, err := NewBoundary(f, direction.ForOperator(), cursor)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	filtered, err := src.Where(boundary)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	sorted, err := SortField(filtered, f, direction)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	return sorted, nil
}
