package goshape

import "fmt"

// Sort orders the elements by the field at path. The sort is stable and has
// no tie-break key. An empty direction means ascending.
func Sort[T any](src Source[T], path string, direction Direction) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	f, err := ResolveFor[T](DefaultResolver(), path)
	if err != nil {
		return nil, fmt.Errorf("cannot sort: %w", err)
	}

	return SortField(src, f, direction)
}

// SortKey is the strongly typed form of Sort.
func SortKey[T, S any](src Source[T], key Key[T, S], direction Direction) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := key.valid(); err != nil {
		return nil, fmt.Errorf("cannot sort: %w", err)
	}

	return SortField(src, key.field, direction)
}

// SortField sorts by an already resolved field.
func SortField[T any](src Source[T], f *Field, direction Direction) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := checkField[T](f); err != nil {
		return nil, fmt.Errorf("cannot sort: %w", err)
	}

	o, err := NewOrdering(f, direction)
	if err != nil {
		return nil, fmt.Errorf("cannot sort: %w", err)
	}

	ret, err := src.OrderBy(o)
	if err != nil {
		return nil, fmt.Errorf("cannot sort: %w", err)
	}

	return ret, nil
}
