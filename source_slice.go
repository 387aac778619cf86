package goshape

import (
	"context"
	"reflect"
	"slices"
)

// SliceSource is an in-memory Source. Predicates and orderings are evaluated
// directly over the elements; the backing slice is never modified.
type SliceSource[T any] struct {
	items []T
}

// FromSlice wraps items without copying them. items is never modified.
func FromSlice[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

func (s *SliceSource[T]) Where(p Predicate) (Source[T], error) {
	if p == nil {
		return nil, invalidArgf("nil predicate")
	}
	if err := checkField[T](p.Target()); err != nil {
		return nil, err
	}

	ret := make([]T, 0, len(s.items))
	for i := range s.items {
		if p.eval(reflect.ValueOf(&s.items[i]).Elem()) {
			ret = append(ret, s.items[i])
		}
	}

	return &SliceSource[T]{items: ret}, nil
}

func (s *SliceSource[T]) OrderBy(o Ordering) (Source[T], error) {
	if err := checkField[T](o.Field); err != nil {
		return nil, err
	}

	type keyed struct {
		item    T
		key     reflect.Value
		present bool
	}

	// Keys are looked up once per element rather than once per comparison.
	sorted := make([]keyed, len(s.items))
	for i := range s.items {
		key, ok := o.Field.lookup(reflect.ValueOf(&s.items[i]).Elem())
		sorted[i] = keyed{item: s.items[i], key: key, present: ok}
	}

	slices.SortStableFunc(sorted, func(a, b keyed) int {
		return o.compare(a.key, a.present, b.key, b.present)
	})

	ret := make([]T, len(sorted))
	for i := range sorted {
		ret[i] = sorted[i].item
	}

	return &SliceSource[T]{items: ret}, nil
}

func (s *SliceSource[T]) Skip(n int) Source[T] {
	n = min(max(n, 0), len(s.items))

	return &SliceSource[T]{items: s.items[n:]}
}

func (s *SliceSource[T]) Take(n int) Source[T] {
	n = min(max(n, 0), len(s.items))

	return &SliceSource[T]{items: s.items[:n:n]}
}

func (s *SliceSource[T]) Collect(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return slices.Clone(s.items), nil
}

func (s *SliceSource[T]) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return int64(len(s.items)), nil
}

var (
	_ Source[struct{}] = (*SliceSource[struct{}])(nil)
	_ Counter          = (*SliceSource[struct{}])(nil)
)
