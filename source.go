package goshape

import (
	"context"
	"reflect"

	"github.com/samber/lo"
)

// Source is the capability the engines need from a collection of T.
//
// Implementations must not mutate the receiver: every operation returns a
// new Source. Where and OrderBy may reject a node they cannot apply. Skip and
// Take receive non-negative counts.
type Source[T any] interface {
	// Where keeps the elements satisfying p.
	Where(p Predicate) (Source[T], error)
	// OrderBy sorts the elements stably, replacing any previous ordering.
	OrderBy(o Ordering) (Source[T], error)
	// Skip drops the first n elements.
	Skip(n int) Source[T]
	// Take keeps at most n elements.
	Take(n int) Source[T]
	// Collect enumerates the elements.
	Collect(ctx context.Context) ([]T, error)
}

// Counter is implemented by sources able to count their elements without
// enumerating them.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

func checkSource[T any](src Source[T]) error {
	if lo.IsNil(src) {
		return invalidArgf("nil source of '%s'", typeName(reflect.TypeFor[T]()))
	}

	return nil
}

// checkField verifies that f was resolved for the element type T.
func checkField[T any](f *Field) error {
	if f == nil {
		return invalidArgf("nil field")
	}

	if want := reflect.TypeFor[T](); f.owner != want {
		return invalidArgf("field '%s' was resolved for '%s', not for '%s'",
			f.Path(), typeName(f.owner), typeName(want))
	}

	return nil
}
