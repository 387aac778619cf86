package goshape

import (
	"fmt"
	"reflect"
)

// Filter keeps the elements whose field at path equals value. value is
// converted to the declared type of the field; nil matches absent fields.
//
// The predicate is built and checked even when src is empty.
func Filter[T any](src Source[T], path string, value any) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	f, err := ResolveFor[T](DefaultResolver(), path)
	if err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	return FilterField(src, f, value)
}

// FilterTyped is the strongly typed form of Filter: S must be exactly the
// declared type of the field. A nil pointer S matches absent fields.
func FilterTyped[T, S any](src Source[T], path string, value S) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	f, err := ResolveFor[T](DefaultResolver(), path)
	if err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	p, err := newEqualsTyped(f, reflect.ValueOf(&value).Elem())
	if err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	return where(src, p)
}

// FilterKey keeps the elements whose key field equals value.
func FilterKey[T, S any](src Source[T], key Key[T, S], value S) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := key.valid(); err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	p, err := newEqualsTyped(key.field, reflect.ValueOf(&value).Elem())
	if err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	return where(src, p)
}

// FilterField keeps the elements whose field f equals value, loosely typed.
func FilterField[T any](src Source[T], f *Field, value any) (Source[T], error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := checkField[T](f); err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	p, err := NewEquals(f, value)
	if err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	return where(src, p)
}

func where[T any](src Source[T], p Predicate) (Source[T], error) {
	ret, err := src.Where(p)
	if err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	return ret, nil
}
