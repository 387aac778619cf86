package goshape

import (
	"fmt"
	"reflect"
)

// Key is a strongly typed selector of a field of type S on elements of type
// T. Keys are meant to be built once, typically as package variables:
//
//	var UserCity = goshape.MustKey[User, *string]("Address.City")
type Key[T, S any] struct {
	field *Field
}

// NewKey resolves path on T with the default resolver.
func NewKey[T, S any](path string) (Key[T, S], error) {
	return ResolveKey[T, S](DefaultResolver(), path)
}

// ResolveKey resolves path on T with r. The declared type of the field must
// be exactly S.
func ResolveKey[T, S any](r *Resolver, path string) (Key[T, S], error) {
	f, err := ResolveFor[T](r, path)
	if err != nil {
		return Key[T, S]{}, err
	}

	if want := reflect.TypeFor[S](); f.typ != want {
		return Key[T, S]{}, invalidArgf("field '%s' on '%s' has type '%s', not '%s'",
			f.Path(), typeName(f.owner), typeName(f.typ), typeName(want))
	}

	return Key[T, S]{field: f}, nil
}

// MustKey is like NewKey but panics on error.
func MustKey[T, S any](path string) Key[T, S] {
	k, err := NewKey[T, S](path)
	if err != nil {
		panic(fmt.Errorf("cannot build key: %w", err))
	}

	return k
}

// Field returns the resolved field. It is nil for the zero Key.
func (k Key[T, S]) Field() *Field {
	return k.field
}

func (k Key[T, S]) Path() string {
	if k.field == nil {
		return ""
	}

	return k.field.Path()
}

// Value returns the field of elem as declared. The second result is false
// when a link before a pointer or interface field is nil.
func (k Key[T, S]) Value(elem T) (S, bool) {
	var zero S
	if k.field == nil {
		return zero, false
	}

	v, ok := k.field.lookupRaw(reflect.ValueOf(&elem).Elem())
	if !ok {
		return zero, false
	}

	s, _ := v.Interface().(S)

	return s, true
}

func (k Key[T, S]) valid() error {
	if k.field == nil {
		return invalidArgf("zero key of '%s'", typeName(reflect.TypeFor[T]()))
	}

	return nil
}
