package goshape

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldPath is a dotted sequence of member names, e.g. "Address.City".
type FieldPath []string

// ParseFieldPath splits a dotted path into segments.
func ParseFieldPath(path string) (FieldPath, error) {
	if strings.TrimSpace(path) == "" {
		return nil, invalidArgf("empty field path")
	}

	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			return nil, invalidArgf("field path '%s' contains an empty segment", path)
		}
	}

	return segments, nil
}

func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// Field is a resolved, null-safe accessor for a (possibly nested) member of
// an element type.
//
// Every pointer hop along the path, the element itself included, is guarded
// instead of panicking. Behind a nil link a field of pointer or interface type
// is absent, any other field takes the zero value of its type.
type Field struct {
	owner reflect.Type
	path  FieldPath
	// names are declared names along steps, embedded structs included.
	names []string
	steps []int
	typ   reflect.Type
	base  reflect.Type
	mode  ComparisonMode

	compare func(a, b reflect.Value) int
	equal   func(a, b reflect.Value) bool
}

// Owner returns the element type the field was resolved against.
func (f *Field) Owner() reflect.Type {
	return f.owner
}

// Path returns the canonical dotted path built from declared member names.
func (f *Field) Path() string {
	return f.path.String()
}

// Type returns the declared type of the last segment.
func (f *Field) Type() reflect.Type {
	return f.typ
}

// BaseType returns the declared type with pointers removed. Values coerced
// for the field and values returned by Lookup have this type.
func (f *Field) BaseType() reflect.Type {
	return f.base
}

// Mode returns the comparison mode used for ordering and keyset boundaries.
func (f *Field) Mode() ComparisonMode {
	return f.mode
}

// Orderable reports whether the field can be used to sort or paginate.
func (f *Field) Orderable() bool {
	return f.compare != nil
}

// Comparable reports whether the field can be used in an equality filter.
func (f *Field) Comparable() bool {
	return f.equal != nil
}

// Lookup returns the field value of elem with pointers removed. The second
// result is false when the value is absent: the field itself is nil, or a
// link before it is nil and the field is a pointer or an interface.
func (f *Field) Lookup(elem any) (any, bool) {
	v, ok := f.lookup(reflect.ValueOf(elem))
	if !ok {
		return nil, false
	}

	return v.Interface(), true
}

func (f *Field) lookup(v reflect.Value) (reflect.Value, bool) {
	v, ok := f.lookupRaw(v)
	if !ok {
		return reflect.Value{}, false
	}

	return deref(v)
}

// lookupRaw walks the path and returns the last field as declared, without
// removing its pointers.
func (f *Field) lookupRaw(v reflect.Value) (reflect.Value, bool) {
	for _, i := range f.steps {
		var ok bool
		if v, ok = deref(v); !ok {
			return f.behindNil()
		}
		v = v.Field(i)
	}

	return v, v.IsValid()
}

// behindNil is the value of the field when a link before it is nil.
func (f *Field) behindNil() (reflect.Value, bool) {
	if k := f.typ.Kind(); k == reflect.Pointer || k == reflect.Interface {
		return reflect.Value{}, false
	}

	return reflect.Zero(f.typ), true
}

func (f *Field) String() string {
	return fmt.Sprintf("%s.%s (%s)", typeName(f.owner), f.Path(), typeName(f.typ))
}

// deref follows pointers and interfaces down to a concrete value.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}

	return v, v.IsValid()
}
