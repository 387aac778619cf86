package goshape

import (
	"reflect"

	"github.com/samber/lo"
)

// Predicate is a boolean test over a resolved field. The set of predicates is
// closed: *Equals and *Boundary.
//
// Predicates are plain data, so a Source may evaluate them in memory or
// translate them into a query language.
type Predicate interface {
	// Target returns the field the predicate tests.
	Target() *Field
	// Eval evaluates the predicate against an element.
	Eval(elem any) bool

	eval(v reflect.Value) bool
	isPredicate()
}

// Equals tests a field for equality. A nil Value tests the field for absence.
type Equals struct {
	Field *Field
	// Value is nil or a value of Field.BaseType().
	Value any
}

// NewEquals builds an equality predicate from a loosely typed value. The value
// is converted to the declared type of the field. A nil value, a typed nil
// pointer included, matches elements whose field is absent.
func NewEquals(f *Field, value any) (*Equals, error) {
	if err := checkComparable(f); err != nil {
		return nil, err
	}

	if lo.IsNil(value) {
		return &Equals{Field: f}, nil
	}

	v, err := f.coerce(value)
	if err != nil {
		return nil, err
	}

	return &Equals{Field: f, Value: v.Interface()}, nil
}

// newEqualsTyped builds an equality predicate from a value whose static type
// must be exactly the declared type of the field.
func newEqualsTyped(f *Field, value reflect.Value) (*Equals, error) {
	if err := checkComparable(f); err != nil {
		return nil, err
	}
	if value.Type() != f.typ {
		return nil, invalidArgf("value of type '%s' does not match field '%s' of type '%s' on '%s'",
			typeName(value.Type()), f.Path(), typeName(f.typ), typeName(f.owner))
	}

	v, ok := deref(value)
	if !ok {
		return &Equals{Field: f}, nil
	}

	return &Equals{Field: f, Value: v.Interface()}, nil
}

func checkComparable(f *Field) error {
	if f == nil {
		return invalidArgf("nil field")
	}
	if !f.Comparable() {
		return invalidArgf("field '%s' of type '%s' on '%s' is not comparable",
			f.Path(), typeName(f.typ), typeName(f.owner))
	}

	return nil
}

// IsNull reports whether the predicate tests for an absent value.
func (p *Equals) IsNull() bool {
	return lo.IsNil(p.Value)
}

func (p *Equals) Target() *Field {
	return p.Field
}

func (p *Equals) Eval(elem any) bool {
	return p.eval(reflect.ValueOf(elem))
}

func (p *Equals) eval(elem reflect.Value) bool {
	v, ok := p.Field.lookup(elem)
	if p.IsNull() {
		return !ok
	}

	return ok && p.Field.equal(v, reflect.ValueOf(p.Value))
}

func (*Equals) isPredicate() {}

// Boundary is a strict keyset boundary: the field is greater than (OperatorGT)
// or less than (OperatorLT) Value under the comparison mode of the field.
type Boundary struct {
	Field    *Field
	Operator Operator
	// Value is a value of Field.BaseType().
	Value any
}

// NewBoundary builds a keyset boundary. The cursor is converted to the
// declared type of the field and must not be nil.
func NewBoundary(f *Field, op Operator, cursor any) (*Boundary, error) {
	if f == nil {
		return nil, invalidArgf("nil field")
	}
	if !op.Valid() {
		return nil, invalidArgf("invalid boundary operator '%s'", op)
	}
	if !f.Orderable() {
		return nil, invalidArgf("field '%s' of type '%s' on '%s' is not orderable",
			f.Path(), typeName(f.typ), typeName(f.owner))
	}
	if lo.IsNil(cursor) {
		return nil, invalidArgf("nil keyset cursor for field '%s' on '%s'", f.Path(), typeName(f.owner))
	}

	v, err := f.coerce(cursor)
	if err != nil {
		return nil, err
	}

	return &Boundary{Field: f, Operator: op, Value: v.Interface()}, nil
}

// Mode returns the comparison mode the boundary is evaluated with.
func (p *Boundary) Mode() ComparisonMode {
	return p.Field.Mode()
}

func (p *Boundary) Target() *Field {
	return p.Field
}

func (p *Boundary) Eval(elem any) bool {
	return p.eval(reflect.ValueOf(elem))
}

// eval compares with the same comparator as Ordering, absent values being
// the smallest. A descending boundary therefore keeps absent values, which
// is where a descending sort puts them.
func (p *Boundary) eval(elem reflect.Value) bool {
	v, ok := p.Field.lookup(elem)

	bound := reflect.ValueOf(p.Value)

	return p.Operator.accepts(compareOptional(p.Field.compare, v, ok, bound, bound.IsValid()))
}

func (*Boundary) isPredicate() {}

var (
	_ Predicate = (*Equals)(nil)
	_ Predicate = (*Boundary)(nil)
)
