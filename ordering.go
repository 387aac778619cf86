package goshape

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction for the requested dataset. The zero
// value means ascending.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == "" || o == DirectionASC || o == DirectionDESC
}

// OrDefault returns DirectionASC for the zero value.
func (o Direction) OrDefault() Direction {
	return lo.Ternary(o == "", DirectionASC, o)
}

func (o Direction) ForOperator() Operator {
	switch o.OrDefault() {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", o))
	}
}

// ParseDirection parses "asc" or "desc" in any case. An empty string yields
// DirectionASC.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s))).OrDefault()
	if !d.Valid() {
		return "", invalidArgf("invalid ordering direction '%s'", s)
	}

	return d, nil
}

// OrderBy is an unresolved sort request, typically decoded from an API
// payload.
type OrderBy struct {
	Path      string
	Direction Direction
}

var _availablePathSymbols = append([]rune("_."), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return invalidArgf("invalid ordering direction '%s'", o.Direction)
	}

	if o.Path == "" {
		return invalidArgf("empty ordering field path")
	}

	// Paths may end up in SQL, restrict them to identifier characters.
	if !lo.Every(_availablePathSymbols, []rune(o.Path)) {
		return invalidArgf("ordering field path contains forbidden symbols '%s'", o.Path)
	}

	return nil
}

func (o OrderBy) String() string {
	return fmt.Sprintf("%s %s", o.Path, o.Direction.OrDefault())
}

// ParseSort builds an OrderBy from a string in the format "path [asc|desc]".
// When allowed paths are given, the path must match one of them ignoring
// case; the closest one is suggested otherwise.
func ParseSort(raw string, allowed ...string) (OrderBy, error) {
	parts := strings.Fields(raw)
	if len(parts) == 0 || len(parts) > 2 {
		return OrderBy{}, invalidArgf("invalid ordering string format '%s'", raw)
	}

	direction := DirectionASC
	if len(parts) == 2 {
		var err error
		if direction, err = ParseDirection(parts[1]); err != nil {
			return OrderBy{}, err
		}
	}

	path := parts[0]
	if len(allowed) > 0 {
		var ok bool
		path, ok = lo.Find(allowed, func(a string) bool { return strings.EqualFold(a, path) })
		if !ok {
			return OrderBy{}, invalidArgf("invalid ordering field '%s'. closest: '%s'",
				parts[0], closestName(parts[0], allowed))
		}
	}

	ret := OrderBy{Path: path, Direction: direction}
	if err := ret.validate(); err != nil {
		return OrderBy{}, err
	}

	return ret, nil
}

// Ordering is a resolved sort node: a field and a direction.
type Ordering struct {
	Field     *Field
	Direction Direction
}

// NewOrdering builds an ordering node. The field must have a total order.
func NewOrdering(f *Field, direction Direction) (Ordering, error) {
	if f == nil {
		return Ordering{}, invalidArgf("nil field")
	}
	if !direction.Valid() {
		return Ordering{}, invalidArgf("invalid ordering direction '%s' for field '%s'", direction, f.Path())
	}
	if !f.Orderable() {
		return Ordering{}, invalidArgf("field '%s' of type '%s' on '%s' is not orderable",
			f.Path(), typeName(f.typ), typeName(f.owner))
	}

	return Ordering{Field: f, Direction: direction.OrDefault()}, nil
}

// Desc reports whether the ordering is descending.
func (o Ordering) Desc() bool {
	return o.Direction == DirectionDESC
}

// compare orders two looked up values. Absent values come first in
// ascending order and last in descending order.
func (o Ordering) compare(a reflect.Value, aok bool, b reflect.Value, bok bool) int {
	c := compareOptional(o.Field.compare, a, aok, b, bok)

	return lo.Ternary(o.Desc(), -c, c)
}
