package goshape

import (
	"cmp"
	"reflect"
)

// ComparisonMode selects how ordered comparisons of a field are expressed.
type ComparisonMode int

const (
	// ComparisonDirect uses the natural order of the type: numeric, boolean
	// (false < true) or a Compare(T) int method such as time.Time.Compare.
	ComparisonDirect ComparisonMode = iota
	// ComparisonLexicographic uses a three-way string comparison.
	ComparisonLexicographic
)

func (m ComparisonMode) String() string {
	switch m {
	case ComparisonDirect:
		return "direct"
	case ComparisonLexicographic:
		return "lexicographic"
	default:
		return "unknown"
	}
}

// ComparisonModeOf returns ComparisonLexicographic for textual types and
// ComparisonDirect for everything else.
func ComparisonModeOf(t reflect.Type) ComparisonMode {
	if t != nil && derefType(t).Kind() == reflect.String {
		return ComparisonLexicographic
	}

	return ComparisonDirect
}

// comparatorFor returns a three-way comparator for values of type t, or nil
// when t has no total order.
func (r *Resolver) comparatorFor(t reflect.Type) func(a, b reflect.Value) int {
	switch t.Kind() {
	case reflect.String:
		compareStrings := r.compareStrings
		return func(a, b reflect.Value) int {
			return compareStrings(a.String(), b.String())
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Int(), b.Int())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Uint(), b.Uint())
		}
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Float(), b.Float())
		}
	case reflect.Bool:
		return func(a, b reflect.Value) int {
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		}
	}

	if m, ok := t.MethodByName("Compare"); ok && isCompareMethod(m.Type, t) {
		return func(a, b reflect.Value) int {
			return int(m.Func.Call([]reflect.Value{a, b})[0].Int())
		}
	}

	return nil
}

// equalityFor returns an equality test for values of type t, or nil when t
// is not comparable.
func equalityFor(t reflect.Type) func(a, b reflect.Value) bool {
	if m, ok := t.MethodByName("Equal"); ok && isEqualMethod(m.Type, t) {
		return func(a, b reflect.Value) bool {
			return m.Func.Call([]reflect.Value{a, b})[0].Bool()
		}
	}

	if !t.Comparable() {
		return nil
	}

	return func(a, b reflect.Value) bool {
		return a.Equal(b)
	}
}

// isCompareMethod reports whether mt is func(T, T) int, receiver included.
func isCompareMethod(mt reflect.Type, t reflect.Type) bool {
	return mt.NumIn() == 2 && mt.In(1) == t &&
		mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Int
}

// isEqualMethod reports whether mt is func(T, T) bool, receiver included.
func isEqualMethod(mt reflect.Type, t reflect.Type) bool {
	return mt.NumIn() == 2 && mt.In(1) == t &&
		mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}

// compareOptional orders absent values before present ones.
func compareOptional(compare func(a, b reflect.Value) int, a reflect.Value, aok bool, b reflect.Value, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return compare(a, b)
	}
}
