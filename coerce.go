package goshape

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	_textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	_timeType            = reflect.TypeFor[time.Time]()
	_durationType        = reflect.TypeFor[time.Duration]()
)

// coerce converts a loosely typed, non-nil value to the base type of the
// field.
func (f *Field) coerce(value any) (reflect.Value, error) {
	v, ok := deref(reflect.ValueOf(value))
	if !ok {
		return reflect.Value{}, f.coercionError(value, fmt.Errorf("nil value"))
	}

	base := f.base
	if v.Type() == base {
		return v, nil
	}
	if v.Kind() == base.Kind() && v.Type().ConvertibleTo(base) {
		return v.Convert(base), nil
	}

	var textErr error
	if reflect.PointerTo(base).Implements(_textUnmarshalerType) {
		if text, ok := asText(v); ok {
			ptr := reflect.New(base)
			textErr = ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText(text)
			if textErr == nil {
				return ptr.Elem(), nil
			}
		}
	}

	in, ok := castInput(v, base)
	if !ok {
		return reflect.Value{}, f.coercionError(value,
			fmt.Errorf("%s does not convert to %s", v.Kind(), base.Kind()))
	}

	converted, err := castTo(in, base)
	if err != nil {
		if textErr != nil {
			err = textErr
		}

		return reflect.Value{}, f.coercionError(value, err)
	}

	return converted, nil
}

func (f *Field) coercionError(value any, cause error) error {
	return fmt.Errorf("%w: cannot convert %v (%T) to '%s' of field '%s' on type '%s': %w",
		ErrTypeCoercion, value, value, typeName(f.base), f.Path(), typeName(f.owner), cause)
}

func asText(v reflect.Value) ([]byte, bool) {
	switch {
	case v.Kind() == reflect.String:
		return []byte(v.String()), true
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		return v.Bytes(), true
	default:
		return nil, false
	}
}

// castInput returns the value handed to castTo. Text is parsed into any
// type, numbers only convert into numbers.
func castInput(v reflect.Value, t reflect.Type) (any, bool) {
	if text, ok := asText(v); ok {
		return string(text), true
	}
	if t == _timeType || !isNumber(t.Kind()) {
		return nil, false
	}

	switch {
	case v.CanInt():
		return v.Int(), true
	case v.CanUint():
		return v.Uint(), true
	case v.CanFloat():
		return v.Float(), true
	default:
		return nil, false
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// castTo converts i to t using spf13/cast, rejecting lossy numeric
// conversions.
func castTo(i any, t reflect.Type) (reflect.Value, error) {
	switch t {
	case _timeType:
		tm, err := cast.ToTimeE(i)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(tm), nil
	case _durationType:
		d, err := cast.ToDurationE(i)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(d), nil
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		s, err := cast.ToStringE(i)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetString(s)
	case reflect.Bool:
		b, err := cast.ToBoolE(i)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if err := checkIntegral(i); err != nil {
			return reflect.Value{}, err
		}
		n, err := cast.ToInt64E(i)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, t)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if err := checkIntegral(i); err != nil {
			return reflect.Value{}, err
		}
		n, err := cast.ToUint64E(i)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowUint(n) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, t)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if isBlank(i) {
			return reflect.Value{}, fmt.Errorf("empty string is not a number")
		}
		n, err := cast.ToFloat64E(i)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowFloat(n) {
			return reflect.Value{}, fmt.Errorf("value %v overflows %s", n, t)
		}
		out.SetFloat(n)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported target type")
	}

	return out, nil
}

// checkIntegral rejects values that would be truncated when cast to an
// integer: fractional floats and decimal strings such as "3.5".
func checkIntegral(i any) error {
	var f float64
	switch v := i.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	case string, json.Number:
		s := fmt.Sprint(v)
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("empty string is not a number")
		}
		if !strings.Contains(s, ".") {
			return nil
		}

		var err error
		if f, err = cast.ToFloat64E(s); err != nil {
			return err
		}
	default:
		return nil
	}

	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("value %v is not an integer", i)
	}

	return nil
}

func isBlank(i any) bool {
	switch v := i.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case json.Number:
		return strings.TrimSpace(string(v)) == ""
	default:
		return false
	}
}
