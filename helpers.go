package param

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// isNil reports whether v is nil or a nil pointer, map, slice, func or
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func isNaN(v any) bool {
	switch n := v.(type) {
	case float64:
		return math.IsNaN(n)
	case float32:
		return math.IsNaN(float64(n))
	default:
		return false
	}
}

// isAbsent reports whether v counts as "no value": nil, NaN or "".
func isAbsent(v any) bool {
	if isNil(v) || isNaN(v) {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// isTruthy follows the usual loose truthiness: false, 0, NaN, "" and nil
// are falsy, everything else is truthy.
func isTruthy(v any) bool {
	if isNil(v) {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	}
	if n, ok := toNumber(v); ok {
		return n != 0 && !math.IsNaN(n)
	}
	return true
}

// toNumber converts any Go numeric kind to float64.
func toNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func isNumber(v any) bool {
	_, ok := toNumber(v)
	return ok
}

// toString is the primitive string conversion used by String coercion and
// by formatters that operate on text.
func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case *regexp.Regexp:
		return t.String()
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	if n, ok := toNumber(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	if seq, ok := toSlice(v); ok {
		parts := make([]string, len(seq))
		for i, e := range seq {
			parts[i] = toString(e)
		}
		return strings.Join(parts, DefaultSeparator)
	}
	return fmt.Sprint(v)
}

// toSlice converts any slice or array, except []byte and uuid-like byte
// arrays, into []any.
func toSlice(v any) ([]any, bool) {
	if seq, ok := v.([]any); ok {
		return seq, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type() == BytesType {
			return nil, false
		}
	case reflect.Array:
		if rv.Type() == UUIDType {
			return nil, false
		}
	default:
		return nil, false
	}

	seq := make([]any, rv.Len())
	for i := range seq {
		seq[i] = rv.Index(i).Interface()
	}
	return seq, true
}

// lengthOf returns the length of strings (in runes), slices, arrays and maps.
func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// compare orders a against b. Numbers compare numerically, times
// chronologically (against numbers as epoch milliseconds) and strings
// lexically. ok is false for incomparable pairs.
func compare(a, b any) (int, bool) {
	if at, ok := a.(time.Time); ok {
		switch bt := b.(type) {
		case time.Time:
			return at.Compare(bt), true
		default:
			if n, ok := toNumber(b); ok {
				return compareFloat(float64(at.UnixMilli()), n)
			}
			return 0, false
		}
	}

	if an, ok := toNumber(a); ok {
		if bt, ok := b.(time.Time); ok {
			return compareFloat(an, float64(bt.UnixMilli()))
		}
		bn, ok := toNumber(b)
		if !ok {
			return 0, false
		}
		return compareFloat(an, bn)
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func compareFloat(a, b float64) (int, bool) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

// looseEqual compares enum members: numbers by value regardless of their Go
// kind, everything else with reflect.DeepEqual.
func looseEqual(a, b any) bool {
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok && bok {
		return an == bn
	}
	return reflect.DeepEqual(a, b)
}
