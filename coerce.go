package param

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// epochPattern matches strings treated as epoch milliseconds by Date.
var epochPattern = regexp.MustCompile(`^\d{5,}$`)

// Coerce converts a non-nil formatted value to t.
//
// Currently supports:
//   - Pattern: case-insensitive *regexp.Regexp
//   - Date: epoch milliseconds (numbers or 5+ digit strings) or one of
//     the known date layouts
//   - Boolean: false for "false", "0" and falsy values, true otherwise
//   - String: primitive string conversion
//   - Number: float64 ("" becomes NaN)
//   - Custom: the type's Constructor
//
// nil is returned unchanged.
func Coerce(value any, t Type) (any, error) {
	if isNil(value) {
		return nil, nil
	}

	switch t.Elem().Kind() {
	case KindPattern:
		return coercePattern(value)
	case KindDate:
		return coerceDate(value)
	case KindBoolean:
		return coerceBoolean(value), nil
	case KindString:
		return toString(value), nil
	case KindNumber:
		return coerceNumber(value)
	default:
		return coerceCustom(value, t.Elem())
	}
}

func coercePattern(value any) (*regexp.Regexp, error) {
	source := toString(value)
	if !strings.HasPrefix(source, "(?i)") {
		source = "(?i)" + source
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPattern, err)
	}
	return re, nil
}

func coerceDate(value any) (time.Time, error) {
	if t, ok := value.(time.Time); ok {
		return t, nil
	}
	if n, ok := toNumber(value); ok {
		return epochMillis(n)
	}

	s := toString(value)
	if epochPattern.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedDate, err)
		}
		return time.UnixMilli(n).UTC(), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

func epochMillis(n float64) (time.Time, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedDate, n)
	}
	return time.UnixMilli(int64(n)).UTC(), nil
}

// coerceBoolean treats any truthy value other than the strings "false" and
// "0" as true.
func coerceBoolean(value any) bool {
	if s, ok := value.(string); ok && (s == "false" || s == "0") {
		return false
	}
	return isTruthy(value)
}

func coerceNumber(value any) (float64, error) {
	if n, ok := toNumber(value); ok {
		return n, nil
	}

	switch v := value.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case time.Time:
		return float64(v.UnixMilli()), nil
	}

	s := strings.TrimSpace(toString(value))
	if s == "" {
		return math.NaN(), nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedNumber, err)
	}
	return n, nil
}

func coerceCustom(value any, t Type) (any, error) {
	if t.construct == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnconstructibleType, t.Name())
	}
	return t.construct(value)
}
