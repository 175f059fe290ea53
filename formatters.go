package param

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FormatterFunc transforms a value before coercion. option is the value of
// the option that triggered the formatter; a formatter is called whenever
// its option is declared and decides by itself whether to act on it.
type FormatterFunc func(option, value any, p *Param) any

// FormatFunc is the final format hook, run after coercion.
type FormatFunc func(value any, p *Param) any

func identityFormat(value any, _ *Param) any { return value }

// DefaultFormatter substitutes the option value for nil, NaN or "". A
// func(*Param) any option is called to produce the default. When the param
// has no declared type, the type is inferred again from the substitute.
func DefaultFormatter(option, value any, p *Param) any {
	if !isAbsent(value) {
		return value
	}

	switch fn := option.(type) {
	case func(*Param) any:
		value = fn(p)
	case func() any:
		value = fn()
	default:
		value = option
	}

	if !p.declaredType {
		p.inferTypeFrom(value)
	}
	return value
}

// NormalizeFormatter splits the value into words, lowercases them and joins
// them with single spaces: "fooBar_baz" becomes "foo bar baz".
func NormalizeFormatter(option, value any, _ *Param) any {
	if !isTruthy(option) || isNil(value) {
		return value
	}
	return strings.Join(words(deburr(toString(value))), " ")
}

func LowercaseFormatter(option, value any, _ *Param) any {
	if s, ok := value.(string); ok && isTruthy(option) {
		return cases.Lower(language.Und).String(s)
	}
	return value
}

func UppercaseFormatter(option, value any, _ *Param) any {
	if s, ok := value.(string); ok && isTruthy(option) {
		return cases.Upper(language.Und).String(s)
	}
	return value
}

func TrimFormatter(option, value any, _ *Param) any {
	if s, ok := value.(string); ok && isTruthy(option) {
		return strings.TrimSpace(s)
	}
	return value
}

// deburr strips combining marks: "Crème Brûlée" becomes "Creme Brulee".
func deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// words splits s into lowercase words. Words break on anything that is not
// a letter or digit, on lower-to-upper case changes ("fooBar"), before the
// last capital of an acronym ("XMLHttp") and between letters and digits.
func words(s string) []string {
	var (
		result  []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			result = append(result, cases.Lower(language.Und).String(string(current)))
			current = current[:0]
		}
	}

	rs := []rune(strings.ReplaceAll(s, "'", ""))
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			switch {
			case unicode.IsDigit(prev) != unicode.IsDigit(r):
				flush()
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) &&
				i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return result
}
