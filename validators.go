package param

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of a single validator. Extra fields are merged
// into the Failure when the validator fails.
type Result struct {
	Valid   bool
	Message string
	Extra   map[string]any
}

// Pass is the Result of a passing validator.
func Pass() Result { return Result{Valid: true} }

// Fail builds a failing Result.
func Fail(format string, args ...any) Result {
	return Result{Valid: false, Message: fmt.Sprintf(format, args...)}
}

// ValidatorFunc checks a value. option is the value of the option that
// triggered the validator.
type ValidatorFunc func(option, value any, p *Param) Result

// ValidateFunc is the final custom validator declared with the validate
// option.
type ValidateFunc func(value any, p *Param) Result

func alwaysValid(any, *Param) Result { return Pass() }

// result builds a Result that carries its message whether or not it passed.
func result(valid bool, format string, args ...any) Result {
	return Result{Valid: valid, Message: fmt.Sprintf(format, args...)}
}

func RequiredValidator(option, value any, p *Param) Result {
	return result(
		!isTruthy(option) || !isAbsent(value),
		"%s is required", p.name,
	)
}

// MinValidator and MaxValidator never fail on nil: absence is not a bound
// violation. Incomparable values fail.
func MinValidator(option, value any, p *Param) Result {
	return result(
		isNil(value) || atLeast(value, option),
		"%s must be greater than or equal to %s", p.name, toString(option),
	)
}

func MaxValidator(option, value any, p *Param) Result {
	return result(
		isNil(value) || atMost(value, option),
		"%s must be lower than or equal to %s", p.name, toString(option),
	)
}

func atLeast(value, bound any) bool {
	c, ok := compare(value, bound)
	return ok && c >= 0
}

func atMost(value, bound any) bool {
	c, ok := compare(value, bound)
	return ok && c <= 0
}

// MinLengthValidator and MaxLengthValidator check the length of the value,
// or the length of the whole bound sequence when the param is multiple.
func MinLengthValidator(option, value any, p *Param) Result {
	return result(
		checkLength(option, value, p, func(n, bound float64) bool { return n >= bound }),
		"%s must have length greater than or equal to %s", p.name, toString(option),
	)
}

func MaxLengthValidator(option, value any, p *Param) Result {
	return result(
		checkLength(option, value, p, func(n, bound float64) bool { return n <= bound }),
		"%s must have length lower than or equal to %s", p.name, toString(option),
	)
}

func checkLength(option, value any, p *Param, ok func(n, bound float64) bool) bool {
	bound, isNum := toNumber(option)
	if !isNum || isNil(value) {
		return true
	}

	if p.IsMultiple() {
		value = p.boundSequence()
	}

	n, hasLength := lengthOf(value)
	if !hasLength {
		return false
	}
	return ok(float64(n), bound)
}

// EnumValidator fails when a non-empty sequence of allowed values does not
// contain the value.
func EnumValidator(option, value any, p *Param) Result {
	allowed, isSeq := toSlice(option)

	valid := !isSeq || len(allowed) == 0 || isNil(value)
	if !valid {
		for _, a := range allowed {
			if looseEqual(a, value) {
				valid = true
				break
			}
		}
	}

	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = toString(a)
	}
	return result(valid, "%s must be one of: %s", p.name, strings.Join(names, ", "))
}

// MatchValidator fails when a *regexp.Regexp option does not match the
// value's string form.
func MatchValidator(option, value any, p *Param) Result {
	re, isPattern := option.(*regexp.Regexp)
	if !isPattern || re == nil {
		return Result{Valid: true, Message: fmt.Sprintf("%s must match regular expression %v", p.name, option)}
	}
	return result(
		isNil(value) || re.MatchString(toString(value)),
		"%s must match regular expression %s", p.name, re.String(),
	)
}
