package param

import "slices"

// Option is a single named option of a Param. Options are declared in
// order and that order decides when their formatters and validators run.
type Option struct {
	Name  string
	Value any
}

// With declares an arbitrary option.
func With(name string, value any) Option {
	return Option{Name: name, Value: value}
}

// WithType declares the type of the param. Use ListOf for a multiple param.
func WithType(t Type) Option { return With(OptionType, t) }

// Multiple declares the param as multi-valued.
func Multiple() Option { return With(OptionMultiple, true) }

// Separator sets the separator of a multiple param. sep is a string or a
// *regexp.Regexp.
func Separator(sep any) Option { return With(OptionSeparator, sep) }

// Trim toggles whitespace trimming (on by default).
func Trim(on bool) Option { return With(OptionTrim, on) }

// Format sets the final format hook.
func Format(fn FormatFunc) Option { return With(OptionFormat, fn) }

// Check sets the final custom validator.
func Check(fn ValidateFunc) Option { return With(OptionValidate, fn) }

// Default sets the value substituted for nil, NaN or "". value may be a
// func(*Param) any, evaluated on each substitution.
func Default(value any) Option { return With(FormatterDefault, value) }

func Normalize() Option { return With(FormatterNormalize, true) }
func Lowercase() Option { return With(FormatterLowercase, true) }
func Uppercase() Option { return With(FormatterUppercase, true) }

func Required() Option { return With(ValidatorRequired, true) }
func Min(bound any) Option { return With(ValidatorMin, bound) }
func Max(bound any) Option { return With(ValidatorMax, bound) }
func MinLength(bound int) Option { return With(ValidatorMinLength, bound) }
func MaxLength(bound int) Option { return With(ValidatorMaxLength, bound) }
func Enum(allowed ...any) Option { return With(ValidatorEnum, allowed) }
func Match(pattern any) Option { return With(ValidatorMatch, pattern) }

// Options is an insertion-ordered option set. Setting an existing option
// keeps its position.
type Options struct {
	names  []string
	values map[string]any
}

func newOptions(opts ...Option) *Options {
	o := &Options{values: make(map[string]any, len(opts))}
	for _, opt := range opts {
		o.Set(opt.Name, opt.Value)
	}
	return o
}

// Set stores value under name and reports whether name is new.
func (o *Options) Set(name string, value any) bool {
	_, exists := o.values[name]
	if !exists {
		o.names = append(o.names, name)
	}
	o.values[name] = value
	return !exists
}

func (o *Options) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Names returns the option names in declaration order.
func (o *Options) Names() []string {
	return slices.Clone(o.names)
}

// List returns a copy of the options in declaration order.
func (o *Options) List() []Option {
	list := make([]Option, len(o.names))
	for i, name := range o.names {
		list[i] = Option{Name: name, Value: o.values[name]}
	}
	return list
}

func (o *Options) Len() int { return len(o.names) }
