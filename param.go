package param

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Param is a single named parameter. It owns its options, its formatter
// and validator registries and its bound value.
//
// A Param is not safe for concurrent use; callers sharing one must
// serialize access.
type Param struct {
	name         string
	options      *Options
	formatters   *Registry[FormatterFunc]
	validators   *Registry[ValidatorFunc]
	value        any
	declaredType bool
	plans        map[HandlerKind][]string
	logger       *slog.Logger
}

// New creates a param and resolves value through it.
//
// The reserved options multiple, trim, separator, format and validate are
// always present and come first, in that order; opts follow in the order
// given. Re-declaring a reserved option keeps its position. When no type is
// declared it is inferred from value.
//
// An error is returned if value cannot be coerced to the param's type.
func New(name string, value any, opts ...Option) (*Param, error) {
	if name == "" {
		return nil, ErrEmptyParamName
	}

	p := &Param{
		name: name,
		options: newOptions(
			With(OptionMultiple, false),
			With(OptionTrim, true),
			With(OptionSeparator, DefaultSeparator),
			With(OptionFormat, FormatFunc(identityFormat)),
			With(OptionValidate, ValidateFunc(alwaysValid)),
		),
		formatters: _defaultFormatters.Clone(),
		validators: _defaultValidators.Clone(),
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		p.options.Set(opt.Name, opt.Value)
	}

	if t, ok := p.options.Get(OptionType); ok && !isNil(t) {
		p.declaredType = true
	} else {
		p.inferTypeFrom(value)
	}

	if err := p.unwrapListType(); err != nil {
		return nil, err
	}

	if _, err := p.SetValue(value); err != nil {
		return nil, err
	}
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, value any, opts ...Option) *Param {
	p, err := New(name, value, opts...)
	if err != nil {
		panic(fmt.Sprintf("param: %v", err))
	}
	return p
}

// unwrapListType applies the list shorthand: ListOf(t), []Type{t} or a
// "[name]" type name declare a multiple param of t.
func (p *Param) unwrapListType() error {
	raw, _ := p.options.Get(OptionType)

	var t Type
	switch v := raw.(type) {
	case Type:
		t = v
	case []Type:
		if len(v) != 1 {
			return fmt.Errorf("%w: list type shorthand takes exactly one type, got %d", ErrInvalidDeclaration, len(v))
		}
		t = ListOf(v[0])
	case string:
		lt, err := LookupType(v)
		if err != nil {
			return err
		}
		t = lt
	default:
		return fmt.Errorf("%w: unsupported type option %T", ErrInvalidDeclaration, raw)
	}

	if t.IsList() {
		p.options.Set(OptionMultiple, true)
		t = t.Elem()
	}
	p.options.Set(OptionType, t)
	return nil
}

func (p *Param) inferTypeFrom(value any) {
	t, multiple := InferType(value)
	p.options.Set(OptionType, t)
	if multiple {
		p.options.Set(OptionMultiple, true)
	}
	p.logger.Debug("param type inferred",
		slog.String("type", t.Name()),
		slog.Bool("multiple", multiple),
	)
}

// WithLogger sets the logger that receives debug records about type
// inference and validation failures.
func (p *Param) WithLogger(logger *slog.Logger) *Param {
	if logger != nil {
		p.logger = logger.With(slog.String("param", p.name))
	}
	return p
}

func (p *Param) Name() string { return p.name }

///////////////////////////////////////////////////////////////////////////////
// Options
///////////////////////////////////////////////////////////////////////////////

// Option returns the value of an option, or nil if it is not declared.
func (p *Param) Option(name string) any {
	v, _ := p.options.Get(name)
	return v
}

func (p *Param) LookupOption(name string) (any, bool) {
	return p.options.Get(name)
}

// SetOption sets an option and returns its new value. New options are
// appended after the existing ones.
func (p *Param) SetOption(name string, value any) any {
	if p.options.Set(name, value) {
		p.plans = nil
	}
	return value
}

// Options returns the options in declaration order.
func (p *Param) Options() []Option {
	return p.options.List()
}

// Type returns the element type values are coerced to.
func (p *Param) Type() Type {
	switch t := p.Option(OptionType).(type) {
	case Type:
		return t.Elem()
	case []Type:
		if len(t) > 0 {
			return t[0]
		}
	case string:
		if lt, err := LookupType(t); err == nil {
			return lt.Elem()
		}
	}
	return String
}

func (p *Param) IsMultiple() bool {
	return isTruthy(p.Option(OptionMultiple))
}

///////////////////////////////////////////////////////////////////////////////
// Handlers
///////////////////////////////////////////////////////////////////////////////

// Handler returns the handler registered under name for kind.
func (p *Param) Handler(kind HandlerKind, name string) (any, bool) {
	switch kind {
	case Formatters:
		return p.Formatter(name)
	case Validators:
		return p.Validator(name)
	default:
		return nil, false
	}
}

// RegisterHandler registers fn under name for kind. fn must have the
// signature of a FormatterFunc or a ValidatorFunc respectively.
func (p *Param) RegisterHandler(kind HandlerKind, name string, fn any) error {
	switch kind {
	case Formatters:
		f, err := asFormatter(fn)
		if err != nil {
			return err
		}
		return p.RegisterFormatter(name, f)
	case Validators:
		v, err := asValidator(fn)
		if err != nil {
			return err
		}
		return p.RegisterValidator(name, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHandlerKind, kind)
	}
}

func (p *Param) Formatter(name string) (FormatterFunc, bool) {
	return p.formatters.Get(name)
}

// RegisterFormatter adds or overrides a formatter of this param only.
func (p *Param) RegisterFormatter(name string, fn FormatterFunc) error {
	if err := p.formatters.Register(name, fn); err != nil {
		return err
	}
	p.plans = nil
	return nil
}

func (p *Param) Validator(name string) (ValidatorFunc, bool) {
	return p.validators.Get(name)
}

// RegisterValidator adds or overrides a validator of this param only.
func (p *Param) RegisterValidator(name string, fn ValidatorFunc) error {
	if err := p.validators.Register(name, fn); err != nil {
		return err
	}
	p.plans = nil
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// Value Resolution
///////////////////////////////////////////////////////////////////////////////

// Value returns the bound value.
func (p *Param) Value() any {
	return p.value
}

// SetValue resolves raw and binds the result. On error the bound value is
// left unchanged.
func (p *Param) SetValue(raw any) (any, error) {
	v, err := p.Resolve(raw)
	if err != nil {
		return nil, err
	}
	p.value = v
	return v, nil
}

// Resolve runs raw through the pipeline without binding the result.
//
// For multiple params, strings containing the separator and sequences
// are resolved element by element into a []any; any other non-nil result
// is wrapped in a one-element []any. Otherwise raw is formatted, coerced
// (unless nil) and passed to the format hook.
func (p *Param) Resolve(raw any) (any, error) {
	if !p.IsMultiple() {
		return p.resolveOne(raw)
	}

	if seq, ok := p.split(raw); ok {
		return p.resolveEach(seq)
	}

	formatted := p.format(raw)
	if seq, ok := toSlice(formatted); ok {
		return p.resolveEach(seq)
	}

	v, err := p.finish(formatted)
	if err != nil || isNil(v) {
		return nil, err
	}
	if seq, ok := toSlice(v); ok {
		return seq, nil
	}
	return []any{v}, nil
}

// resolveEach resolves every element of seq. String elements containing
// the separator are split and their parts flattened into the result, so
// repeated query keys like ?tag=a,b&tag=c resolve to [a b c].
func (p *Param) resolveEach(seq []any) ([]any, error) {
	values := make([]any, 0, len(seq))
	for _, raw := range seq {
		parts := []any{raw}
		if _, isString := raw.(string); isString {
			if split, ok := p.split(raw); ok {
				parts = split
			}
		}

		for _, part := range parts {
			v, err := p.resolveOne(part)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func (p *Param) resolveOne(raw any) (any, error) {
	return p.finish(p.format(raw))
}

// split breaks raw into a sequence. Strings are split only when the
// separator occurs in them.
func (p *Param) split(raw any) ([]any, bool) {
	s, isString := raw.(string)
	if !isString {
		return toSlice(raw)
	}

	var parts []string
	switch sep := p.Option(OptionSeparator).(type) {
	case string:
		if sep == "" || !strings.Contains(s, sep) {
			return nil, false
		}
		parts = strings.Split(s, sep)
	case *regexp.Regexp:
		if sep == nil || !sep.MatchString(s) {
			return nil, false
		}
		parts = sep.Split(s, -1)
	default:
		return nil, false
	}

	seq := make([]any, len(parts))
	for i, part := range parts {
		seq[i] = part
	}
	return seq, true
}

// format threads value through the formatters whose options are declared,
// in declaration order.
func (p *Param) format(value any) any {
	for _, name := range p.plan(Formatters) {
		fn, ok := p.formatters.Get(name)
		if !ok {
			continue
		}
		value = fn(p.Option(name), value, p)
	}
	return value
}

// finish coerces a formatted value and applies the format hook.
func (p *Param) finish(value any) (any, error) {
	if !isNil(value) {
		t := p.Type()
		coerced, err := Coerce(value, t)
		if err != nil {
			return nil, &CoercionError{Param: p.name, Type: t, Value: value, Err: err}
		}
		value = coerced
	}

	switch hook := p.Option(OptionFormat).(type) {
	case FormatFunc:
		value = hook(value, p)
	case func(value any, p *Param) any:
		value = hook(value, p)
	}
	return value, nil
}

// plan lists, in declaration order, the options that trigger a handler of
// kind. It is rebuilt after an option is added or a handler registered.
func (p *Param) plan(kind HandlerKind) []string {
	if names, ok := p.plans[kind]; ok {
		return names
	}

	var names []string
	for _, name := range p.options.Names() {
		switch kind {
		case Formatters:
			if p.formatters.Has(name) {
				names = append(names, name)
			}
		case Validators:
			if name == OptionValidate || p.validators.Has(name) {
				names = append(names, name)
			}
		}
	}

	if p.plans == nil {
		p.plans = make(map[HandlerKind][]string, 2)
	}
	p.plans[kind] = names
	return names
}

///////////////////////////////////////////////////////////////////////////////
// Validation
///////////////////////////////////////////////////////////////////////////////

// Validate checks the bound value and returns the first failure, or nil.
func (p *Param) Validate() *Failure {
	return p.ValidateValue(p.value)
}

// Valid reports whether the bound value passes validation.
func (p *Param) Valid() bool {
	return p.Validate() == nil
}

// ValidateValue checks value against the validators triggered by the
// declared options and returns the first failure, or nil.
//
// Sequences are checked element by element and the first failing element
// stops validation. An empty sequence is valid.
func (p *Param) ValidateValue(value any) *Failure {
	seq, ok := toSlice(value)
	if !ok {
		return p.validateOne(value)
	}

	for _, elem := range seq {
		if failure := p.ValidateValue(elem); failure != nil {
			return failure
		}
	}
	return nil
}

// ValidateWith validates value and hands the failure (or nil) to next,
// returning whatever next returns.
func ValidateWith[R any](p *Param, value any, next func(*Failure) R) R {
	return next(p.ValidateValue(value))
}

func (p *Param) validateOne(value any) *Failure {
	for _, name := range p.plan(Validators) {
		optionValue := p.Option(name)

		check := p.validatorFor(name, optionValue)
		if check == nil {
			continue
		}

		res := check(value, p)
		if res.Valid {
			continue
		}

		failure := newFailure(name, optionValue, p, value, res)
		p.logger.Debug("param validation failed",
			slog.String("rule", name),
			slog.Any("value", value),
			slog.String("message", failure.Message),
		)
		return failure
	}
	return nil
}

// validatorFor resolves the validator of an option: a custom function under
// the validate option first, then a registered validator bound to the
// option value.
func (p *Param) validatorFor(name string, optionValue any) ValidateFunc {
	if name == OptionValidate {
		switch fn := optionValue.(type) {
		case ValidateFunc:
			return fn
		case func(value any, p *Param) Result:
			return fn
		}
	}

	v, ok := p.validators.Get(name)
	if !ok {
		return nil
	}
	return func(value any, p *Param) Result {
		return v(optionValue, value, p)
	}
}

// boundSequence is the bound value as a sequence, wrapping scalars.
func (p *Param) boundSequence() []any {
	if seq, ok := toSlice(p.value); ok {
		return seq
	}
	return []any{p.value}
}
