package param

import (
	"fmt"
	"maps"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// Handler Registry
///////////////////////////////////////////////////////////////////////////////

// HandlerKind selects one of the two handler registries of a Param.
type HandlerKind string

const (
	Formatters HandlerKind = "formatters"
	Validators HandlerKind = "validators"
)

// Registry maps handler names to handlers. The zero value is not usable;
// create one with NewRegistry.
type Registry[F any] struct {
	mu       sync.RWMutex
	handlers map[string]F
}

func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{handlers: make(map[string]F)}
}

// Register adds fn under name, overriding any existing handler.
func (r *Registry[F]) Register(name string, fn F) error {
	if name == "" {
		return ErrEmptyHandlerName
	}
	if isNil(fn) {
		return fmt.Errorf("%w: %s", ErrNilHandler, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = fn
	return nil
}

// Get returns the handler registered under name.
func (r *Registry[F]) Get(name string) (F, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[name]
	return fn, ok
}

// Has reports whether a handler is registered under name.
func (r *Registry[F]) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Clone returns an independent copy of the registry.
func (r *Registry[F]) Clone() *Registry[F] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry[F]{handlers: maps.Clone(r.handlers)}
}

///////////////////////////////////////////////////////////////////////////////
// Global Defaults and Package Functions
///////////////////////////////////////////////////////////////////////////////

// Every Param starts with a copy of these registries, so handlers
// registered here are picked up by Params created afterwards.
var (
	_defaultFormatters = NewRegistry[FormatterFunc]()
	_defaultValidators = NewRegistry[ValidatorFunc]()
)

func init() {
	builtinFormatters := []struct {
		name string
		fn   FormatterFunc
	}{
		{FormatterDefault, DefaultFormatter},
		{FormatterNormalize, NormalizeFormatter},
		{FormatterLowercase, LowercaseFormatter},
		{FormatterUppercase, UppercaseFormatter},
		{FormatterTrim, TrimFormatter},
	}
	for _, f := range builtinFormatters {
		if err := _defaultFormatters.Register(f.name, f.fn); err != nil {
			panic(fmt.Sprintf("Failed to register formatter %q: %v", f.name, err))
		}
	}

	builtinValidators := []struct {
		name string
		fn   ValidatorFunc
	}{
		{ValidatorRequired, RequiredValidator},
		{ValidatorMin, MinValidator},
		{ValidatorMax, MaxValidator},
		{ValidatorMinLength, MinLengthValidator},
		{ValidatorMaxLength, MaxLengthValidator},
		{ValidatorEnum, EnumValidator},
		{ValidatorMatch, MatchValidator},
	}
	for _, v := range builtinValidators {
		if err := _defaultValidators.Register(v.name, v.fn); err != nil {
			panic(fmt.Sprintf("Failed to register validator %q: %v", v.name, err))
		}
	}
}

// RegisterFormatter registers a formatter for all Params created afterwards.
func RegisterFormatter(name string, fn FormatterFunc) error {
	return _defaultFormatters.Register(name, fn)
}

// RegisterValidator registers a validator for all Params created afterwards.
func RegisterValidator(name string, fn ValidatorFunc) error {
	return _defaultValidators.Register(name, fn)
}

// asFormatter checks the shape of a handler passed without static typing.
func asFormatter(fn any) (FormatterFunc, error) {
	switch f := fn.(type) {
	case FormatterFunc:
		return f, nil
	case func(option, value any, p *Param) any:
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %s wants func(option, value any, p *Param) any, got %T", ErrInvalidHandler, Formatters, fn)
	}
}

func asValidator(fn any) (ValidatorFunc, error) {
	switch f := fn.(type) {
	case ValidatorFunc:
		return f, nil
	case func(option, value any, p *Param) Result:
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %s wants func(option, value any, p *Param) Result, got %T", ErrInvalidHandler, Validators, fn)
	}
}
