package param

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

var (
	ErrCoercion            = errors.New("value could not be coerced to the declared type")
	ErrMalformedNumber     = errors.New("malformed number")
	ErrMalformedDate       = errors.New("malformed date")
	ErrMalformedPattern    = errors.New("malformed pattern")
	ErrUnconstructibleType = errors.New("type has no constructor")
	ErrEmptyHandlerName    = errors.New("handler name cannot be empty")
	ErrNilHandler          = errors.New("handler cannot be nil")
	ErrUnknownHandlerKind  = errors.New("unknown handler kind")
	ErrInvalidHandler      = errors.New("handler does not match the signature of its kind")
	ErrUnknownType         = errors.New("no type registered under this name")
	ErrInvalidDeclaration  = errors.New("invalid option declaration")
	ErrEmptyParamName      = errors.New("param name cannot be empty")
)

// CoercionError is returned when a formatted value cannot be converted
// to the param's type. It wraps ErrCoercion and the underlying cause.
type CoercionError struct {
	Param string
	Type  Type
	Value any
	Err   error
}

// Error implements the error interface
func (ce *CoercionError) Error() string {
	return fmt.Sprintf("param %q: cannot coerce %#v to %s: %v", ce.Param, ce.Value, ce.Type, ce.Err)
}

func (ce *CoercionError) Unwrap() []error {
	return []error{ErrCoercion, ce.Err}
}
