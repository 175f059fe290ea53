package param

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Kind discriminates the variants of a Type.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindDate
	KindPattern
	KindCustom
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindPattern:
		return "pattern"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Constructor builds a value of a custom type from a formatted value.
type Constructor func(value any) (any, error)

// Type describes the target of coercion. The zero value is String.
//
// Built-in kinds are String, Number (float64), Boolean, Date (time.Time)
// and Pattern (*regexp.Regexp). Anything else is a Custom type carrying
// its own Constructor.
type Type struct {
	kind      Kind
	name      string
	construct Constructor
	elem      *Type
}

var (
	String  = Type{kind: KindString}
	Number  = Type{kind: KindNumber}
	Boolean = Type{kind: KindBoolean}
	Date    = Type{kind: KindDate}
	Pattern = Type{kind: KindPattern}

	// UUID parses values into uuid.UUID.
	UUID = Custom("uuid", func(value any) (any, error) {
		switch v := value.(type) {
		case uuid.UUID:
			return v, nil
		case []byte:
			return uuid.ParseBytes(v)
		default:
			return uuid.Parse(toString(v))
		}
	})
)

// Custom declares a constructible type. A nil constructor yields a type
// whose coercion always fails with ErrUnconstructibleType.
func Custom(name string, construct Constructor) Type {
	return Type{kind: KindCustom, name: name, construct: construct}
}

// ListOf is the shorthand for a multiple param whose elements are of type t.
// Declaring it forces the multiple option and unwraps to t.
func ListOf(t Type) Type {
	elem := t
	return Type{kind: t.kind, name: t.name, construct: t.construct, elem: &elem}
}

func (t Type) Kind() Kind { return t.kind }

// IsList reports whether t was declared with ListOf.
func (t Type) IsList() bool { return t.elem != nil }

// Elem returns the element type of a list declaration, or t itself.
func (t Type) Elem() Type {
	if t.elem != nil {
		return *t.elem
	}
	return t
}

// Name returns the registered name of the type.
func (t Type) Name() string {
	if t.elem != nil {
		return TagListTypePrefix + t.elem.Name() + TagListTypeSuffix
	}
	if t.kind == KindCustom {
		return t.name
	}
	return t.kind.String()
}

func (t Type) String() string { return t.Name() }

// Equal reports whether two descriptors name the same type. Custom
// types compare by name.
func (t Type) Equal(o Type) bool {
	if t.IsList() != o.IsList() {
		return false
	}
	if t.IsList() {
		return t.elem.Equal(*o.elem)
	}
	return t.kind == o.kind && t.name == o.name
}

///////////////////////////////////////////////////////////////////////////////
// Type Registry
///////////////////////////////////////////////////////////////////////////////

// typeRegistry resolves type names used in declarations.
type typeRegistry struct {
	mu    sync.RWMutex
	types map[string]Type
}

var _types = &typeRegistry{
	types: map[string]Type{
		"string":  String,
		"number":  Number,
		"boolean": Boolean,
		"bool":    Boolean,
		"date":    Date,
		"pattern": Pattern,
		"regexp":  Pattern,
		"uuid":    UUID,
	},
}

// RegisterType makes t available to declarations under name. Registering
// an existing name overrides it.
func RegisterType(name string, t Type) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("%w: empty type name", ErrInvalidDeclaration)
	}

	_types.mu.Lock()
	defer _types.mu.Unlock()
	_types.types[name] = t
	return nil
}

// LookupType resolves a type name. `[name]` declares a list of name.
func LookupType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	if strings.HasPrefix(name, TagListTypePrefix) && strings.HasSuffix(name, TagListTypeSuffix) {
		elem, err := LookupType(name[len(TagListTypePrefix) : len(name)-len(TagListTypeSuffix)])
		if err != nil {
			return Type{}, err
		}
		return ListOf(elem), nil
	}

	_types.mu.RLock()
	defer _types.mu.RUnlock()

	t, ok := _types.types[name]
	if !ok {
		return Type{}, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return t, nil
}
