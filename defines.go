package param

import (
	"reflect"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// constants for reserved option names
const (
	OptionMultiple  = "multiple"
	OptionTrim      = "trim"
	OptionSeparator = "separator"
	OptionFormat    = "format"
	OptionValidate  = "validate"
	OptionType      = "type"
)

// constants for built-in formatter trigger names
const (
	FormatterDefault   = "default"
	FormatterNormalize = "normalize"
	FormatterLowercase = "lowercase"
	FormatterUppercase = "uppercase"
	FormatterTrim      = OptionTrim
)

// constants for built-in validator trigger names
const (
	ValidatorRequired  = "required"
	ValidatorMin       = "min"
	ValidatorMax       = "max"
	ValidatorMinLength = "minlength"
	ValidatorMaxLength = "maxlength"
	ValidatorEnum      = "enum"
	ValidatorMatch     = "match"
)

// DefaultSeparator splits raw strings of multiple params.
const DefaultSeparator = ","

// constants for declaration tags
const (
	TagKeyValueDelimiter = ":"
	TagScopeDelimiter    = byte('\'')
	TagEnumDelimiter     = "|"
	TagListTypePrefix    = "["
	TagListTypeSuffix    = "]"
)

// reflect.TypeOf constants for type checks
var (
	TimeType    = reflect.TypeOf(time.Time{})
	UUIDType    = reflect.TypeOf(uuid.UUID{})
	PatternType = reflect.TypeOf((*regexp.Regexp)(nil))
	BytesType   = reflect.TypeOf([]byte{})
)

// dateLayouts are tried in order when a Date is coerced from a string.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
}
