package param

import (
	"encoding/json"
	"maps"
)

// Failure describes the first rule a value broke. Validation failures are
// returned, never raised.
//
// Name is the option that failed, Param the param name, Value the
// rejected value (a single element for multiple params) and Option the
// value of the failed option.
type Failure struct {
	Name    string
	Param   string
	Value   any
	Option  any
	Message string
	Extra   map[string]any
}

// Error implements the error interface so a Failure can be handed to code
// that expects one.
func (f *Failure) Error() string {
	return f.Message
}

// Fields flattens the failure into a map keyed the way clients usually
// consume it: name, param, value, message, the failed option under its own
// name, and any extra fields reported by the validator.
func (f *Failure) Fields() map[string]any {
	fields := map[string]any{
		"name":    f.Name,
		"param":   f.Param,
		"value":   f.Value,
		"message": f.Message,
		f.Name:    f.Option,
	}
	maps.Copy(fields, f.Extra)
	return fields
}

func (f *Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Fields())
}

func newFailure(option string, optionValue any, p *Param, value any, res Result) *Failure {
	return &Failure{
		Name:    option,
		Param:   p.name,
		Value:   value,
		Option:  optionValue,
		Message: res.Message,
		Extra:   maps.Clone(res.Extra),
	}
}
