// Package param resolves and validates a single named parameter whose raw
// input usually arrives as a string: a query string value, a form field, a
// header, a CLI flag or a field of a JSON body.
//
// A Param takes a raw value through the following pipeline:
//   - Multiple params split strings on their separator and resolve each
//     element on its own.
//   - Formatters (default, normalize, lowercase, uppercase, trim, or any
//     registered one) transform the value.
//   - The value is coerced to the param's type: String, Number, Boolean,
//     Date, Pattern, or a Custom type such as UUID. When no type is declared
//     it is inferred from the initial value.
//   - The format hook runs last.
//
// Validation is a separate step. Validators (required, min, max, minlength,
// maxlength, enum, match, or any registered one) return a *Failure
// describing the first rule the value broke instead of an error:
//
//	age := param.MustNew("age", nil,
//	    param.WithType(param.Number),
//	    param.Min(18),
//	    param.Required(),
//	)
//	age.SetValue("17")          // 17.0
//	failure := age.Validate()   // Name "min", Param "age", Value 17.0
//
// Coercion errors, on the other hand, are returned by SetValue and Resolve
// as *CoercionError.
//
// Formatters and validators are triggered by options of the same name and
// run in the order the options were declared. The reserved options
// multiple, trim, separator, format and validate are always declared
// first, so trim runs before a default declared by the caller:
//
//	param.New("name", nil, param.Default("  anonymous  "))
//	// resolves to "  anonymous  ", trim saw nil
//
// Options can also be declared in a single string, following the same
// grammar as struct tags:
//
//	param.Declare("tags", "type:[string] minlength:1 enum:'a|b|c'", nil)
//
// or decoded from YAML or JSON with a Codec, which keeps the document's key
// order.
//
// Raw values can be looked up from a Source: Query, Header, Cookies,
// JSONBody, Map, or FirstOf several of them.
package param
