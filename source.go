package param

import (
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/tidwall/gjson"
)

// Source looks up the raw value of a param by name. Sources are how host
// code hands query strings, headers, cookies or JSON bodies to a Param;
// they never perform I/O of their own.
type Source interface {
	Lookup(name string) (any, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name string) (any, bool)

func (f SourceFunc) Lookup(name string) (any, bool) { return f(name) }

// Query reads URL query or form values. Repeated keys yield a []string.
func Query(values url.Values) Source {
	return SourceFunc(func(name string) (any, bool) {
		vs, ok := values[name]
		return collapse(vs, ok)
	})
}

// Header reads request headers. Repeated headers yield a []string.
func Header(header http.Header) Source {
	return SourceFunc(func(name string) (any, bool) {
		vs, ok := header[textproto.CanonicalMIMEHeaderKey(name)]
		return collapse(vs, ok)
	})
}

// Cookies reads the value of the named cookie of r.
func Cookies(r *http.Request) Source {
	return SourceFunc(func(name string) (any, bool) {
		cookie, err := r.Cookie(name)
		if err != nil {
			return nil, false
		}
		return cookie.Value, true
	})
}

// JSONBody looks up names as gjson paths in a JSON document, so nested
// fields are addressed as "user.age". JSON null counts as absent.
func JSONBody(body []byte) Source {
	return SourceFunc(func(name string) (any, bool) {
		result := gjson.GetBytes(body, name)
		if !result.Exists() || result.Type == gjson.Null {
			return nil, false
		}
		return result.Value(), true
	})
}

// Map reads values from a plain map.
func Map(values map[string]any) Source {
	return SourceFunc(func(name string) (any, bool) {
		v, ok := values[name]
		return v, ok
	})
}

// FirstOf tries sources in priority order and returns the first value found.
//
// Example: FirstOf(Header(r.Header), Cookies(r), Query(r.URL.Query()))
func FirstOf(sources ...Source) Source {
	return SourceFunc(func(name string) (any, bool) {
		for _, source := range sources {
			if source == nil {
				continue
			}
			if v, ok := source.Lookup(name); ok {
				return v, true
			}
		}
		return nil, false
	})
}

// collapse turns a single-element value list into a scalar.
func collapse(values []string, ok bool) (any, bool) {
	switch {
	case !ok || len(values) == 0:
		return nil, false
	case len(values) == 1:
		return values[0], true
	default:
		return values, true
	}
}

// ResolveFrom looks the param up by name in source and binds the resolved
// value. A missing value resolves like nil, so defaults still apply.
func (p *Param) ResolveFrom(source Source) (any, error) {
	raw, _ := source.Lookup(p.name)
	return p.SetValue(raw)
}
