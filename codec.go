package param

import (
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Codec decodes an option declaration document into ordered options.
// Implementations must keep the document's key order, since it decides
// when formatters and validators run.
type Codec interface {
	// Decode reads a single mapping of option name to option value.
	Decode(data []byte) ([]Option, error)

	// ContentType returns the MIME type of the format.
	ContentType() string
}

// YAMLCodec implements Codec using gopkg.in/yaml.v3 nodes, which keep
// mapping order.
type YAMLCodec struct{}

func (YAMLCodec) Decode(data []byte) ([]Option, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error unmarshaling YAML declaration: %w", err)
	}

	// empty document
	if len(doc.Content) == 0 {
		return nil, nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping, got YAML node kind %d", ErrInvalidDeclaration, mapping.Kind)
	}

	opts := make([]Option, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value

		var raw any
		if err := mapping.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("error decoding option %s: %w", name, err)
		}

		value, err := normalizeOption(name, raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, Option{Name: name, Value: value})
	}
	return opts, nil
}

func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// JSONCodec implements Codec with gjson, which iterates objects in
// document order.
type JSONCodec struct{}

func (JSONCodec) Decode(data []byte) ([]Option, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDeclaration)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidDeclaration)
	}

	var (
		opts []Option
		err  error
	)
	doc.ForEach(func(key, value gjson.Result) bool {
		var normalized any
		normalized, err = normalizeOption(key.String(), value.Value())
		if err != nil {
			return false
		}
		opts = append(opts, Option{Name: key.String(), Value: normalized})
		return true
	})
	if err != nil {
		return nil, err
	}
	return opts, nil
}

func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure the codecs implement Codec.
var (
	_ Codec = YAMLCodec{}
	_ Codec = JSONCodec{}
)

// DeclareWith creates a param from a declaration document decoded by codec.
func DeclareWith(codec Codec, name string, data []byte, value any) (*Param, error) {
	opts, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s declaration for param %s: %w", codec.ContentType(), name, err)
	}
	return New(name, value, opts...)
}
