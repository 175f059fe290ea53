package param

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Base error types for tag parsing errors
var (
	ErrEmptyTagKey        = errors.New("tag key cannot be empty")
	ErrUnterminatedTag    = errors.New("unterminated quoted tag value")
	ErrDuplicateTagKey    = errors.New("tag key declared twice")
	ErrInvalidOptionValue = errors.New("invalid option value")
)

// This file contains the declaration parser of the param package. A
// declaration lists the options of a param in a single string, in the order
// they should run:
//
// Tag grammar:
//     <tag> := [<entry>]^* // whitespace separated
// entry:
//     <key> | <key>:<value> | <key>:'<quoted value>'
// key:
//     <string> // option name
// value:
//     <string> // up to the next whitespace
// quoted value:
//     <string> // up to the closing quote, \' escapes a quote
//
// A bare key declares the option as true. Values are normalised by option
// name, see normalizeOption.
//
// Example: `type:number min:18 required`
// Example: `type:[string] enum:'red|green|blue' minlength:1`

// ParseTag decodes a declaration into ordered options.
func ParseTag(tag string) ([]Option, error) {
	entries, err := scanTag(tag)
	if err != nil {
		return nil, err
	}

	opts := make([]Option, 0, len(entries))
	for _, entry := range entries {
		value, err := normalizeOption(entry.Name, entry.Value)
		if err != nil {
			return nil, err
		}
		opts = append(opts, Option{Name: entry.Name, Value: value})
	}
	return opts, nil
}

// Declare creates a param from a declaration.
func Declare(name string, tag string, value any) (*Param, error) {
	opts, err := ParseTag(tag)
	if err != nil {
		return nil, fmt.Errorf("error parsing declaration for param %s: %w", name, err)
	}
	return New(name, value, opts...)
}

// scanTag splits a declaration into raw entries. Bare keys get the value
// true, every other value is a string.
func scanTag(tag string) ([]Option, error) {
	var (
		entries []Option
		seen    = make(map[string]bool)
	)

	i := 0
	for i < len(tag) {
		// Skip whitespace
		for i < len(tag) && isTagSpace(tag[i]) {
			i++
		}
		if i >= len(tag) {
			break
		}

		// Read the key up to a delimiter or whitespace
		start := i
		for i < len(tag) && !isTagSpace(tag[i]) && tag[i] != TagKeyValueDelimiter[0] {
			i++
		}
		key := tag[start:i]
		if key == "" {
			return nil, fmt.Errorf("%w at offset %d", ErrEmptyTagKey, start)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTagKey, key)
		}
		seen[key] = true

		// Bare key
		if i >= len(tag) || isTagSpace(tag[i]) {
			entries = append(entries, Option{Name: key, Value: true})
			continue
		}

		i++ // skip the key/value delimiter

		if i < len(tag) && tag[i] == TagScopeDelimiter {
			value, next, err := scanQuoted(tag, i+1)
			if err != nil {
				return nil, fmt.Errorf("%w for %q", err, key)
			}
			entries = append(entries, Option{Name: key, Value: value})
			i = next
			continue
		}

		start = i
		for i < len(tag) && !isTagSpace(tag[i]) {
			i++
		}
		entries = append(entries, Option{Name: key, Value: tag[start:i]})
	}

	return entries, nil
}

// scanQuoted reads a quoted value starting after the opening quote and
// returns it with the offset following the closing quote.
func scanQuoted(tag string, start int) (string, int, error) {
	var builder strings.Builder

	for i := start; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '\\' && i+1 < len(tag) && tag[i+1] == TagScopeDelimiter:
			// other backslashes are kept for patterns
			builder.WriteByte(TagScopeDelimiter)
			i++
		case c == TagScopeDelimiter:
			return builder.String(), i + 1, nil
		default:
			builder.WriteByte(c)
		}
	}

	return "", 0, ErrUnterminatedTag
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// normalizeOption converts a declared value to what the option's handler
// expects. Values that are not strings are returned as they are, except
// for type names, enum lists and patterns.
func normalizeOption(name string, raw any) (any, error) {
	switch name {
	case OptionType:
		switch v := raw.(type) {
		case string:
			return LookupType(v)
		case []any:
			// YAML and JSON read `[number]` as a one-element sequence
			if len(v) == 1 {
				if s, ok := v[0].(string); ok {
					return LookupType(TagListTypePrefix + s + TagListTypeSuffix)
				}
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidOptionValue, name, v)
		}
		return raw, nil

	case ValidatorMatch:
		if s, ok := raw.(string); ok {
			re, err := regexp.Compile(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOptionValue, name, err)
			}
			return re, nil
		}
		return raw, nil

	case ValidatorEnum:
		switch v := raw.(type) {
		case string:
			parts := strings.Split(v, TagEnumDelimiter)
			allowed := make([]any, len(parts))
			for i, part := range parts {
				allowed[i] = part
			}
			return allowed, nil
		case []any:
			return v, nil
		}
		return raw, nil

	case ValidatorMin, ValidatorMax:
		s, ok := raw.(string)
		if !ok {
			return raw, nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, nil
		}
		if t, err := coerceDate(s); err == nil {
			return t, nil
		}
		return s, nil

	case ValidatorMinLength, ValidatorMaxLength:
		s, ok := raw.(string)
		if !ok {
			return raw, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOptionValue, name, err)
		}
		return n, nil

	case ValidatorRequired, OptionMultiple, OptionTrim,
		FormatterNormalize, FormatterLowercase, FormatterUppercase:
		s, ok := raw.(string)
		if !ok {
			return raw, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOptionValue, name, err)
		}
		return b, nil

	default:
		return raw, nil
	}
}
