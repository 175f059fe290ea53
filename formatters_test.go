package param

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinFormatters(t *testing.T) {
	p := MustNew("q", nil)

	tests := []struct {
		name   string
		fn     FormatterFunc
		option any
		value  any
		want   any
	}{
		{"trim", TrimFormatter, true, "  padded \t", "padded"},
		{"trim_off", TrimFormatter, false, "  padded ", "  padded "},
		{"trim_non_string", TrimFormatter, true, 5, 5},
		{"lowercase", LowercaseFormatter, true, "HeLLo", "hello"},
		{"lowercase_off", LowercaseFormatter, false, "HeLLo", "HeLLo"},
		{"uppercase", UppercaseFormatter, true, "straße", "STRASSE"},
		{"uppercase_non_string", UppercaseFormatter, true, true, true},
		{"normalize_camel", NormalizeFormatter, true, "fooBarBaz", "foo bar baz"},
		{"normalize_separators", NormalizeFormatter, true, "--foo_bar  baz--", "foo bar baz"},
		{"normalize_acronym", NormalizeFormatter, true, "XMLHttpRequest", "xml http request"},
		{"normalize_digits", NormalizeFormatter, true, "version2Beta", "version 2 beta"},
		{"normalize_accents", NormalizeFormatter, true, "Crème Brûlée", "creme brulee"},
		{"normalize_number", NormalizeFormatter, true, 42, "42"},
		{"normalize_nil", NormalizeFormatter, true, nil, nil},
		{"normalize_off", NormalizeFormatter, false, "fooBar", "fooBar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.option, tt.value, p))
		})
	}
}

func TestDefaultFormatter(t *testing.T) {
	t.Run("SubstitutesAbsentValues", func(t *testing.T) {
		for _, absent := range []any{nil, "", math.NaN()} {
			p := MustNew("page", nil, WithType(Number))
			assert.Equal(t, 1, DefaultFormatter(1, absent, p))
		}
	})

	t.Run("KeepsPresentValues", func(t *testing.T) {
		p := MustNew("page", nil, WithType(Number))
		assert.Equal(t, "3", DefaultFormatter(1, "3", p))
		assert.Equal(t, 0, DefaultFormatter(1, 0, p))
	})

	t.Run("CallsFunctions", func(t *testing.T) {
		p := MustNew("who", nil)
		got := DefaultFormatter(func(p *Param) any { return "default-" + p.Name() }, nil, p)
		assert.Equal(t, "default-who", got)
	})

	t.Run("ReinfersUndeclaredType", func(t *testing.T) {
		p, err := New("limit", nil, Default(10))
		require.NoError(t, err)
		assert.Equal(t, KindNumber, p.Type().Kind())
		assert.Equal(t, float64(10), p.Value())
	})

	t.Run("KeepsDeclaredType", func(t *testing.T) {
		p, err := New("limit", nil, WithType(String), Default(10))
		require.NoError(t, err)
		assert.Equal(t, KindString, p.Type().Kind())
		assert.Equal(t, "10", p.Value())
	})

	t.Run("SequenceDefaultOnMultiple", func(t *testing.T) {
		p, err := New("tags", nil, WithType(ListOf(String)), Default([]string{" a", "b"}))
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, p.Value())
	})
}

// Formatters fire in option declaration order. trim is reserved and always
// declared before caller options, so it runs before default.
func TestFormatterOrderFollowsDeclaration(t *testing.T) {
	t.Run("TrimBeforeDefault", func(t *testing.T) {
		p, err := New("name", nil, Default("  anonymous  "))
		require.NoError(t, err)
		assert.Equal(t, "  anonymous  ", p.Value())
	})

	t.Run("CaseFoldingAfterDefault", func(t *testing.T) {
		p, err := New("name", nil, Default("Anonymous"), Lowercase())
		require.NoError(t, err)
		assert.Equal(t, "anonymous", p.Value())
	})

	t.Run("CaseFoldingBeforeDefault", func(t *testing.T) {
		p, err := New("name", nil, Lowercase(), Default("Anonymous"))
		require.NoError(t, err)
		assert.Equal(t, "Anonymous", p.Value())
	})

	t.Run("CustomFormatterOrder", func(t *testing.T) {
		p, err := New("word", nil, With("suffix", "!"), Uppercase())
		require.NoError(t, err)
		require.NoError(t, p.RegisterFormatter("suffix", func(option, value any, _ *Param) any {
			if s, ok := value.(string); ok {
				return s + option.(string)
			}
			return value
		}))

		got, err := p.SetValue("hey")
		require.NoError(t, err)
		assert.Equal(t, "HEY!", got)
	})
}
