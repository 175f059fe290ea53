package param

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionNames(opts []Option) []string {
	names := make([]string, len(opts))
	for i, opt := range opts {
		names[i] = opt.Name
	}
	return names
}

func TestScanTag(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		entries, err := scanTag("type:number min:18 required")
		require.NoError(t, err)
		assert.Equal(t, []Option{
			{Name: "type", Value: "number"},
			{Name: "min", Value: "18"},
			{Name: "required", Value: true},
		}, entries)
	})

	t.Run("Quoted", func(t *testing.T) {
		entries, err := scanTag(`default:'hello world' match:'^a b$'`)
		require.NoError(t, err)
		assert.Equal(t, "hello world", entries[0].Value)
		assert.Equal(t, "^a b$", entries[1].Value)
	})

	t.Run("EscapedQuote", func(t *testing.T) {
		entries, err := scanTag(`default:'it\'s'`)
		require.NoError(t, err)
		assert.Equal(t, "it's", entries[0].Value)
	})

	t.Run("PatternBackslashes", func(t *testing.T) {
		entries, err := scanTag(`match:'^\d{3}\s\'x\'$'`)
		require.NoError(t, err)
		assert.Equal(t, `^\d{3}\s'x'$`, entries[0].Value)
	})

	t.Run("ColonInsideValue", func(t *testing.T) {
		entries, err := scanTag(`default:'12:30' separator:;`)
		require.NoError(t, err)
		assert.Equal(t, "12:30", entries[0].Value)
		assert.Equal(t, ";", entries[1].Value)
	})

	t.Run("ExtraWhitespace", func(t *testing.T) {
		entries, err := scanTag("  \trequired   trim:false\t")
		require.NoError(t, err)
		assert.Equal(t, []string{"required", "trim"}, optionNames(entries))
	})

	t.Run("Empty", func(t *testing.T) {
		entries, err := scanTag("")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := scanTag(`default:'open`)
		assert.ErrorIs(t, err, ErrUnterminatedTag)

		_, err = scanTag(`:value`)
		assert.ErrorIs(t, err, ErrEmptyTagKey)

		_, err = scanTag(`min:1 min:2`)
		assert.ErrorIs(t, err, ErrDuplicateTagKey)
	})
}

func TestParseTag(t *testing.T) {
	opts, err := ParseTag(`type:[string] lowercase minlength:1 maxlength:3 enum:'red|green|blue' match:'^[a-z]+$' min:2024-01-01 max:10`)
	require.NoError(t, err)

	assert.Equal(t, []string{"type", "lowercase", "minlength", "maxlength", "enum", "match", "min", "max"}, optionNames(opts))

	typ, ok := opts[0].Value.(Type)
	require.True(t, ok)
	assert.True(t, typ.Equal(ListOf(String)))

	assert.Equal(t, true, opts[1].Value)
	assert.Equal(t, 1, opts[2].Value)
	assert.Equal(t, 3, opts[3].Value)
	assert.Equal(t, []any{"red", "green", "blue"}, opts[4].Value)

	re, ok := opts[5].Value.(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, re.MatchString("red"))

	assert.Equal(t, "2024-01-01T00:00:00Z", toString(opts[6].Value))
	assert.Equal(t, float64(10), opts[7].Value)
}

func TestParseTagErrors(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want error
	}{
		{"unknown_type", "type:complex", ErrUnknownType},
		{"bad_pattern", "match:'('", ErrInvalidOptionValue},
		{"bad_length", "minlength:two", ErrInvalidOptionValue},
		{"bad_bool", "required:maybe", ErrInvalidOptionValue},
		{"unterminated", "default:'x", ErrUnterminatedTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTag(tt.tag)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeclare(t *testing.T) {
	t.Run("Tags", func(t *testing.T) {
		p, err := Declare("tags", "type:[string] lowercase enum:'red|green'", "Red,GREEN")
		require.NoError(t, err)
		assert.Equal(t, []any{"red", "green"}, p.Value())
		assert.Nil(t, p.Validate())

		_, err = p.SetValue("red,Blue")
		require.NoError(t, err)

		failure := p.Validate()
		require.NotNil(t, failure)
		assert.Equal(t, ValidatorEnum, failure.Name)
		assert.Equal(t, "blue", failure.Value)
	})

	t.Run("Age", func(t *testing.T) {
		p, err := Declare("age", "type:number min:18 required", "17")
		require.NoError(t, err)

		failure := p.Validate()
		require.NotNil(t, failure)
		assert.Equal(t, ValidatorMin, failure.Name)
		assert.Equal(t, float64(18), failure.Option)
	})

	t.Run("DefaultIsCoerced", func(t *testing.T) {
		p, err := Declare("page", "type:number default:1", nil)
		require.NoError(t, err)
		assert.Equal(t, float64(1), p.Value())
	})

	t.Run("Error", func(t *testing.T) {
		_, err := Declare("x", "type:nope", nil)
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}
