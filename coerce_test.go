package param

import (
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceBoolean(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{"false", false},
		{"0", false},
		{"", false},
		{false, false},
		{0, false},
		{math.NaN(), false},
		{"true", true},
		{"1", true},
		{"anything-else", true},
		{"no", true},
		{"FALSE", true},
		{true, true},
		{2.5, true},
	}

	for _, tt := range tests {
		got, err := Coerce(tt.value, Boolean)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Coerce(%#v, Boolean)", tt.value)
	}
}

func TestCoerceNumber(t *testing.T) {
	t.Run("Strings", func(t *testing.T) {
		got, err := Coerce("17", Number)
		require.NoError(t, err)
		assert.Equal(t, float64(17), got)

		got, err = Coerce(" -2.5 ", Number)
		require.NoError(t, err)
		assert.Equal(t, -2.5, got)
	})

	t.Run("GoNumbers", func(t *testing.T) {
		got, err := Coerce(int32(9), Number)
		require.NoError(t, err)
		assert.Equal(t, float64(9), got)
	})

	t.Run("EmptyIsNaN", func(t *testing.T) {
		got, err := Coerce("", Number)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(got.(float64)))
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Coerce("seventeen", Number)
		assert.ErrorIs(t, err, ErrMalformedNumber)
	})
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"abc", "abc"},
		{17.0, "17"},
		{0.5, "0.5"},
		{true, "true"},
		{uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"), "550e8400-e29b-41d4-a716-446655440000"},
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		got, err := Coerce(tt.value, String)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCoerceDate(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    time.Time
		wantErr bool
	}{
		{"epoch_millis_string", "86400000", time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"epoch_millis_number", 86400000, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", "2023-01-01T10:00:00Z", time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), false},
		{"date_only", "2023-01-01", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"datetime_space", "2023-01-01 08:30:00", time.Date(2023, 1, 1, 8, 30, 0, 0, time.UTC), false},
		{"four_digits_is_not_epoch", "2023", time.Time{}, true},
		{"invalid", "not a date", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.value, Date)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.(time.Time)), "want %v, got %v", tt.want, got)
		})
	}

	t.Run("TimePassesThrough", func(t *testing.T) {
		now := time.Now()
		got, err := Coerce(now, Date)
		require.NoError(t, err)
		assert.Equal(t, now, got)
	})
}

func TestCoercePattern(t *testing.T) {
	got, err := Coerce("^abc$", Pattern)
	require.NoError(t, err)

	re, ok := got.(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, re.MatchString("ABC"), "patterns are case-insensitive")

	again, err := Coerce(re, Pattern)
	require.NoError(t, err)
	assert.Equal(t, re.String(), again.(*regexp.Regexp).String())

	_, err = Coerce("(", Pattern)
	assert.ErrorIs(t, err, ErrMalformedPattern)
}

func TestCoerceCustom(t *testing.T) {
	t.Run("UUID", func(t *testing.T) {
		got, err := Coerce("550e8400-e29b-41d4-a716-446655440000", UUID)
		require.NoError(t, err)
		assert.Equal(t, uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"), got)

		_, err = Coerce("invalid-uuid", UUID)
		assert.Error(t, err)
	})

	t.Run("Constructor", func(t *testing.T) {
		type celsius float64
		temp := Custom("celsius", func(value any) (any, error) {
			n, err := coerceNumber(value)
			return celsius(n), err
		})

		got, err := Coerce("21.5", temp)
		require.NoError(t, err)
		assert.Equal(t, celsius(21.5), got)
	})

	t.Run("NoConstructor", func(t *testing.T) {
		_, err := Coerce("x", Custom("opaque", nil))
		assert.ErrorIs(t, err, ErrUnconstructibleType)
	})

	t.Run("ConstructorErrorPropagates", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Coerce("x", Custom("failing", func(any) (any, error) { return nil, boom }))
		assert.ErrorIs(t, err, boom)
	})
}

func TestCoerceNil(t *testing.T) {
	got, err := Coerce(nil, Number)
	require.NoError(t, err)
	assert.Nil(t, got)
}
