package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawValueOfScalars(t *testing.T) {
	v, ok := rawValueOf("london")
	require.True(t, ok)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "london", v.Str())

	v, ok = rawValueOf(true)
	require.True(t, ok)
	assert.Equal(t, KindBool, v.Kind())
	assert.True(t, v.Bool())

	v, ok = rawValueOf(int64(200))
	require.True(t, ok)
	assert.Equal(t, KindInteger, v.Kind())
	assert.Equal(t, int64(200), v.Int())
}

func TestRawValueOfNumbers(t *testing.T) {
	// YAML hands out int, JSON float64.
	v, ok := rawValueOf(7)
	require.True(t, ok)
	assert.Equal(t, int64(7), v.Int())

	v, ok = rawValueOf(float64(1000))
	require.True(t, ok)
	assert.Equal(t, KindInteger, v.Kind())
	assert.Equal(t, int64(1000), v.Int())

	_, ok = rawValueOf(3.14)
	assert.False(t, ok)
}

func TestRawValueOfLists(t *testing.T) {
	v, ok := rawValueOf([]any{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, KindStringList, v.Kind())
	assert.Equal(t, []string{"a", "b"}, v.List())

	v, ok = rawValueOf([]any{})
	require.True(t, ok)
	assert.Empty(t, v.List())

	_, ok = rawValueOf([]any{"a", 1})
	assert.False(t, ok)
}

func TestRawValueOfUnsupported(t *testing.T) {
	_, ok := rawValueOf(map[string]any{"x": 1})
	assert.False(t, ok)
	_, ok = rawValueOf(nil)
	assert.False(t, ok)
}

func TestStringListValueCopies(t *testing.T) {
	src := []string{"a"}
	v := StringListValue(src)
	src[0] = "mutated"
	assert.Equal(t, []string{"a"}, v.List())
}
