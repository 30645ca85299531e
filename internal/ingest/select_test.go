package ingest

import (
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	data, err := oj.ParseString(`
{
  "users": [
    {"name": "Alice", "role": "admin"},
    {"name": "Bob", "role": "user"}
  ],
  "meta": {
    "version": "1.0"
  }
}
`)
	require.NoError(t, err)

	t.Run("select list of objects", func(t *testing.T) {
		got, err := Select(data, "$.users[*]")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"0": map[string]any{"name": "Alice", "role": "admin"},
			"1": map[string]any{"name": "Bob", "role": "user"},
		}, got)
	})

	t.Run("select single object", func(t *testing.T) {
		got, err := Select(data, "$.meta")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"version": "1.0"}, got)
	})

	t.Run("select primitive", func(t *testing.T) {
		got, err := Select(data, "$.meta.version")
		require.NoError(t, err)
		assert.Equal(t, "1.0", got)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := Select(data, "$.missing")
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("invalid selector", func(t *testing.T) {
		_, err := Select(data, "$[")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid jsonpath")
	})
}
