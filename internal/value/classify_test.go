package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func TestIsLeaf(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"int", Int(1), true},
		{"float", Float(1.5), true},
		{"bool", Bool(true), true},
		{"string", String("x"), true},
		{"null", Null(), true},
		{"map", NewMap(), false},
		{"list", NewList(), false},
		{"record", NewRecord(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLeaf(tt.v))
		})
	}
}

func TestKeysOf(t *testing.T) {
	t.Run("mapping keeps insertion order", func(t *testing.T) {
		m := NewMap().Set("b", Int(1)).Set("a", Int(2)).Set(3, Int(3))
		assert.Equal(t, []string{"b", "a", "3"}, labels(KeysOf(m)))
	})

	t.Run("record skips reserved and callable members", func(t *testing.T) {
		r := NewRecord().
			Set("name", String("x")).
			Set("__internal", Int(1)).
			SetMethod("close").
			Set("size", Int(2))
		assert.Equal(t, []string{"name", "size"}, labels(KeysOf(r)))
	})

	t.Run("sequence yields no keys", func(t *testing.T) {
		assert.Empty(t, KeysOf(NewList(Int(10), Int(20))))
	})

	t.Run("leaf yields no keys", func(t *testing.T) {
		assert.Empty(t, KeysOf(Int(5)))
	})
}

func TestGet(t *testing.T) {
	t.Run("mapping returns stored value", func(t *testing.T) {
		inner := NewMap()
		m := NewMap().Set("x", inner)
		keys := KeysOf(m)
		require.Len(t, keys, 1)
		assert.Same(t, inner, Get(m, keys[0]))
	})

	t.Run("record returns attribute", func(t *testing.T) {
		r := NewRecord().Set("size", Int(2))
		keys := KeysOf(r)
		require.Len(t, keys, 1)
		assert.Equal(t, Int(2), Get(r, keys[0]))
	})

	t.Run("sequence returns the stringified key", func(t *testing.T) {
		l := NewList(Int(10), Int(20))
		got := Get(l, Key{Label: 0})
		assert.Equal(t, String("0"), got)
		got = Get(l, Key{Label: 1})
		assert.Equal(t, String("1"), got)
	})

	t.Run("foreign key resolves to null", func(t *testing.T) {
		m := NewMap().Set("x", Int(1))
		assert.Equal(t, Null(), Get(m, Key{Label: "y", pos: 7}))
	})
}

func TestMapSet(t *testing.T) {
	t.Run("comparable label overwrites", func(t *testing.T) {
		m := NewMap().Set("a", Int(1)).Set("a", Int(2))
		require.Equal(t, 1, m.Len())
		got, ok := m.Lookup(m.Keys()[0])
		require.True(t, ok)
		assert.Equal(t, Int(2), got)
	})

	t.Run("same text different type stays distinct", func(t *testing.T) {
		m := NewMap().Set(1, Int(1)).Set("1", Int(2))
		assert.Equal(t, 2, m.Len())
	})

	t.Run("unhashable label appends", func(t *testing.T) {
		m := NewMap().Set([]int{1}, Int(1)).Set([]int{1}, Int(2))
		require.Equal(t, 2, m.Len())
		assert.False(t, m.Keys()[0].Hashable())
	})
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "null", Stringify(nil))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "42", Stringify(int64(42)))
	assert.Equal(t, "7", Stringify(uint8(7)))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "5", Stringify(5.0))
	assert.Equal(t, "hi", Stringify("hi"))
	assert.Equal(t, "[1 2]", Stringify([]int{1, 2}))
	assert.Equal(t, "9", Stringify(Int(9)))
}
