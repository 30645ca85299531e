package examine

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentic-research/examine/api"
	"github.com/agentic-research/examine/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_NilContainer(t *testing.T) {
	in, err := New(map[string]any{"x": (*value.Map)(nil)})
	require.NoError(t, err)

	assert.Equal(t, []api.Edge{
		{Child: "x", Parent: "root"},
		{Child: "null", Parent: "x"},
	}, in.Edges())
}

func TestNew_NestedExample(t *testing.T) {
	in, err := New(map[string]any{"x": map[string]any{"y": 5}})
	require.NoError(t, err)

	assert.Equal(t, []api.Edge{
		{Child: "x", Parent: "root"},
		{Child: "y", Parent: "x"},
		{Child: "5", Parent: "y"},
	}, in.Edges())

	chain, err := in.BuildParentChain("5")
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "x", "y", "5"}, chain)

	parent, ok := in.ParentOf(1)
	require.True(t, ok)
	assert.Equal(t, "x", parent)
}

func TestNew_LeavesReachable(t *testing.T) {
	doc := map[string]any{
		"service": map[string]any{
			"name": "api",
			"port": 8080,
			"tls":  map[string]any{"enabled": true, "cert": "/etc/cert.pem"},
		},
		"replicas": 3,
		"ratio":    0.25,
	}
	in, err := New(doc)
	require.NoError(t, err)

	for _, leaf := range []string{"api", "8080", "true", "/etc/cert.pem", "3", "0.25"} {
		t.Run(leaf, func(t *testing.T) {
			n, err := in.Find(leaf)
			require.NoError(t, err)
			assert.Contains(t, in.FuzzyFind(leaf), n)

			chain, err := in.BuildParentChain(leaf)
			require.NoError(t, err)
			assert.Equal(t, api.RootName, chain[0])
			assert.Equal(t, leaf, chain[len(chain)-1])
		})
	}

	chain, err := in.BuildParentChain("/etc/cert.pem")
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "service", "tls", "cert", "/etc/cert.pem"}, chain)
}

func TestNew_RootShortCircuit(t *testing.T) {
	doc := value.NewMap().Set("root", value.Int(1)).Set("target", value.Int(2))
	in, err := New(doc)
	require.NoError(t, err)

	// Observed order: target, 2, root, 1.
	names := make([]string, 0, in.Len())
	for _, n := range in.Nodes() {
		names = append(names, n.Name)
	}
	require.Equal(t, []string{"target", "2", "root", "1"}, names)

	n, err := in.Find("target")
	require.NoError(t, err)
	assert.Equal(t, "target", n.Name)

	n, err = in.Find("1")
	require.NoError(t, err)
	assert.True(t, n.IsRoot())

	_, err = in.BuildParentChain("1")
	assert.ErrorIs(t, err, ErrRootShadowed)
}

func TestNew_SequenceQuirk(t *testing.T) {
	in, err := New(map[string]any{"a": []any{10, 20}})
	require.NoError(t, err)

	require.Equal(t, 1, in.Len())
	n, _ := in.NodeAt(0)
	assert.Equal(t, "a", n.Name)
	assert.Empty(t, in.FuzzyFind("10"))
	assert.Empty(t, in.FuzzyFind("20"))
}

func TestNew_Idempotent(t *testing.T) {
	build := func() map[string]any {
		return map[string]any{"a": map[string]any{"b": "c", "d": 1}, "e": false}
	}
	first, err := New(build())
	require.NoError(t, err)
	second, err := New(build())
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Edges(), second.Edges())
}

func TestNew_Errors(t *testing.T) {
	self := value.NewMap()
	self.Set("self", self)

	t.Run("budget", func(t *testing.T) {
		_, err := New(self, WithBudget(5), WithLogger(zap.NewNop()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTraversalLimitExceeded))
	})

	t.Run("cycle detection", func(t *testing.T) {
		_, err := New(self, WithCycleDetection(true))
		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("not found", func(t *testing.T) {
		in, err := New(map[string]any{"a": 1})
		require.NoError(t, err)
		_, err = in.Find("b")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = in.BuildParentChain("b")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLocate(t *testing.T) {
	in, err := New(map[string]any{
		"users": map[string]any{"alice": map[string]any{"email": "a@x.io"}},
		"admin": map[string]any{"email": "root@x.io"},
	})
	require.NoError(t, err)

	t.Run("fuzzy", func(t *testing.T) {
		locs, err := in.Locate("EMAIL", false)
		require.NoError(t, err)
		require.Len(t, locs, 2)
		for _, loc := range locs {
			require.NoError(t, loc.Err)
			assert.Equal(t, "email", loc.Node.Name)
			assert.Equal(t, "root", loc.Chain[0])
		}
	})

	t.Run("exact", func(t *testing.T) {
		locs, err := in.Locate("a@x.io", true)
		require.NoError(t, err)
		require.Len(t, locs, 1)
		assert.Equal(t, "root -> users -> alice -> email -> a@x.io", strings.Join(locs[0].Chain, " -> "))
	})

	t.Run("exact miss", func(t *testing.T) {
		_, err := in.Locate("nobody", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestExportSQLite(t *testing.T) {
	in, err := New(map[string]any{"x": 1})
	require.NoError(t, err)
	assert.NoError(t, in.ExportSQLite(filepath.Join(t.TempDir(), "out.db")))
}
