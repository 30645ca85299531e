package graph

import (
	"testing"

	"github.com/agentic-research/examine/api"
	"github.com/agentic-research/examine/internal/flatten"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s(text string) flatten.Atom { return flatten.Atom{Text: text, Type: "string"} }

func pair(name, parent string) flatten.Pair {
	return flatten.Pair{Name: s(name), Parent: s(parent)}
}

func TestTable_AssignsIndexesInOrder(t *testing.T) {
	table := NewTable([]flatten.Pair{
		pair("x", "root"),
		pair("y", "x"),
		{Name: flatten.Atom{Text: "5", Type: "int"}, Parent: s("y")},
	})

	require.Equal(t, 3, table.Len())
	want := []api.Node{
		{Idx: 0, Name: "x", Parent: "root", Kind: "string"},
		{Idx: 1, Name: "y", Parent: "x", Kind: "string"},
		{Idx: 2, Name: "5", Parent: "y", Kind: "int"},
	}
	for i, w := range want {
		got, ok := table.NodeAt(i)
		require.True(t, ok, "NodeAt(%d) missing", i)
		assert.Equal(t, w, got)
	}
}

func TestTable_ParentOf(t *testing.T) {
	table := NewTable([]flatten.Pair{pair("x", "root"), pair("y", "x")})

	parent, ok := table.ParentOf(1)
	require.True(t, ok)
	assert.Equal(t, "x", parent)

	t.Run("out of range", func(t *testing.T) {
		_, ok := table.ParentOf(2)
		assert.False(t, ok)
		_, ok = table.NodeAt(-1)
		assert.False(t, ok)
	})
}

func TestTable_NodesIsACopy(t *testing.T) {
	table := NewTable([]flatten.Pair{pair("x", "root")})

	nodes := table.Nodes()
	nodes[0].Name = "changed"

	got, ok := table.NodeAt(0)
	require.True(t, ok)
	assert.Equal(t, "x", got.Name)
}

func TestEdges(t *testing.T) {
	table := NewTable([]flatten.Pair{pair("x", "root"), pair("y", "x")})

	assert.Equal(t, []api.Edge{
		{Child: "x", Parent: "root"},
		{Child: "y", Parent: "x"},
	}, api.Edges(table.Nodes()))
}
