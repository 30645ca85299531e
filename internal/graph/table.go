// Package graph holds the flat node table built from a flattened relation
// and the lookups that run against it.
package graph

import (
	"github.com/agentic-research/examine/api"
	"github.com/agentic-research/examine/internal/flatten"
)

// Table is the ordered, read-only registry of discovered nodes.
// Idx values are assigned in relation order starting at 0.
type Table struct {
	nodes []api.Node
}

// NewTable builds a table from relation pairs, in the order given.
func NewTable(pairs []flatten.Pair) *Table {
	nodes := make([]api.Node, len(pairs))
	for i, p := range pairs {
		nodes[i] = api.Node{
			Idx:    i,
			Name:   p.Name.Text,
			Parent: p.Parent.Text,
			Kind:   p.Name.Type,
		}
	}
	return &Table{nodes: nodes}
}

// Len returns the number of nodes.
func (t *Table) Len() int { return len(t.nodes) }

// NodeAt returns the node at idx.
func (t *Table) NodeAt(idx int) (api.Node, bool) {
	if idx < 0 || idx >= len(t.nodes) {
		return api.Node{}, false
	}
	return t.nodes[idx], true
}

// ParentOf returns the parent name of the node at idx.
func (t *Table) ParentOf(idx int) (string, bool) {
	n, ok := t.NodeAt(idx)
	if !ok {
		return "", false
	}
	return n.Parent, true
}

// Nodes returns a copy of every node in table order.
func (t *Table) Nodes() []api.Node {
	out := make([]api.Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}
