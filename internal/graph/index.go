package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/examine/api"
)

var ErrNotFound = errors.New("node not found")

// Index answers exact and substring lookups over a Table.
//
// Exact lookups go through per-name postings bitmaps; the lowest set bit is
// the first matching node in table order.
type Index struct {
	table    *Table
	postings map[string]*roaring.Bitmap
	lowered  []string
}

// NewIndex builds postings for every node name in t.
func NewIndex(t *Table) *Index {
	ix := &Index{
		table:    t,
		postings: make(map[string]*roaring.Bitmap),
		lowered:  make([]string, t.Len()),
	}
	for i, n := range t.nodes {
		bm, ok := ix.postings[n.Name]
		if !ok {
			bm = roaring.New()
			ix.postings[n.Name] = bm
		}
		bm.AddInt(i)
		ix.lowered[i] = strings.ToLower(n.Name)
	}
	return ix
}

// Find returns the first node named query.
//
// If a node literally named "root" comes first in table order, Find stops
// there and returns api.RootNode() instead, whatever query was. Callers can
// tell the two apart with Node.IsRoot.
func (ix *Index) Find(query string) (api.Node, error) {
	first, found := ix.first(query)
	if root, ok := ix.first(api.RootName); ok && (!found || root <= first) {
		return api.RootNode(), nil
	}
	if !found {
		return api.Node{}, fmt.Errorf("%w: %q (check the spelling or use a substring search)", ErrNotFound, query)
	}
	return ix.table.nodes[first], nil
}

func (ix *Index) first(name string) (uint32, bool) {
	bm, ok := ix.postings[name]
	if !ok || bm.IsEmpty() {
		return 0, false
	}
	return bm.Minimum(), true
}

// FuzzyFind returns every node whose name contains query, ignoring case,
// in table order. No match is an empty result, not an error.
func (ix *Index) FuzzyFind(query string) []api.Node {
	hits := ix.FuzzySet(query)
	out := make([]api.Node, 0, hits.GetCardinality())
	it := hits.Iterator()
	for it.HasNext() {
		out = append(out, ix.table.nodes[it.Next()])
	}
	return out
}

// FuzzySet is FuzzyFind as a set of node indexes.
func (ix *Index) FuzzySet(query string) *roaring.Bitmap {
	q := strings.ToLower(query)
	hits := roaring.New()
	for i, name := range ix.lowered {
		if strings.Contains(name, q) {
			hits.AddInt(i)
		}
	}
	return hits
}

// Table returns the indexed table.
func (ix *Index) Table() *Table { return ix.table }
