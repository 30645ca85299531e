package flatten

import "github.com/agentic-research/examine/api"

// Atom is one endpoint of a relation pair: the stringified form of a key or
// leaf value together with the Go type it came from. Two atoms are equal only
// if both text and type match, so the key 1 and the key "1" stay distinct
// here even though they render identically once the table is built.
type Atom struct {
	Text string
	Type string
}

func (a Atom) String() string { return a.Text }

// Root is the parent atom of every top-level entry.
var Root = Atom{Text: api.RootName, Type: "string"}

// Pair is a discovered (name, parent) relationship.
type Pair struct {
	Name   Atom
	Parent Atom
}

// Relation is the deduplicated set of pairs discovered during traversal.
// It remembers insertion order, so tables built from equal inputs come out
// in the same order.
type Relation struct {
	pairs []Pair
	seen  map[Pair]struct{}
}

func NewRelation() *Relation {
	return &Relation{seen: make(map[Pair]struct{})}
}

// Add records p, reporting whether it was new.
func (r *Relation) Add(p Pair) bool {
	if _, ok := r.seen[p]; ok {
		return false
	}
	r.seen[p] = struct{}{}
	r.pairs = append(r.pairs, p)
	return true
}

// Contains reports whether p was recorded.
func (r *Relation) Contains(p Pair) bool {
	_, ok := r.seen[p]
	return ok
}

func (r *Relation) Len() int { return len(r.pairs) }

// Pairs returns the recorded pairs in insertion order.
func (r *Relation) Pairs() []Pair {
	out := make([]Pair, len(r.pairs))
	copy(out, r.pairs)
	return out
}
