// Package examine flattens an arbitrary nested value into a table of named
// nodes and parent links, and answers lookups against it.
//
//	in, err := examine.New(doc)
//	chain, err := in.BuildParentChain("port")
//
// An Inspector is built once and never changes afterwards; inspect a changed
// value by constructing a new one. Queries on a built Inspector are safe for
// concurrent use.
package examine

import (
	"fmt"

	"github.com/agentic-research/examine/api"
	"github.com/agentic-research/examine/internal/flatten"
	"github.com/agentic-research/examine/internal/graph"
	"github.com/agentic-research/examine/internal/value"
	"go.uber.org/zap"
)

// Errors surfaced by Inspector. Match them with errors.Is.
var (
	ErrTraversalLimitExceeded     = flatten.ErrTraversalLimitExceeded
	ErrCycleDetected              = flatten.ErrCycleDetected
	ErrNotFound                   = graph.ErrNotFound
	ErrPathReconstructionOverflow = graph.ErrPathReconstructionOverflow
	ErrRootShadowed               = graph.ErrRootShadowed
)

// DefaultBudget is the traversal step budget used unless WithBudget is given.
const DefaultBudget = flatten.DefaultBudget

// Option configures New.
type Option func(*flatten.Options)

// WithBudget caps the number of traversal steps. Non-positive values select
// DefaultBudget.
func WithBudget(n int) Option {
	return func(o *flatten.Options) { o.Budget = n }
}

// WithCycleDetection makes New fail with ErrCycleDetected as soon as a
// container reappears below itself, instead of running out the budget.
func WithCycleDetection(on bool) Option {
	return func(o *flatten.Options) { o.DetectCycles = on }
}

// WithLogger routes traversal diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *flatten.Options) { o.Logger = l }
}

// Inspector is the flattened view of one nested value.
type Inspector struct {
	table *graph.Table
	index *graph.Index
}

// New inspects v. Plain Go values (maps, slices, structs, pointers and
// primitives) are adapted automatically; values that are already a
// value.Value are used as they are.
func New(v any, opts ...Option) (*Inspector, error) {
	var o flatten.Options
	for _, opt := range opts {
		opt(&o)
	}

	rel, err := flatten.Flatten(value.Of(v), o)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	table := graph.NewTable(rel.Pairs())
	return &Inspector{
		table: table,
		index: graph.NewIndex(table),
	}, nil
}

// Len returns the number of nodes.
func (in *Inspector) Len() int { return in.table.Len() }

// NodeAt returns the node at idx.
func (in *Inspector) NodeAt(idx int) (api.Node, bool) { return in.table.NodeAt(idx) }

// ParentOf returns the parent name of the node at idx.
func (in *Inspector) ParentOf(idx int) (string, bool) { return in.table.ParentOf(idx) }

// Nodes returns every node in table order.
func (in *Inspector) Nodes() []api.Node { return in.table.Nodes() }

// Edges returns the child -> parent edge list in table order.
func (in *Inspector) Edges() []api.Edge { return api.Edges(in.table.Nodes()) }

// Find returns the first node named name. See graph.Index.Find for the
// root short-circuit.
func (in *Inspector) Find(name string) (api.Node, error) { return in.index.Find(name) }

// FuzzyFind returns every node whose name contains query, ignoring case.
func (in *Inspector) FuzzyFind(query string) []api.Node { return in.index.FuzzyFind(query) }

// BuildParentChain returns the names from the root sentinel down to start.
func (in *Inspector) BuildParentChain(start string) ([]string, error) {
	return graph.Chain(in.index, start)
}

// ExportSQLite writes the node table to a SQLite database.
func (in *Inspector) ExportSQLite(dbPath string) error {
	return graph.ExportSQLite(dbPath, in.table)
}
