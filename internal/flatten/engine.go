// Package flatten turns a nested value into a flat (name, parent) relation.
package flatten

import (
	"errors"
	"fmt"

	"github.com/agentic-research/examine/internal/value"
	"go.uber.org/zap"
)

// DefaultBudget is the step budget used when Options.Budget is not positive.
const DefaultBudget = 1000

var (
	// ErrTraversalLimitExceeded is returned when the step budget runs out
	// while work is still pending. Cyclic input ends up here unless cycle
	// detection is enabled.
	ErrTraversalLimitExceeded = errors.New("traversal limit exceeded")
	// ErrCycleDetected is returned when cycle detection is enabled and a
	// container is reached again below itself.
	ErrCycleDetected = errors.New("cycle detected")
)

// Options tunes a traversal.
type Options struct {
	// Budget caps the number of worklist steps.
	Budget int
	// DetectCycles tracks container identity along each path and fails as
	// soon as a container reappears below itself. The budget still applies.
	DetectCycles bool
	Logger       *zap.Logger
}

func (o Options) budget() int {
	if o.Budget <= 0 {
		return DefaultBudget
	}
	return o.Budget
}

// item is a pending (container, key, parent) triple.
type item struct {
	container value.Value
	key       value.Key
	parent    Atom
	lineage   *lineage
}

// lineage is the chain of container identities above an item.
type lineage struct {
	id any
	up *lineage
}

func (l *lineage) contains(id any) bool {
	for ; l != nil; l = l.up {
		if l.id == id {
			return true
		}
	}
	return false
}

// Flatten walks root and returns the relation of every (name, parent) pair
// it discovers.
//
// Each key becomes a name whose parent is the key one level up (or Root).
// When a key addresses a leaf, the leaf value is recorded as a further name
// with the key as its parent. Work is taken last-in first-out.
func Flatten(root value.Value, opts Options) (*Relation, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	budget := opts.budget()

	var base *lineage
	if opts.DetectCycles {
		if id, ok := value.Identity(root); ok {
			base = &lineage{id: id}
		}
	}

	var stack []item
	for _, k := range value.KeysOf(root) {
		stack = append(stack, item{container: root, key: k, parent: Root, lineage: base})
	}

	rel := NewRelation()
	steps := 0
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := keyAtom(it.key)
		rel.Add(Pair{Name: name, Parent: it.parent})

		content := value.Get(it.container, it.key)
		if !value.IsLeaf(content) {
			below := it.lineage
			if opts.DetectCycles {
				if id, ok := value.Identity(content); ok {
					if it.lineage.contains(id) {
						log.Warn("cycle detected", zap.String("key", name.Text), zap.Int("steps", steps))
						return nil, fmt.Errorf("%w: %q reaches one of its own ancestors", ErrCycleDetected, name.Text)
					}
					below = &lineage{id: id, up: it.lineage}
				}
			}
			for _, ck := range value.KeysOf(content) {
				stack = append(stack, item{container: content, key: ck, parent: name, lineage: below})
			}
		} else if !it.key.Hashable() {
			rel.Add(Pair{Name: name, Parent: it.parent})
		} else {
			leaf := content.(value.Leaf)
			rel.Add(Pair{Name: Atom{Text: leaf.String(), Type: leaf.TypeName()}, Parent: name})
		}

		steps++
		if steps >= budget && len(stack) > 0 {
			log.Warn("traversal budget exhausted",
				zap.Int("budget", budget),
				zap.Int("pending", len(stack)),
				zap.Int("pairs", rel.Len()))
			return nil, fmt.Errorf("%w: budget of %d steps spent with %d items pending",
				ErrTraversalLimitExceeded, budget, len(stack))
		}
	}

	log.Debug("flatten complete", zap.Int("steps", steps), zap.Int("pairs", rel.Len()))
	return rel, nil
}

// keyAtom names a key. Unhashable keys are reduced to their string form.
func keyAtom(k value.Key) Atom {
	if !k.Hashable() {
		return Atom{Text: k.String(), Type: "string"}
	}
	return Atom{Text: k.String(), Type: k.TypeName()}
}
