package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-research/examine/api"
)

var (
	// ErrPathReconstructionOverflow means the parent links never reached the
	// root within as many hops as there are nodes.
	ErrPathReconstructionOverflow = errors.New("path reconstruction overflow")
	// ErrRootShadowed means a name on the chain resolved to the root
	// placeholder because a node named "root" precedes it in the table.
	ErrRootShadowed = errors.New("lookup shadowed by a node named root")
)

// Chain reconstructs the ancestor chain of start, ordered from the root
// sentinel down to start itself.
func Chain(ix *Index, start string) ([]string, error) {
	chain := []string{start}

	idx, err := resolve(ix, start, chain)
	if err != nil {
		return nil, err
	}

	maxDepth := ix.table.Len()
	for hops := 0; ; {
		parent, _ := ix.table.ParentOf(idx)
		chain = append([]string{parent}, chain...)
		if parent == api.RootName {
			return chain, nil
		}
		if idx, err = resolve(ix, parent, chain); err != nil {
			return nil, err
		}
		hops++
		if hops >= maxDepth {
			return nil, fmt.Errorf("%w after %d hops: %s",
				ErrPathReconstructionOverflow, hops, strings.Join(chain, " -> "))
		}
	}
}

func resolve(ix *Index, name string, chain []string) (int, error) {
	n, err := ix.Find(name)
	if err != nil {
		return 0, err
	}
	if n.IsRoot() {
		return 0, fmt.Errorf("%w: resolving %q in %s", ErrRootShadowed, name, strings.Join(chain, " -> "))
	}
	return n.Idx, nil
}
