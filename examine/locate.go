package examine

import (
	"fmt"

	"github.com/agentic-research/examine/api"
)

// Location is a candidate node together with its ancestor chain. Err is set
// instead of Chain when the chain could not be rebuilt.
type Location struct {
	Node  api.Node
	Chain []string
	Err   error
}

// Locate gathers candidates for query and rebuilds the chain of each one.
// With exact set, the only candidate is Find(query); otherwise every
// FuzzyFind match is a candidate.
func (in *Inspector) Locate(query string, exact bool) ([]Location, error) {
	var candidates []api.Node
	if exact {
		n, err := in.Find(query)
		if err != nil {
			return nil, err
		}
		if n.IsRoot() {
			return nil, fmt.Errorf("%w: %q", ErrRootShadowed, query)
		}
		candidates = []api.Node{n}
	} else {
		candidates = in.FuzzyFind(query)
	}

	locs := make([]Location, len(candidates))
	for i, c := range candidates {
		chain, err := in.BuildParentChain(c.Name)
		locs[i] = Location{Node: c, Chain: chain, Err: err}
	}
	return locs, nil
}
