package ingest

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ohler55/ojg/jp"
)

var ErrNoMatch = errors.New("selector matched nothing")

// Select narrows doc to the part addressed by a JSONPath selector.
//
// A single match is returned as is. Several matches are gathered into a
// mapping keyed by match position ("0", "1", ...) so that each one is still
// descended into; a plain list would contribute no nodes.
func Select(doc any, selector string) (any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	results := x.Get(doc)
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	case 1:
		return results[0], nil
	}

	out := make(map[string]any, len(results))
	for i, r := range results {
		out[strconv.Itoa(i)] = r
	}
	return out, nil
}
