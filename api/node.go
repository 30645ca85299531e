package api

// RootName is the synthetic parent of every top-level entry.
// It is only ever referenced as a parent; no Node carries it as an ID.
const RootName = "root"

// Node is one row of the flat table produced by inspecting a nested value.
type Node struct {
	// Idx is the stable position assigned when the table was built.
	Idx int `json:"idx"`
	// Name is the stringified key or leaf value this node represents.
	Name string `json:"name"`
	// Parent is the stringified name one level up, or RootName.
	Parent string `json:"parent"`
	// Kind is the Go type of the value the name was derived from.
	// Diagnostic only.
	Kind string `json:"kind"`
}

// RootNode returns the placeholder handed out when a lookup resolves to the
// root sentinel rather than to a real node.
func RootNode() Node {
	return Node{Idx: -1, Name: RootName}
}

// IsRoot reports whether n is the root placeholder.
func (n Node) IsRoot() bool {
	return n.Idx < 0 && n.Name == RootName
}

// Edge is a directed child -> parent link, as consumed by graph renderers.
type Edge struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// Edges projects nodes onto their (name, parent) links, in table order.
func Edges(nodes []Node) []Edge {
	edges := make([]Edge, len(nodes))
	for i, n := range nodes {
		edges[i] = Edge{Child: n.Name, Parent: n.Parent}
	}
	return edges
}
