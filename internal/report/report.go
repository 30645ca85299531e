// Package report renders inspection results for a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agentic-research/examine/api"
	"github.com/agentic-research/examine/examine"
	"github.com/agentic-research/examine/internal/config"
	"github.com/emicklei/dot"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ChainSeparator joins the names of an ancestor chain.
const ChainSeparator = " -> "

// Printer writes results to w, colouring them when enabled.
type Printer struct {
	w      io.Writer
	header *color.Color
	chain  *color.Color
	fail   *color.Color
	dim    *color.Color
}

// NewPrinter creates a Printer. mode is one of the config.Color* values;
// auto colours only when w is a terminal.
func NewPrinter(w io.Writer, mode string) *Printer {
	p := &Printer{
		w:      w,
		header: color.New(color.FgCyan, color.Bold),
		chain:  color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
		dim:    color.New(color.Faint),
	}
	on := colorEnabled(w, mode)
	for _, c := range []*color.Color{p.header, p.chain, p.fail, p.dim} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func colorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Locations prints each candidate under a "--- node ---" header followed by
// its chain, or the error that stopped the chain.
func (p *Printer) Locations(locs []examine.Location) error {
	for _, loc := range locs {
		if _, err := p.header.Fprintf(p.w, "--- %s ---\n", describe(loc.Node)); err != nil {
			return err
		}
		var err error
		if loc.Err != nil {
			_, err = p.fail.Fprintf(p.w, "error: %v\n\n", loc.Err)
		} else {
			_, err = p.chain.Fprintf(p.w, "%s\n\n", strings.Join(loc.Chain, ChainSeparator))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Chain prints a single ancestor chain.
func (p *Printer) Chain(chain []string) error {
	_, err := p.chain.Fprintln(p.w, strings.Join(chain, ChainSeparator))
	return err
}

// Nodes prints the node table, one row per node.
func (p *Printer) Nodes(nodes []api.Node) error {
	for _, n := range nodes {
		if _, err := fmt.Fprintf(p.w, "%4d  %-24s %s\n", n.Idx, n.Name, p.dim.Sprintf("<- %s (%s)", n.Parent, n.Kind)); err != nil {
			return err
		}
	}
	return nil
}

// Node prints one node, or the root placeholder.
func (p *Printer) Node(n api.Node) error {
	_, err := fmt.Fprintln(p.w, describe(n))
	return err
}

func describe(n api.Node) string {
	if n.IsRoot() {
		return api.RootName
	}
	return fmt.Sprintf("Node(idx=%d, name=%s, parent=%s, kind=%s)",
		n.Idx, strconv.Quote(n.Name), strconv.Quote(n.Parent), n.Kind)
}

// WriteDOT writes edges as a Graphviz digraph with arrows pointing from
// child to parent. Nodes are identified by name.
func WriteDOT(w io.Writer, edges []api.Edge) error {
	g := dot.NewGraph(dot.Directed)
	g.ID("examine")
	g.Attr("rankdir", "BT")
	for _, e := range edges {
		g.Edge(dotNode(g, e.Child), dotNode(g, e.Parent))
	}
	_, err := io.WriteString(w, g.String())
	return err
}

func dotNode(g *dot.Graph, name string) dot.Node {
	return g.Node(name).
		Attr("label", dot.Literal(dotQuote(name))).
		Attr("shape", "plaintext")
}

// dotQuote quotes s as a DOT string. Only quotes, backslashes and newlines
// are escaped; every other byte is kept as is.
func dotQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
