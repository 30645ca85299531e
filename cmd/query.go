package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/agentic-research/examine/api"
	"github.com/agentic-research/examine/internal/report"
	"github.com/spf13/cobra"
)

var (
	asJSON  bool
	exact   bool
	dotEdge bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the flattened node table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInspector(args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd, in.Nodes())
		}
		return printer(cmd).Nodes(in.Nodes())
	},
}

var findCmd = &cobra.Command{
	Use:   "find [file] [name]",
	Short: "Look up the first node with an exact name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInspector(args[0])
		if err != nil {
			return err
		}
		n, err := in.Find(args[1])
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd, n)
		}
		return printer(cmd).Node(n)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [file] [query]",
	Short: "Find nodes by case-insensitive substring and show how to reach them",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInspector(args[0])
		if err != nil {
			return err
		}
		locs, err := in.Locate(args[1], exact)
		if err != nil {
			return err
		}
		if len(locs) == 0 {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "no nodes match %q\n", args[1])
			return err
		}
		return printer(cmd).Locations(locs)
	},
}

var chainCmd = &cobra.Command{
	Use:   "chain [file] [name]",
	Short: "Print the ancestor chain from root down to a node",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInspector(args[0])
		if err != nil {
			return err
		}
		chain, err := in.BuildParentChain(args[1])
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd, chain)
		}
		return printer(cmd).Chain(chain)
	},
}

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "Print the child -> parent edge list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInspector(args[0])
		if err != nil {
			return err
		}
		edges := in.Edges()
		switch {
		case dotEdge:
			return report.WriteDOT(cmd.OutOrStdout(), edges)
		case asJSON:
			return writeJSON(cmd, edges)
		}
		return writeEdges(cmd, edges)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file] [output.db]",
	Short: "Write the node table to a SQLite database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInspector(args[0])
		if err != nil {
			return err
		}
		if err := in.ExportSQLite(args[1]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d nodes to %s\n", in.Len(), args[1])
		return err
	},
}

func init() {
	for _, c := range []*cobra.Command{inspectCmd, findCmd, chainCmd, edgesCmd} {
		c.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	}
	searchCmd.Flags().BoolVar(&exact, "exact", false, "Match the name exactly instead of by substring")
	edgesCmd.Flags().BoolVar(&dotEdge, "dot", false, "Print a Graphviz digraph")

	rootCmd.AddCommand(inspectCmd, findCmd, searchCmd, chainCmd, edgesCmd, exportCmd)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeEdges(cmd *cobra.Command, edges []api.Edge) error {
	out := cmd.OutOrStdout()
	for _, e := range edges {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", e.Child, e.Parent); err != nil {
			return err
		}
	}
	return nil
}
