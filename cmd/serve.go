package cmd

import (
	"context"
	"encoding/json"

	"github.com/agentic-research/examine/examine"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve find, search and chain lookups over MCP on stdio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInspector(args[0])
		if err != nil {
			return err
		}
		logger.Info("serving", zap.String("file", args[0]), zap.Int("nodes", in.Len()))
		return server.ServeStdio(newMCPServer(in))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newMCPServer exposes the read-only query surface of in as MCP tools.
// The inspector is immutable, so handlers may run concurrently.
func newMCPServer(in *examine.Inspector) *server.MCPServer {
	s := server.NewMCPServer("examine", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("find",
		mcp.WithDescription("Return the first node whose name equals the given name"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exact node name")),
	), findTool(in))

	s.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Return every node whose name contains the query (case-insensitive) with its ancestor chain"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to look for")),
	), searchTool(in))

	s.AddTool(mcp.NewTool("chain",
		mcp.WithDescription("Return the ancestor chain from root down to the named node"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exact node name")),
	), chainTool(in))

	return s
}

func findTool(in *examine.Inspector) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		n, err := in.Find(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(n)
	}
}

type searchHit struct {
	Name   string   `json:"name"`
	Parent string   `json:"parent"`
	Idx    int      `json:"idx"`
	Chain  []string `json:"chain,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func searchTool(in *examine.Inspector) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		locs, err := in.Locate(query, false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		hits := make([]searchHit, len(locs))
		for i, loc := range locs {
			hits[i] = searchHit{Name: loc.Node.Name, Parent: loc.Node.Parent, Idx: loc.Node.Idx, Chain: loc.Chain}
			if loc.Err != nil {
				hits[i].Error = loc.Err.Error()
			}
		}
		return jsonResult(hits)
	}
}

func chainTool(in *examine.Inspector) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		chain, err := in.BuildParentChain(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(chain)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(raw)), nil
}
