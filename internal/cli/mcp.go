package cli

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/skillgraph-backend/internal/app"
	"github.com/yungbote/skillgraph-backend/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP tool server",
	Long: `Start the MCP (Model Context Protocol) server exposing recommendation and
semantic search tools.

With --transport stdio (default) the server speaks over stdin/stdout, suitable
for launching from an MCP client config:

{
  "mcpServers": {
    "skillgraph": {
      "command": "/path/to/skillgraph",
      "args": ["mcp"]
    }
  }
}

With --transport http it serves the streamable HTTP transport on --addr.`,
	RunE: runMCP,
}

var (
	mcpTransport string
	mcpAddr      string
)

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpTransport, "transport", mcp.TransportStdio, "Transport mode: stdio or http")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", "", "Listen address for --transport http (default MCP_ADDR or :8081)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	addr := mcpAddr
	if addr == "" {
		addr = a.Cfg.MCPAddr
	}
	srv := mcp.New(a.Log, a.Services.Recommendation, a.Services.Semantic, version)
	return mcp.Serve(ctx, a.Log, srv, mcpTransport, addr)
}
