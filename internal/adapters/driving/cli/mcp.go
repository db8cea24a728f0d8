package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/idealens/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Use --http to
serve streamable HTTP instead, e.g. for MCP Inspector.

Tools:
  search_ideas  find repositories for a project idea
  load_more     fetch the next page for the last idea
  chat          ask the IdeaLens assistant

Examples:
  idealens mcp
  idealens mcp --http :8080

Client configuration:
  {
    "mcpServers": {
      "idealens": {
        "command": "/path/to/idealens",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	search, err := searchController()
	if err != nil {
		return err
	}

	ports := &mcp.Ports{Search: search}
	// Chat is optional for MCP clients that only search.
	if chat, err := chatController(); err == nil {
		ports.Chat = chat
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
