// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for desktop agent integration
package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/growthdesk/handlers"
)

// MCPCommand serves the workspace tools on stdio until ctx is cancelled or stdin closes.
func MCPCommand(ctx context.Context, ws *Workspace, logger *log.Logger) error {
	logger.Info("starting growthdesk MCP server", "version", handlers.ServerVersion)
	server := handlers.NewServer(ws.Store, ws.FollowUps, ws.Simulator)
	return server.Run(ctx, &mcp.StdioTransport{})
}
