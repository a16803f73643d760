// ABOUTME: HTTP server subcommand
// ABOUTME: Serves the dashboard, demo API and AI endpoints until interrupted
package cli

import (
	"context"
	"fmt"

	"github.com/harperreed/growthdesk/web"
)

// ServeCommand runs the web server. --port overrides the configured port.
func ServeCommand(ctx context.Context, ws *Workspace, deps web.Deps, port int, args []string) error {
	fs := ws.flags("serve")
	p := fs.Int("port", port, "Port to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps.Store = ws.Store
	deps.FollowUps = ws.FollowUps
	deps.Simulator = ws.Simulator
	srv, err := web.NewServer(deps)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	return srv.Start(ctx, *p)
}
