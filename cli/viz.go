// ABOUTME: Pipeline visualization CLI command
// ABOUTME: Prints the ASCII dashboard or the Graphviz pipeline graph
package cli

import (
	"fmt"
	"os"

	"github.com/harperreed/growthdesk/viz"
)

// DemoPipelineCommand renders the dashboard; --graph emits the pipeline as xdot instead.
func DemoPipelineCommand(ws *Workspace, args []string) error {
	fs := ws.flags("demo pipeline")
	graph := fs.Bool("graph", false, "Output the pipeline graph (xdot)")
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st := ws.Store.Snapshot()
	var rendered string
	if *graph {
		dot, err := viz.PipelineGraph(st)
		if err != nil {
			return fmt.Errorf("failed to render pipeline graph: %w", err)
		}
		rendered = dot
	} else {
		rendered = viz.RenderDashboard(viz.GenerateDashboardStats(st, ws.Store.Clock().Now()))
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0644); err != nil {
			return err
		}
		ws.printf("✓ Wrote %s\n", *output)
		return nil
	}
	ws.printf("%s", rendered)
	return nil
}
