// ABOUTME: MCP resource handlers exposing the demo workspace
// ABOUTME: Provides read-only access to leads, deals, follow-ups and the pipeline via growthdesk:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/viz"
)

const resourceScheme = "growthdesk://"

type ResourceHandlers struct {
	store *demo.Store
}

func NewResourceHandlers(store *demo.Store) *ResourceHandlers {
	return &ResourceHandlers{store: store}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	st := h.store.Snapshot()

	switch parts[0] {
	case "leads":
		if len(parts) == 1 {
			return jsonResource(uri, st.Leads)
		}
		for _, l := range st.Leads {
			if l.ID == parts[1] {
				return jsonResource(uri, l)
			}
		}
		return nil, mcp.ResourceNotFoundError(uri)

	case "deals":
		return jsonResource(uri, st.Deals)

	case "followups":
		return jsonResource(uri, st.ScheduledFollowUps)

	case "pipeline":
		stats := viz.GenerateDashboardStats(st, h.store.Clock().Now())
		return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "text/plain", Text: viz.RenderDashboard(stats)},
		}}, nil

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{URI: uri, MIMEType: "application/json", Text: string(data)},
	}}, nil
}
