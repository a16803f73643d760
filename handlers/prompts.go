// ABOUTME: MCP prompt handlers for reusable agent workflows
// ABOUTME: Builds lead-summary, follow-up-suggestions and pipeline-review prompts from the workspace
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/viz"
)

type PromptHandlers struct {
	store *demo.Store
}

func NewPromptHandlers(store *demo.Store) *PromptHandlers {
	return &PromptHandlers{store: store}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "lead-summary":
		return h.leadSummary(request.Params.Arguments)
	case "follow-up-suggestions":
		return h.followUpSuggestions()
	case "pipeline-review":
		return h.pipelineReview()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}

func (h *PromptHandlers) leadSummary(args map[string]string) (*mcp.GetPromptResult, error) {
	leadID, ok := args["lead_id"]
	if !ok || leadID == "" {
		return nil, fmt.Errorf("lead_id is required")
	}
	lead, ok := h.store.GetLead(leadID)
	if !ok {
		return nil, fmt.Errorf("lead not found: %s", leadID)
	}

	var b strings.Builder
	b.WriteString("Please summarize this real estate lead:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Stage: %s (score %d)\n", lead.Stage, lead.Score)
	if lead.Location != "" {
		fmt.Fprintf(&b, "Searching in: %s\n", lead.Location)
	}
	if lead.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", lead.Budget)
	}
	if lead.Timeline != "" {
		fmt.Fprintf(&b, "Timeline: %s\n", lead.Timeline)
	}
	if lead.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", lead.Notes)
	}
	if conv, ok := h.store.ConversationForLead(leadID); ok && len(conv.Messages) > 0 {
		b.WriteString("\nRecent conversation:\n")
		start := max(0, len(conv.Messages)-4)
		for _, m := range conv.Messages[start:] {
			fmt.Fprintf(&b, "- %s: %s\n", m.Sender, m.Body)
		}
	}
	b.WriteString("\nProvide a two-sentence summary and the single best next action.")

	return userPrompt(fmt.Sprintf("Summary for lead: %s", lead.Name), b.String()), nil
}

func (h *PromptHandlers) followUpSuggestions() (*mcp.GetPromptResult, error) {
	st := h.store.Snapshot()

	var b strings.Builder
	b.WriteString("These leads are in the pipeline:\n\n")
	for _, l := range st.Leads {
		fmt.Fprintf(&b, "- %s (%s, score %d, last contact %s)\n", l.Name, l.Stage, l.Score, l.LastContact)
	}
	if len(st.ScheduledFollowUps) > 0 {
		b.WriteString("\nAlready scheduled:\n")
		for _, f := range st.ScheduledFollowUps {
			fmt.Fprintf(&b, "- %s at %s (%s)\n", f.LeadName, f.ScheduledFor.Format("Jan 2 15:04"), f.Status)
		}
	}
	b.WriteString("\nSuggest which leads need a follow-up today and a one-line message for each.")

	return userPrompt("Follow-up suggestions", b.String()), nil
}

func (h *PromptHandlers) pipelineReview() (*mcp.GetPromptResult, error) {
	stats := viz.GenerateDashboardStats(h.store.Snapshot(), h.store.Clock().Now())

	var b strings.Builder
	b.WriteString("Review this pipeline snapshot:\n\n")
	b.WriteString(viz.RenderDashboard(stats))
	b.WriteString("\nCall out bottlenecks by stage and the deals or follow-ups that need attention first.")

	return userPrompt("Pipeline review", b.String()), nil
}
