// ABOUTME: Builds the MCP server with every workspace tool, resource and prompt registered
// ABOUTME: Shared by the stdio subcommand and the in-memory tests
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/growthdesk/demo"
)

const ServerVersion = "0.2.0"

// NewServer registers the growthdesk tools on a fresh MCP server.
func NewServer(store *demo.Store, followUps *demo.FollowUps, sim *demo.Simulator) *mcp.Server {
	leadHandlers := NewLeadHandlers(store)
	followUpHandlers := NewFollowUpHandlers(store, followUps)
	workspaceHandlers := NewWorkspaceHandlers(store, sim)
	resourceHandlers := NewResourceHandlers(store)
	promptHandlers := NewPromptHandlers(store)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "growthdesk",
		Version: ServerVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_leads",
		Description: "List pipeline leads, optionally filtered by stage, minimum score or a name/location query",
	}, leadHandlers.ListLeads)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_lead",
		Description: "Capture a new lead into the Discovery stage",
	}, leadHandlers.CreateLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_lead",
		Description: "Update a lead's details, stage or score",
	}, leadHandlers.UpdateLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_lead",
		Description: "Remove a lead from the pipeline",
	}, leadHandlers.DeleteLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "prepare_follow_up",
		Description: "Draft a personalized follow-up message for a lead",
	}, leadHandlers.PrepareFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schedule_follow_up",
		Description: "Schedule a follow-up text for a lead after a delay such as '4 hours' or '1 day'",
	}, followUpHandlers.ScheduleFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_follow_up",
		Description: "Send a scheduled follow-up immediately",
	}, followUpHandlers.SendFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cancel_follow_up",
		Description: "Cancel a scheduled follow-up",
	}, followUpHandlers.CancelFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_client_message",
		Description: "Send a message into a client conversation by conversation or lead ID",
	}, workspaceHandlers.SendClientMessage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "archive_deal",
		Description: "Archive a closed deal",
	}, workspaceHandlers.ArchiveDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_document",
		Description: "Add a document placeholder that starts in the processing state",
	}, workspaceHandlers.AddDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_demo",
		Description: "Discard all edits and reload the sample workspace",
	}, workspaceHandlers.ResetDemo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_demo",
		Description: "Turn sample mode off and empty the workspace",
	}, workspaceHandlers.ClearDemo)

	for _, r := range []*mcp.Resource{
		{URI: resourceScheme + "leads", Name: "leads", Description: "All pipeline leads", MIMEType: "application/json"},
		{URI: resourceScheme + "deals", Name: "deals", Description: "Closed deals", MIMEType: "application/json"},
		{URI: resourceScheme + "followups", Name: "followups", Description: "Scheduled follow-ups", MIMEType: "application/json"},
		{URI: resourceScheme + "pipeline", Name: "pipeline", Description: "Dashboard summary of the pipeline", MIMEType: "text/plain"},
	} {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: resourceScheme + "leads/{id}",
		Name:        "lead",
		Description: "A single lead by ID",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "lead-summary",
		Description: "Summarize a lead and suggest the next action",
		Arguments:   []*mcp.PromptArgument{{Name: "lead_id", Description: "Lead ID", Required: true}},
	}, promptHandlers.GetPrompt)
	server.AddPrompt(&mcp.Prompt{
		Name:        "follow-up-suggestions",
		Description: "Suggest today's follow-ups across the pipeline",
	}, promptHandlers.GetPrompt)
	server.AddPrompt(&mcp.Prompt{
		Name:        "pipeline-review",
		Description: "Review pipeline health by stage",
	}, promptHandlers.GetPrompt)

	return server
}
