// ABOUTME: Workspace MCP tool handlers for conversations, deals, documents and sample data
// ABOUTME: Implements send_client_message, archive_deal, add_document, reset_demo and clear_demo
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/growthdesk/demo"
)

var errSampleModeOff = errors.New("sample mode is off; run reset_demo to load the sample workspace")

type WorkspaceHandlers struct {
	store *demo.Store
	sim   *demo.Simulator
}

func NewWorkspaceHandlers(store *demo.Store, sim *demo.Simulator) *WorkspaceHandlers {
	return &WorkspaceHandlers{store: store, sim: sim}
}

type SendClientMessageInput struct {
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"Conversation ID (either this or lead_id is required)"`
	LeadID         string `json:"lead_id,omitempty" jsonschema:"Lead whose linked conversation receives the message"`
	Body           string `json:"body" jsonschema:"Message text (required)"`
}

type SendClientMessageOutput struct {
	ConversationID string `json:"conversation_id"`
	ClientName     string `json:"client_name"`
	ReplyIn        string `json:"reply_in"`
}

// SendClientMessage posts an agent message; the simulated client answers after a short delay.
func (h *WorkspaceHandlers) SendClientMessage(_ context.Context, _ *mcp.CallToolRequest, input SendClientMessageInput) (*mcp.CallToolResult, SendClientMessageOutput, error) {
	if strings.TrimSpace(input.Body) == "" {
		return nil, SendClientMessageOutput{}, fmt.Errorf("body is required")
	}
	if input.ConversationID == "" && input.LeadID == "" {
		return nil, SendClientMessageOutput{}, fmt.Errorf("conversation_id or lead_id is required")
	}
	if !h.store.SampleMode() {
		return nil, SendClientMessageOutput{}, errSampleModeOff
	}

	convID := input.ConversationID
	if convID == "" {
		conv, ok := h.store.ConversationForLead(input.LeadID)
		if !ok {
			return nil, SendClientMessageOutput{}, fmt.Errorf("lead %s has no conversation", input.LeadID)
		}
		convID = conv.ID
	}

	if _, ok := h.sim.SendAgentMessage(convID, input.Body); !ok {
		return nil, SendClientMessageOutput{}, fmt.Errorf("conversation not found: %s", convID)
	}

	out := SendClientMessageOutput{ConversationID: convID, ReplyIn: demo.TypingDelay.String()}
	for _, c := range h.store.Snapshot().Conversations {
		if c.ID == convID {
			out.ClientName = c.ClientName
		}
	}
	return nil, out, nil
}

type ArchiveDealInput struct {
	ID string `json:"id" jsonschema:"Deal ID (required)"`
}

type ArchiveDealOutput struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

func (h *WorkspaceHandlers) ArchiveDeal(_ context.Context, _ *mcp.CallToolRequest, input ArchiveDealInput) (*mcp.CallToolResult, ArchiveDealOutput, error) {
	if input.ID == "" {
		return nil, ArchiveDealOutput{}, fmt.Errorf("id is required")
	}
	if !h.store.SampleMode() {
		return nil, ArchiveDealOutput{}, errSampleModeOff
	}
	if !h.store.ArchiveDeal(input.ID) {
		return nil, ArchiveDealOutput{}, fmt.Errorf("deal not found: %s", input.ID)
	}
	return nil, ArchiveDealOutput{ID: input.ID, Archived: true}, nil
}

type AddDocumentInput struct {
	Title    string `json:"title" jsonschema:"Document title (required)"`
	Property string `json:"property,omitempty" jsonschema:"Property the document belongs to"`
}

type DocumentOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Property string `json:"property"`
	Size     string `json:"size"`
	Status   string `json:"status"`
}

func (h *WorkspaceHandlers) AddDocument(_ context.Context, _ *mcp.CallToolRequest, input AddDocumentInput) (*mcp.CallToolResult, DocumentOutput, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, DocumentOutput{}, fmt.Errorf("title is required")
	}
	if !h.store.SampleMode() {
		return nil, DocumentOutput{}, errSampleModeOff
	}
	doc := h.store.AddDocumentPlaceholder(input.Title, input.Property)
	return nil, DocumentOutput{ID: doc.ID, Title: doc.Title, Property: doc.Property, Size: doc.Size, Status: doc.Status}, nil
}

type EmptyInput struct{}

type WorkspaceOutput struct {
	SampleMode    bool `json:"sample_mode"`
	Leads         int  `json:"leads"`
	Deals         int  `json:"deals"`
	Conversations int  `json:"conversations"`
	Documents     int  `json:"documents"`
	FollowUps     int  `json:"follow_ups"`
}

func (h *WorkspaceHandlers) summary() WorkspaceOutput {
	st := h.store.Snapshot()
	return WorkspaceOutput{
		SampleMode:    st.SampleMode,
		Leads:         len(st.Leads),
		Deals:         len(st.Deals),
		Conversations: len(st.Conversations),
		Documents:     len(st.Documents),
		FollowUps:     len(st.ScheduledFollowUps),
	}
}

// ResetDemo discards every edit and reseeds the sample workspace.
func (h *WorkspaceHandlers) ResetDemo(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, WorkspaceOutput, error) {
	h.store.ResetDemoData()
	return nil, h.summary(), nil
}

// ClearDemo switches to live mode with an empty workspace.
func (h *WorkspaceHandlers) ClearDemo(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, WorkspaceOutput, error) {
	h.store.ClearSampleData()
	return nil, h.summary(), nil
}
