// ABOUTME: Lead MCP tool handlers over the demo workspace
// ABOUTME: Implements list_leads, create_lead, update_lead, delete_lead and prepare_follow_up
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

type LeadHandlers struct {
	store *demo.Store
}

func NewLeadHandlers(store *demo.Store) *LeadHandlers {
	return &LeadHandlers{store: store}
}

type LeadOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Source         string `json:"source,omitempty"`
	Location       string `json:"location,omitempty"`
	Budget         string `json:"budget,omitempty"`
	Stage          string `json:"stage"`
	Status         string `json:"status"`
	Timeline       string `json:"timeline,omitempty"`
	Score          int    `json:"score"`
	ConversationID string `json:"conversation_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func leadToOutput(l models.Lead) LeadOutput {
	return LeadOutput{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Source:         l.Source,
		Location:       l.Location,
		Budget:         l.Budget,
		Stage:          l.Stage,
		Status:         l.Status,
		Timeline:       l.Timeline,
		Score:          l.Score,
		ConversationID: l.ConversationID,
		CreatedAt:      l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type ListLeadsInput struct {
	Stage    string `json:"stage,omitempty" jsonschema:"Only leads in this stage (New Inquiry, Discovery, Touring, Negotiating, Closed)"`
	MinScore int    `json:"min_score,omitempty" jsonschema:"Only leads scoring at least this much"`
	Query    string `json:"query,omitempty" jsonschema:"Case-insensitive match on name or location"`
}

type ListLeadsOutput struct {
	SampleMode bool         `json:"sample_mode"`
	Leads      []LeadOutput `json:"leads"`
}

func (h *LeadHandlers) ListLeads(_ context.Context, _ *mcp.CallToolRequest, input ListLeadsInput) (*mcp.CallToolResult, ListLeadsOutput, error) {
	st := h.store.Snapshot()
	query := strings.ToLower(input.Query)

	out := ListLeadsOutput{SampleMode: st.SampleMode, Leads: []LeadOutput{}}
	for _, l := range st.Leads {
		if input.Stage != "" && !strings.EqualFold(l.Stage, input.Stage) {
			continue
		}
		if l.Score < input.MinScore {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(l.Name), query) && !strings.Contains(strings.ToLower(l.Location), query) {
			continue
		}
		out.Leads = append(out.Leads, leadToOutput(l))
	}
	return nil, out, nil
}

type CreateLeadInput struct {
	Name     string `json:"name" jsonschema:"Lead name (required)"`
	Email    string `json:"email,omitempty" jsonschema:"Lead email address"`
	Phone    string `json:"phone,omitempty" jsonschema:"Lead phone number"`
	Source   string `json:"source,omitempty" jsonschema:"Where the lead came from"`
	Location string `json:"location,omitempty" jsonschema:"Area the lead is searching in"`
	Budget   string `json:"budget,omitempty" jsonschema:"Budget as free text, e.g. $1.2M"`
	Timeline string `json:"timeline,omitempty" jsonschema:"Purchase timeline as free text"`
	Notes    string `json:"notes,omitempty" jsonschema:"Additional notes about the lead"`
}

func (h *LeadHandlers) CreateLead(_ context.Context, _ *mcp.CallToolRequest, input CreateLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, LeadOutput{}, fmt.Errorf("name is required")
	}
	if !h.store.SampleMode() {
		return nil, LeadOutput{}, errSampleModeOff
	}

	lead := h.store.CreateLead(demo.LeadInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Source:   input.Source,
		Location: input.Location,
		Budget:   input.Budget,
		Timeline: input.Timeline,
		Notes:    input.Notes,
	})
	return nil, leadToOutput(lead), nil
}

type UpdateLeadInput struct {
	ID       string  `json:"id" jsonschema:"Lead ID (required)"`
	Name     *string `json:"name,omitempty" jsonschema:"New name"`
	Email    *string `json:"email,omitempty" jsonschema:"New email"`
	Phone    *string `json:"phone,omitempty" jsonschema:"New phone"`
	Budget   *string `json:"budget,omitempty" jsonschema:"New budget"`
	Stage    *string `json:"stage,omitempty" jsonschema:"New pipeline stage"`
	Status   *string `json:"status,omitempty" jsonschema:"New status label"`
	Timeline *string `json:"timeline,omitempty" jsonschema:"New timeline"`
	Notes    *string `json:"notes,omitempty" jsonschema:"Replacement notes"`
	Score    *int    `json:"score,omitempty" jsonschema:"New score between 0 and 100"`
}

func (h *LeadHandlers) UpdateLead(_ context.Context, _ *mcp.CallToolRequest, input UpdateLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	if input.ID == "" {
		return nil, LeadOutput{}, fmt.Errorf("id is required")
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		return nil, LeadOutput{}, fmt.Errorf("score must be between 0 and 100")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, LeadOutput{}, fmt.Errorf("name cannot be blank")
	}
	if !h.store.SampleMode() {
		return nil, LeadOutput{}, errSampleModeOff
	}

	lead, ok := h.store.UpdateLead(input.ID, demo.LeadUpdate{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Budget:   input.Budget,
		Stage:    input.Stage,
		Status:   input.Status,
		Timeline: input.Timeline,
		Notes:    input.Notes,
		Score:    input.Score,
	})
	if !ok {
		return nil, LeadOutput{}, fmt.Errorf("lead not found: %s", input.ID)
	}
	return nil, leadToOutput(lead), nil
}

type LeadIDInput struct {
	ID string `json:"id" jsonschema:"Lead ID (required)"`
}

type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (h *LeadHandlers) DeleteLead(_ context.Context, _ *mcp.CallToolRequest, input LeadIDInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if !h.store.SampleMode() {
		return nil, DeleteOutput{}, errSampleModeOff
	}
	if !h.store.DeleteLead(input.ID) {
		return nil, DeleteOutput{}, fmt.Errorf("lead not found: %s", input.ID)
	}
	return nil, DeleteOutput{Deleted: true, ID: input.ID}, nil
}

type DraftOutput struct {
	LeadID  string `json:"lead_id"`
	Content string `json:"content"`
}

// PrepareFollowUp writes the lead's follow-up draft into the workspace and returns it.
func (h *LeadHandlers) PrepareFollowUp(_ context.Context, _ *mcp.CallToolRequest, input LeadIDInput) (*mcp.CallToolResult, DraftOutput, error) {
	if input.ID == "" {
		return nil, DraftOutput{}, fmt.Errorf("id is required")
	}
	if !h.store.SampleMode() {
		return nil, DraftOutput{}, errSampleModeOff
	}
	draft, ok := h.store.PrepareFollowUp(input.ID)
	if !ok {
		return nil, DraftOutput{}, fmt.Errorf("lead not found: %s", input.ID)
	}
	return nil, DraftOutput{LeadID: draft.LeadID, Content: draft.Content}, nil
}
