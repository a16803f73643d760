// ABOUTME: Scheduled follow-up MCP tool handlers
// ABOUTME: Implements schedule_follow_up, send_follow_up and cancel_follow_up
package handlers

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

type FollowUpHandlers struct {
	store     *demo.Store
	followUps *demo.FollowUps
}

func NewFollowUpHandlers(store *demo.Store, followUps *demo.FollowUps) *FollowUpHandlers {
	return &FollowUpHandlers{store: store, followUps: followUps}
}

type FollowUpOutput struct {
	ID           string `json:"id"`
	LeadID       string `json:"lead_id"`
	LeadName     string `json:"lead_name"`
	ScheduledFor string `json:"scheduled_for"`
	Countdown    string `json:"countdown"`
	Status       string `json:"status"`
	Message      string `json:"message"`
	Delay        string `json:"delay"`
}

func (h *FollowUpHandlers) toOutput(item models.ScheduledFollowUp) FollowUpOutput {
	return FollowUpOutput{
		ID:           item.ID,
		LeadID:       item.LeadID,
		LeadName:     item.LeadName,
		ScheduledFor: item.ScheduledFor.Format("2006-01-02T15:04:05Z07:00"),
		Countdown:    demo.CountdownFor(item, h.store.Clock().Now()).String(),
		Status:       item.Status,
		Message:      item.Message,
		Delay:        item.Delay,
	}
}

type ScheduleFollowUpInput struct {
	LeadID string `json:"lead_id" jsonschema:"Lead ID (required)"`
	Delay  string `json:"delay,omitempty" jsonschema:"One of: 1 hour, 4 hours, 1 day, 2 days, 3 days, 1 week (default 1 day)"`
}

func (h *FollowUpHandlers) ScheduleFollowUp(_ context.Context, _ *mcp.CallToolRequest, input ScheduleFollowUpInput) (*mcp.CallToolResult, FollowUpOutput, error) {
	if input.LeadID == "" {
		return nil, FollowUpOutput{}, fmt.Errorf("lead_id is required")
	}
	delay := input.Delay
	if delay == "" {
		delay = "1 day"
	}
	if !slices.Contains(demo.DelayLabels, delay) {
		return nil, FollowUpOutput{}, fmt.Errorf("delay must be one of: %s", strings.Join(demo.DelayLabels, ", "))
	}
	if !h.store.SampleMode() {
		return nil, FollowUpOutput{}, errSampleModeOff
	}

	item, ok := h.followUps.Schedule(input.LeadID, delay)
	if !ok {
		return nil, FollowUpOutput{}, fmt.Errorf("lead not found: %s", input.LeadID)
	}
	return nil, h.toOutput(item), nil
}

type FollowUpIDInput struct {
	ID string `json:"id" jsonschema:"Scheduled follow-up ID (required)"`
}

type FollowUpActionOutput struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

func (h *FollowUpHandlers) SendFollowUp(_ context.Context, _ *mcp.CallToolRequest, input FollowUpIDInput) (*mcp.CallToolResult, FollowUpActionOutput, error) {
	if input.ID == "" {
		return nil, FollowUpActionOutput{}, fmt.Errorf("id is required")
	}
	if !h.store.SampleMode() {
		return nil, FollowUpActionOutput{}, errSampleModeOff
	}
	if !h.followUps.SendNow(input.ID) {
		return nil, FollowUpActionOutput{}, fmt.Errorf("no waiting follow-up with id %s", input.ID)
	}
	return nil, FollowUpActionOutput{ID: input.ID, Action: "sent"}, nil
}

func (h *FollowUpHandlers) CancelFollowUp(_ context.Context, _ *mcp.CallToolRequest, input FollowUpIDInput) (*mcp.CallToolResult, FollowUpActionOutput, error) {
	if input.ID == "" {
		return nil, FollowUpActionOutput{}, fmt.Errorf("id is required")
	}
	if !h.store.SampleMode() {
		return nil, FollowUpActionOutput{}, errSampleModeOff
	}
	if !h.followUps.Cancel(input.ID) {
		return nil, FollowUpActionOutput{}, fmt.Errorf("follow-up not found: %s", input.ID)
	}
	return nil, FollowUpActionOutput{ID: input.ID, Action: "cancelled"}, nil
}
