// ABOUTME: Prompted AI tasks for leads, marketing, clients and contracts
// ABOUTME: Each task falls back to canned output when no API key is set

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrBadJSON is returned when a JSON-mode completion cannot be decoded.
var ErrBadJSON = errors.New("AI response was not valid JSON")

// MaxContractChars bounds the contract excerpt sent to the model.
const MaxContractChars = 15000

func withIdentity(prompt string) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemIdentity},
		{Role: RoleUser, Content: prompt},
	}
}

// completeOr returns the trimmed completion, or fallback when the model
// answers with nothing.
func (c *Client) completeOr(ctx context.Context, prompt string, temperature float32, fallback string) (string, error) {
	out, err := c.Complete(ctx, withIdentity(prompt), Options{Temperature: temperature})
	if errors.Is(err, ErrEmptyResponse) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	if out = strings.TrimSpace(out); out == "" {
		return fallback, nil
	}
	return out, nil
}

func (c *Client) completeJSON(ctx context.Context, prompt string, v any) error {
	out, err := c.Complete(ctx, withIdentity(prompt), Options{JSON: true})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(out), v); err != nil {
		c.logger.Error("failed to parse JSON", "completion", out, "err", err)
		return fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	return nil
}

// QualifyLead scores an incoming lead. leadData is rendered as indented JSON.
func (c *Client) QualifyLead(ctx context.Context, leadData any) (LeadQualificationResult, error) {
	if !c.Configured() {
		return FallbackLeadQualification, nil
	}
	data, err := json.MarshalIndent(leadData, "", "  ")
	if err != nil {
		return LeadQualificationResult{}, err
	}
	var res LeadQualificationResult
	err = c.completeJSON(ctx, Render(LeadQualification, map[string]string{"leadData": string(data)}), &res)
	return res, err
}

func (c *Client) LeadFollowUp(ctx context.Context, summary, stage, agentName string) (string, error) {
	if !c.Configured() {
		return FallbackLeadFollowUp, nil
	}
	prompt := Render(LeadFollowUpMessage, map[string]string{"summary": summary, "stage": stage, "agentName": agentName})
	return c.completeOr(ctx, prompt, 0.7, FallbackLeadFollowUp)
}

// Marketing writes copy for kind, one of the MarketingTemplates keys.
func (c *Client) Marketing(ctx context.Context, kind, details string) (string, error) {
	tmpl, ok := MarketingTemplates[kind]
	if !ok {
		return "", fmt.Errorf("unknown marketing type %q", kind)
	}
	if !c.Configured() {
		return FallbackMarketing, nil
	}
	return c.completeOr(ctx, Render(tmpl, map[string]string{"details": details}), 0.85, FallbackMarketing)
}

// ClientMessage writes a message for kind, one of the ClientTemplates keys.
func (c *Client) ClientMessage(ctx context.Context, kind, clientName, stage, agentName string) (string, error) {
	tmpl, ok := ClientTemplates[kind]
	if !ok {
		return "", fmt.Errorf("unknown client message type %q", kind)
	}
	if !c.Configured() {
		return FallbackClientMessage, nil
	}
	prompt := Render(tmpl, map[string]string{"clientName": clientName, "stage": stage, "agentName": agentName})
	return c.completeOr(ctx, prompt, 0.75, FallbackClientMessage)
}

// DailyBriefing summarizes team data as bullet points.
func (c *Client) DailyBriefing(ctx context.Context, data any) (string, error) {
	if !c.Configured() {
		return FallbackInsights, nil
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return c.completeOr(ctx, Render(DailySummary, map[string]string{"data": string(raw)}), 0.4, FallbackInsights)
}

// SummarizeContract extracts a summary, missing signatures and a task list.
func (c *Client) SummarizeContract(ctx context.Context, text string) (ContractResult, error) {
	if !c.Configured() {
		return FallbackContract(), nil
	}
	if r := []rune(text); len(r) > MaxContractChars {
		text = string(r[:MaxContractChars])
	}

	var res ContractResult
	if err := c.completeJSON(ctx, Render(ContractSummary, map[string]string{"documentText": text}), &res); err != nil {
		return ContractResult{}, fmt.Errorf("deal summary: %w", err)
	}

	var tasks struct {
		Tasks []ContractTask `json:"tasks"`
	}
	if err := c.completeJSON(ctx, Render(TaskListGenerator, map[string]string{"summary": res.Summary}), &tasks); err != nil {
		return ContractResult{}, fmt.Errorf("task list: %w", err)
	}
	res.Tasks = tasks.Tasks
	if res.Tasks == nil {
		res.Tasks = []ContractTask{}
	}
	if res.MissingSignatures == nil {
		res.MissingSignatures = []string{}
	}
	return res, nil
}
