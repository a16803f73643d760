// ABOUTME: TUI detail view for leads and conversations
// ABOUTME: Handles draft, schedule and reply keys on the selected item

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(16)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	draftStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(70)

	senderStyles = map[string]lipgloss.Style{
		models.SenderAgent:     lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		models.SenderClient:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		models.SenderAssistant: lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
	}
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	switch m.tab {
	case TabConversations:
		s.WriteString(m.renderConversationDetail())
	default:
		s.WriteString(m.renderLeadDetail())
	}

	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(statusStyle.Render(m.status))
	}
	s.WriteString("\n")
	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		return ""
	}
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}

func (m Model) renderLeadDetail() string {
	lead, ok := m.store.GetLead(m.selectedID)
	if !ok {
		return "Lead no longer exists\n"
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(lead.Name)))
	s.WriteString("\n")
	s.WriteString(m.renderField("Stage", lead.Stage))
	s.WriteString(m.renderField("Score", fmt.Sprintf("%d", lead.Score)))
	s.WriteString(m.renderField("Status", lead.Status))
	s.WriteString(m.renderField("Email", lead.Email))
	s.WriteString(m.renderField("Phone", lead.Phone))
	s.WriteString(m.renderField("Location", lead.Location))
	s.WriteString(m.renderField("Budget", lead.Budget))
	s.WriteString(m.renderField("Timeline", lead.Timeline))
	s.WriteString(m.renderField("Last contact", lead.LastContact))
	s.WriteString(m.renderField("Notes", lead.Notes))

	if d := m.store.Snapshot().FollowUpDraft; d != nil && d.LeadID == lead.ID {
		s.WriteString("\n")
		s.WriteString(draftStyle.Render("Draft follow-up\n\n" + d.Content))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderConversationDetail() string {
	var conv *models.Conversation
	st := m.store.Snapshot()
	for i := range st.Conversations {
		if st.Conversations[i].ID == m.selectedID {
			conv = &st.Conversations[i]
		}
	}
	if conv == nil {
		return "Conversation no longer exists\n"
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(conv.ClientName)))
	s.WriteString("\n")
	s.WriteString(m.renderField("Stage", conv.Stage))
	s.WriteString(m.renderField("Summary", conv.Summary))
	s.WriteString("\n")
	for _, msg := range conv.Messages {
		style, ok := senderStyles[msg.Sender]
		if !ok {
			style = fieldValueStyle
		}
		s.WriteString(style.Render(msg.Sender))
		s.WriteString(fmt.Sprintf(" %s\n  %s\n", msg.Timestamp.Format("Jan 2 15:04"), msg.Body))
	}
	return s.String()
}

func (m Model) renderDetailHelp() string {
	help := []string{"Esc: Back"}
	if m.tab == TabConversations {
		help = append(help, "m: Send update", "1-3: Draft message/review/referral")
	} else {
		help = append(help, "f: Draft", "s: Schedule 1 day", "t: Text")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

var draftKeys = map[string]string{"1": "message", "2": "reviewRequest", "3": "referral"}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	key := msg.String()
	if key == "esc" {
		m.viewMode = ViewList
		m.clampSelection()
		return m, nil
	}

	if m.tab == TabConversations {
		switch key {
		case "m":
			if m.editable() {
				if _, ok := m.sim.SendAgentMessage(m.selectedID, "Quick update: everything is on track for this week."); ok {
					m.status = "Message sent; the client is typing…"
				}
			}
		case "1", "2", "3":
			kind, _ := demo.ParseDraftKind(draftKeys[key])
			if m.editable() {
				if _, ok := m.sim.GenerateDraft(m.selectedID, kind, nil); ok {
					m.status = "Generating draft…"
				}
			}
		}
		return m, nil
	}

	// Lead detail reuses the list actions on the selected lead.
	switch key {
	case "f", "s", "t":
		return m.handleListKeys(msg)
	}
	return m, nil
}
