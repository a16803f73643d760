// ABOUTME: TUI form for entering a new lead by hand
// ABOUTME: Tab moves between fields and enter creates the lead
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/growthdesk/demo"
)

const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldLocation
	fieldBudget
	fieldTimeline
	fieldNotes
)

func (m Model) renderNewLeadView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("NEW LEAD"))
	s.WriteString("\n\n")

	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}

	help := []string{"Tab: Next field", "Enter: Save", "Esc: Cancel"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleNewLeadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.status = ""
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.formInputs) - 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.formInputs[fieldName].Value())
		if name == "" {
			m.status = "Name is required"
			return m, nil
		}
		lead := m.store.CreateLead(demo.LeadInput{
			Name:     name,
			Email:    m.formInputs[fieldEmail].Value(),
			Phone:    m.formInputs[fieldPhone].Value(),
			Location: m.formInputs[fieldLocation].Value(),
			Budget:   m.formInputs[fieldBudget].Value(),
			Timeline: m.formInputs[fieldTimeline].Value(),
			Notes:    m.formInputs[fieldNotes].Value(),
			Source:   "Terminal",
		})
		m.viewMode = ViewList
		m.tab = TabLeads
		m.selectedRow = 0
		m.status = "Created lead " + lead.Name
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) initNewLeadForm() {
	fields := []struct {
		placeholder string
		limit       int
	}{
		fieldName:     {"Name", 100},
		fieldEmail:    {"Email", 100},
		fieldPhone:    {"Phone", 20},
		fieldLocation: {"Location", 100},
		fieldBudget:   {"Budget", 30},
		fieldTimeline: {"Timeline", 50},
		fieldNotes:    {"Notes", 500},
	}

	m.formInputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.CharLimit = f.limit
		m.formInputs[i] = in
	}
	m.focusIndex = 0
	m.status = ""
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}
