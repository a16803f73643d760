// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Confirms lead deletion and deal archiving
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

// confirmTarget names what d would remove and the verb used for it.
func (m Model) confirmTarget() (name, verb string) {
	st := m.store.Snapshot()
	switch m.tab {
	case TabLeads:
		for _, l := range st.Leads {
			if l.ID == m.selectedID {
				return l.Name, "Delete lead"
			}
		}
	case TabDeals:
		for _, d := range st.Deals {
			if d.ID == m.selectedID {
				return d.Property, "Archive deal"
			}
		}
	}
	return "", ""
}

func (m Model) renderConfirmDeleteView() string {
	name, verb := m.confirmTarget()
	if name == "" {
		return "Nothing selected\n\n" + helpStyle.Render("Esc: Back")
	}

	var content strings.Builder
	content.WriteString(warningStyle.Render(fmt.Sprintf("⚠  %s?", verb)))
	content.WriteString("\n\n")
	content.WriteString(name)
	content.WriteString("\n\n")
	content.WriteString(confirmButtonStyle.Render("y: Yes"))
	content.WriteString(cancelButtonStyle.Render("n: No"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		confirmBoxStyle.Render(content.String()))
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		name, _ := m.confirmTarget()
		switch m.tab {
		case TabLeads:
			if m.store.DeleteLead(m.selectedID) {
				m.status = "Deleted " + name
			}
		case TabDeals:
			if m.store.ArchiveDeal(m.selectedID) {
				m.status = "Archived " + name
			}
		}
		m.viewMode = ViewList
		m.selectedID = ""
		m.clampSelection()
	case "n", "N", "esc":
		m.viewMode = ViewList
		m.selectedID = ""
	}
	return m, nil
}
