// ABOUTME: TUI dashboard view over the pipeline stats
// ABOUTME: Renders the same dashboard as the demo pipeline command
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/growthdesk/viz"
)

func (m Model) renderDashboardView() string {
	var s strings.Builder

	stats := viz.GenerateDashboardStats(m.store.Snapshot(), m.store.Clock().Now())
	s.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Render(viz.RenderDashboard(stats)))
	s.WriteString("\n")

	help := []string{"Esc: Back", "q: Quit"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.viewMode = ViewList
	}
	return m, nil
}
