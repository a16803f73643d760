// ABOUTME: TUI list view with lead, deal, conversation and follow-up tabs
// ABOUTME: Renders the tab bar and the table for the active tab

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/growthdesk/viz"
)

func (m Model) renderListView() string {
	var s strings.Builder

	title := "GROWTHDESK"
	if !m.store.SampleMode() {
		title += " (live, empty)"
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	s.WriteString(m.renderTable())
	s.WriteString("\n")

	if m.status != "" {
		s.WriteString("\n")
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, tab := range tabNames {
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case TabLeads:
		columns, rows = m.leadRows()
	case TabDeals:
		columns, rows = m.dealRows()
	case TabFollowUps:
		columns, rows = m.followUpRows()
	case TabConversations:
		columns, rows = m.conversationRows()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-12)),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t.View()
}

func (m Model) leadRows() ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Stage", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Location", Width: 24},
		{Title: "Budget", Width: 12},
	}
	var rows []table.Row
	for _, l := range m.store.Snapshot().Leads {
		score := fmt.Sprintf("%d", l.Score)
		if l.Score >= viz.HotLeadScore {
			score += " 🔥"
		}
		rows = append(rows, table.Row{l.Name, l.Stage, score, l.Location, l.Budget})
	}
	return columns, rows
}

func (m Model) dealRows() ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Property", Width: 24},
		{Title: "Buyer", Width: 20},
		{Title: "Price", Width: 10},
		{Title: "Closed", Width: 12},
	}
	var rows []table.Row
	for _, d := range m.store.Snapshot().Deals {
		rows = append(rows, table.Row{d.Property, d.Buyer, fmt.Sprintf("$%dK", d.Price/1000), d.ClosedOn})
	}
	return columns, rows
}

func (m Model) conversationRows() ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Client", Width: 22},
		{Title: "Stage", Width: 14},
		{Title: "Last message", Width: 44},
	}
	var rows []table.Row
	for _, c := range m.store.Snapshot().Conversations {
		unread := ""
		if c.Unread {
			unread = "●"
		}
		last := ""
		if n := len(c.Messages); n > 0 {
			last = truncate(c.Messages[n-1].Body, 44)
		}
		rows = append(rows, table.Row{unread, c.ClientName, c.Stage, last})
	}
	return columns, rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) rowCount() int {
	st := m.store.Snapshot()
	switch m.tab {
	case TabLeads:
		return len(st.Leads)
	case TabDeals:
		return len(st.Deals)
	case TabFollowUps:
		return len(st.ScheduledFollowUps)
	case TabConversations:
		return len(st.Conversations)
	}
	return 0
}

func (m *Model) clampSelection() {
	if n := m.rowCount(); m.selectedRow >= n {
		m.selectedRow = max(0, n-1)
	}
}

func (m Model) renderListHelp() string {
	help := []string{"↑/↓: Navigate", "Tab: Switch tabs", "Enter: Open"}
	switch m.tab {
	case TabLeads:
		help = append(help, "n: Library lead", "a: Add", "f: Draft", "s: Schedule 1 day", "t: Text", "d: Delete")
	case TabDeals:
		help = append(help, "d: Archive")
	case TabFollowUps:
		help = append(help, "x: Send now", "z: Snooze 1 day", "c: Cancel")
	}
	help = append(help, "g: Dashboard", "r: Reset", "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.selectedRow = 0
	case "shift+tab":
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.selectedRow = 0
	case "enter":
		m.openSelected()
	case "g":
		m.viewMode = ViewDashboard
	case "r":
		m.store.ResetDemoData()
		m.selectedRow = 0
		m.status = "Sample workspace reset"
	case "n":
		if m.tab == TabLeads && m.editable() {
			if lead, ok := m.store.AddLeadFromLibrary(); ok {
				m.selectedRow = 0
				m.status = fmt.Sprintf("Added %s from the library", lead.Name)
			}
		}
	case "a":
		if m.tab == TabLeads && m.editable() {
			m.initNewLeadForm()
			m.viewMode = ViewNewLead
		}
	case "f":
		m.draftFollowUp()
	case "s":
		m.scheduleFollowUp()
	case "t":
		m.sendQuickText()
	case "d":
		if (m.tab == TabLeads || m.tab == TabDeals) && m.editable() {
			if id := m.selectedItemID(); id != "" {
				m.selectedID = id
				m.viewMode = ViewConfirmDelete
			}
		}
	case "x", "z", "c":
		m.followUpAction(msg.String())
	}
	return m, nil
}

func (m Model) selectedItemID() string {
	st := m.store.Snapshot()
	i := m.selectedRow
	switch m.tab {
	case TabLeads:
		if i < len(st.Leads) {
			return st.Leads[i].ID
		}
	case TabDeals:
		if i < len(st.Deals) {
			return st.Deals[i].ID
		}
	case TabFollowUps:
		if i < len(st.ScheduledFollowUps) {
			return st.ScheduledFollowUps[i].ID
		}
	case TabConversations:
		if i < len(st.Conversations) {
			return st.Conversations[i].ID
		}
	}
	return ""
}

func (m *Model) openSelected() {
	id := m.selectedItemID()
	if id == "" || (m.tab != TabLeads && m.tab != TabConversations) {
		return
	}
	if m.tab == TabConversations && m.store.SampleMode() {
		m.store.OpenConversation(id)
	}
	m.selectedID = id
	m.viewMode = ViewDetail
}

func (m *Model) draftFollowUp() {
	if m.tab != TabLeads || !m.editable() {
		return
	}
	id := m.selectedItemID()
	if _, ok := m.store.PrepareFollowUp(id); !ok {
		return
	}
	m.selectedID = id
	m.viewMode = ViewDetail
}

func (m *Model) scheduleFollowUp() {
	if m.tab != TabLeads || !m.editable() {
		return
	}
	item, ok := m.followUps.Schedule(m.selectedItemID(), "1 day")
	if ok {
		m.status = fmt.Sprintf("Follow-up for %s scheduled in 1 day", item.LeadName)
	}
}

func (m *Model) sendQuickText() {
	if m.tab != TabLeads || !m.editable() {
		return
	}
	if _, ok := m.followUps.SendQuickText(m.selectedItemID()); ok {
		m.status = "Text sent"
	} else {
		m.status = "No conversation linked to this lead"
	}
}
