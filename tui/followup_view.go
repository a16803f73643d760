// ABOUTME: TUI view for scheduled follow-ups
// ABOUTME: Shows countdowns and handles send, snooze and cancel
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

func (m Model) followUpRows() ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Lead", Width: 24},
		{Title: "Due", Width: 14},
		{Title: "Status", Width: 10},
		{Title: "Message", Width: 40},
	}

	now := m.store.Clock().Now()
	var rows []table.Row
	for _, f := range m.store.Snapshot().ScheduledFollowUps {
		cd := demo.CountdownFor(f, now)
		indicator := "🟢"
		switch {
		case f.Status == models.FollowUpSent:
			indicator = "✓"
		case cd.Overdue:
			indicator = "🔴"
		case cd.Hours < 4:
			indicator = "🟡"
		}
		due := cd.String()
		if f.Status == models.FollowUpSent {
			due = "sent"
		}
		rows = append(rows, table.Row{indicator, f.LeadName, due, f.Status, truncate(f.Message, 40)})
	}
	return columns, rows
}

func (m *Model) followUpAction(key string) {
	if m.tab != TabFollowUps || !m.editable() {
		return
	}
	id := m.selectedItemID()
	if id == "" {
		return
	}

	var ok bool
	var verb string
	switch key {
	case "x":
		ok, verb = m.followUps.SendNow(id), "sent"
	case "z":
		ok, verb = m.followUps.Snooze(id, "1 day"), "snoozed 1 day"
	case "c":
		ok, verb = m.followUps.Cancel(id), "cancelled"
		m.clampSelection()
	}
	if ok {
		m.status = fmt.Sprintf("Follow-up %s", verb)
	} else {
		m.status = "That follow-up was already sent"
	}
}
