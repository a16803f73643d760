package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

func newTestModel(t *testing.T) (Model, *demo.Store, *demo.FakeClock) {
	t.Helper()
	clock := demo.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	store := demo.NewStore(demo.Options{Clock: clock, Random: demo.NewSequenceRandom(5)})
	m := NewModel(store, demo.NewFollowUps(store), demo.NewSimulator(store))
	t.Cleanup(m.Close)
	return m, store, clock
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestListViewShowsLeads(t *testing.T) {
	m, _, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "GROWTHDESK")
	assert.Contains(t, view, "Avery Collins")
	assert.Contains(t, view, "n: Library lead")
}

func TestTabCycling(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabDeals, m.tab)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabConversations, m.tab)
}

func TestAddLibraryLead(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(t, m, keys("n"))
	assert.Len(t, store.Snapshot().Leads, 5)
	assert.Contains(t, m.status, "from the library")
}

func TestNewLeadForm(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(t, m, keys("a"))
	require.Equal(t, ViewNewLead, m.viewMode)

	// q is text inside the form, not quit.
	m = press(t, m, keys("Quinn Harper"))
	assert.Equal(t, "Quinn Harper", m.formInputs[fieldName].Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, keys("quinn@example.com"))
	assert.Equal(t, "quinn@example.com", m.formInputs[fieldEmail].Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewList, m.viewMode)

	leads := store.Snapshot().Leads
	require.Len(t, leads, 5)
	assert.Equal(t, "Quinn Harper", leads[0].Name)
	assert.Equal(t, "quinn@example.com", leads[0].Email)
	assert.Equal(t, models.StageDiscovery, leads[0].Stage)
}

func TestNewLeadFormRequiresName(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(t, m, keys("a"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewNewLead, m.viewMode)
	assert.Equal(t, "Name is required", m.status)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.viewMode)
	assert.Len(t, store.Snapshot().Leads, 4)
}

func TestDeleteLeadConfirm(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(t, m, keys("d"))
	require.Equal(t, ViewConfirmDelete, m.viewMode)
	assert.Contains(t, m.View(), "Avery Collins")

	m = press(t, m, keys("n"))
	assert.Equal(t, ViewList, m.viewMode)
	assert.Len(t, store.Snapshot().Leads, 4)

	m = press(t, m, keys("d"), keys("y"))
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, "Deleted Avery Collins", m.status)
	_, ok := store.GetLead("lead-1")
	assert.False(t, ok)
}

func TestArchiveDeal(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, keys("d"), keys("y"))
	assert.Len(t, store.Snapshot().Deals, 2)
	assert.Contains(t, m.status, "Archived")
}

func TestScheduleAndCancelFollowUp(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(t, m, keys("s"))
	require.Len(t, store.Snapshot().ScheduledFollowUps, 1)
	assert.Contains(t, m.status, "scheduled in 1 day")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, TabFollowUps, m.tab)
	assert.Contains(t, m.View(), "in 24h 0m")

	m = press(t, m, keys("c"))
	assert.Equal(t, "Follow-up cancelled", m.status)
	assert.Empty(t, store.Snapshot().ScheduledFollowUps)
}

func TestDraftOpensLeadDetail(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, keys("f"))
	require.Equal(t, ViewDetail, m.viewMode)
	assert.Contains(t, m.View(), "Draft follow-up")
	assert.Contains(t, m.View(), "Hi Avery")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.viewMode)
}

func TestConversationReply(t *testing.T) {
	m, store, clock := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewDetail, m.viewMode)
	assert.Equal(t, "conv-1", m.selectedID)

	before := len(store.Snapshot().Conversations[0].Messages)
	m = press(t, m, keys("m"))
	assert.Contains(t, m.status, "Message sent")

	clock.Advance(demo.TypingDelay)
	conv := store.Snapshot().Conversations[0]
	require.Len(t, conv.Messages, before+2)
	assert.Equal(t, models.SenderClient, conv.Messages[before+1].Sender)
	assert.True(t, conv.Unread)
}

func TestLiveModeRefusesEdits(t *testing.T) {
	m, store, _ := newTestModel(t)
	store.ClearSampleData()

	m = press(t, m, keys("n"))
	assert.Contains(t, m.status, "Sample mode is off")
	assert.Contains(t, m.View(), "(live, empty)")

	m = press(t, m, keys("r"))
	assert.True(t, store.SampleMode())
	assert.Len(t, store.Snapshot().Leads, 4)
}

func TestDashboardView(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, keys("g"))
	require.Equal(t, ViewDashboard, m.viewMode)
	assert.Contains(t, m.View(), "GROWTHDESK DASHBOARD")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.viewMode)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
