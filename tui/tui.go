// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive full-screen view of the demo workspace with live updates from the store
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/growthdesk/demo"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewNewLead
	ViewDashboard
	ViewConfirmDelete
)

// Tab selects the collection shown in the list view.
type Tab int

const (
	TabLeads Tab = iota
	TabDeals
	TabFollowUps
	TabConversations
)

var tabNames = []string{"Leads", "Deals", "Follow-ups", "Conversations"}

// changedMsg is delivered whenever the store commits, including timer-driven
// commits such as simulated replies.
type changedMsg struct{}

// Model is the main bubbletea model
type Model struct {
	store     *demo.Store
	followUps *demo.FollowUps
	sim       *demo.Simulator

	changes     chan struct{}
	unsubscribe func()

	viewMode ViewMode
	tab      Tab

	selectedRow int
	selectedID  string

	formInputs []textinput.Model
	focusIndex int

	status string
	width  int
	height int
}

// NewModel subscribes to store changes; call Close when done.
func NewModel(store *demo.Store, followUps *demo.FollowUps, sim *demo.Simulator) Model {
	changes := make(chan struct{}, 1)
	unsubscribe := store.Subscribe(func(demo.Change) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	return Model{
		store:       store,
		followUps:   followUps,
		sim:         sim,
		changes:     changes,
		unsubscribe: unsubscribe,
		viewMode:    ViewList,
		tab:         TabLeads,
		width:       100,
		height:      24,
	}
}

// Close stops listening for store changes.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return changedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case changedMsg:
		m.clampSelection()
		return m, m.waitForChange()
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewNewLead:
		return m.renderNewLeadView()
	case ViewDashboard:
		return m.renderDashboardView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// The form needs every printable key, including q.
	if m.viewMode == ViewNewLead {
		return m.handleNewLeadKeys(msg)
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewDashboard:
		return m.handleDashboardKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}
	return m, nil
}

// editable reports whether the workspace accepts edits, setting a status line when not.
func (m *Model) editable() bool {
	if m.store.SampleMode() {
		return true
	}
	m.status = "Sample mode is off. Press r to reload the sample workspace."
	return false
}

// Run starts the full-screen program and blocks until the user quits.
func Run(store *demo.Store, followUps *demo.FollowUps, sim *demo.Simulator) error {
	m := NewModel(store, followUps, sim)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
