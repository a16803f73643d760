package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

var start = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func seededStore() (*demo.Store, *demo.FakeClock) {
	clock := demo.NewFakeClock(start)
	return demo.NewStore(demo.Options{Clock: clock, Random: demo.NewSequenceRandom(5)}), clock
}

func TestGenerateDashboardStatsFromSeed(t *testing.T) {
	store, _ := seededStore()
	stats := GenerateDashboardStats(store.Snapshot(), start)

	assert.True(t, stats.SampleMode)
	assert.Equal(t, 4, stats.TotalLeads)
	assert.Equal(t, 3, stats.HotLeads)
	assert.Equal(t, 3, stats.TotalDeals)
	assert.Equal(t, int64(7925000), stats.ClosedVolume)
	assert.Equal(t, int64(237750), stats.Commission)
	assert.Equal(t, 2, stats.UnreadConversations)
	assert.Equal(t, 1, stats.ProcessingDocuments)
	assert.Equal(t, 4, stats.MarketingAssets)

	touring := stats.PipelineByStage[models.StageTouring]
	assert.Equal(t, 1, touring.Count)
	assert.Equal(t, 92, touring.AvgScore)
}

func TestDashboardFollowUpCountdowns(t *testing.T) {
	store, clock := seededStore()
	followUps := demo.NewFollowUps(store)

	_, ok := followUps.Schedule("lead-2", "1 day")
	require.True(t, ok)
	_, ok = followUps.Schedule("lead-1", "1 hour")
	require.True(t, ok)

	clock.Advance(90 * time.Minute)
	stats := GenerateDashboardStats(store.Snapshot(), clock.Now())

	assert.Equal(t, 2, stats.PendingFollowUps)
	assert.Equal(t, 1, stats.OverdueFollowUps)
	require.Len(t, stats.Upcoming, 2)
	assert.Equal(t, "Avery Collins", stats.Upcoming[0].LeadName, "overdue sorts first")
	assert.Equal(t, "in 22h 30m", stats.Upcoming[1].Countdown.String())
}

func TestRenderDashboard(t *testing.T) {
	store, _ := seededStore()
	out := RenderDashboard(GenerateDashboardStats(store.Snapshot(), start))

	assert.Contains(t, out, "GROWTHDESK DASHBOARD")
	assert.Contains(t, out, "3 hot of 4 leads")
	assert.Contains(t, out, "$7925K volume")
	assert.Contains(t, out, "2 unread conversations")
	assert.Less(t, strings.Index(out, models.StageNewInquiry), strings.Index(out, models.StageNegotiating))

	store.ClearSampleData()
	empty := RenderDashboard(GenerateDashboardStats(store.Snapshot(), start))
	assert.Contains(t, empty, "Sample mode is off")
	assert.Contains(t, empty, "(no leads)")
	assert.NotContains(t, empty, "NEEDS ATTENTION")
}

func TestPipelineGraph(t *testing.T) {
	store, _ := seededStore()
	dot, err := PipelineGraph(store.Snapshot())
	require.NoError(t, err)

	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "Lead Pipeline")
	assert.Contains(t, dot, "Avery Collins")
	assert.Contains(t, dot, models.StageNegotiating)
}
