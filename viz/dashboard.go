// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Summarizes the demo workspace as an ASCII overview
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

// HotLeadScore is the score at which a lead counts as hot.
const HotLeadScore = 80

// Stages lists lead stages in pipeline order.
var Stages = []string{
	models.StageNewInquiry,
	models.StageDiscovery,
	models.StageTouring,
	models.StageNegotiating,
	models.StageClosed,
}

type DashboardStats struct {
	SampleMode bool

	PipelineByStage map[string]PipelineStageStats

	TotalLeads int
	HotLeads   int

	TotalDeals   int
	ClosedVolume int64 // whole dollars
	Commission   int64

	PendingFollowUps int
	OverdueFollowUps int

	UnreadConversations int
	ProcessingDocuments int
	MarketingAssets     int

	// Next follow-ups, soonest first
	Upcoming []UpcomingFollowUp
}

type PipelineStageStats struct {
	Stage    string
	Count    int
	AvgScore int
}

type UpcomingFollowUp struct {
	LeadName  string
	Countdown demo.Countdown
}

func GenerateDashboardStats(st demo.State, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		SampleMode:      st.SampleMode,
		PipelineByStage: make(map[string]PipelineStageStats),
		TotalLeads:      len(st.Leads),
		TotalDeals:      len(st.Deals),
		MarketingAssets: len(st.MarketingPosts),
	}

	scoreSums := make(map[string]int)
	for _, lead := range st.Leads {
		stage := lead.Stage
		if stage == "" {
			stage = "unknown"
		}
		ps := stats.PipelineByStage[stage]
		ps.Stage = stage
		ps.Count++
		scoreSums[stage] += lead.Score
		stats.PipelineByStage[stage] = ps

		if lead.Score >= HotLeadScore {
			stats.HotLeads++
		}
	}
	for stage, ps := range stats.PipelineByStage {
		ps.AvgScore = scoreSums[stage] / ps.Count
		stats.PipelineByStage[stage] = ps
	}

	for _, deal := range st.Deals {
		stats.ClosedVolume += deal.Price
		stats.Commission += deal.Commission
	}

	for _, item := range st.ScheduledFollowUps {
		if item.Status == models.FollowUpSent {
			continue
		}
		stats.PendingFollowUps++
		cd := demo.CountdownFor(item, now)
		if cd.Overdue {
			stats.OverdueFollowUps++
		}
		stats.Upcoming = append(stats.Upcoming, UpcomingFollowUp{LeadName: item.LeadName, Countdown: cd})
	}
	sortUpcoming(stats.Upcoming)
	if len(stats.Upcoming) > 5 {
		stats.Upcoming = stats.Upcoming[:5]
	}

	for _, c := range st.Conversations {
		if c.Unread {
			stats.UnreadConversations++
		}
	}
	for _, d := range st.Documents {
		if d.Status == models.DocumentProcessing {
			stats.ProcessingDocuments++
		}
	}

	return stats
}

func sortUpcoming(items []UpcomingFollowUp) {
	minutes := func(c demo.Countdown) int {
		if c.Overdue {
			return -1
		}
		return c.Hours*60 + c.Minutes
	}
	sort.SliceStable(items, func(i, j int) bool {
		return minutes(items[i].Countdown) < minutes(items[j].Countdown)
	})
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  GROWTHDESK DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	if !stats.SampleMode {
		out.WriteString("Sample mode is off. Load sample data to explore the workspace.\n\n")
	}

	out.WriteString("LEAD PIPELINE\n")
	renderPipeline(&out, stats.PipelineByStage)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  🔥 %d hot of %d leads  💼 %d deals ($%dK volume, $%dK commission)\n",
		stats.HotLeads, stats.TotalLeads, stats.TotalDeals, stats.ClosedVolume/1000, stats.Commission/1000))
	out.WriteString(fmt.Sprintf("  📣 %d marketing assets  📄 %d documents processing\n\n",
		stats.MarketingAssets, stats.ProcessingDocuments))

	if len(stats.Upcoming) > 0 {
		out.WriteString("FOLLOW-UPS\n")
		for _, u := range stats.Upcoming {
			out.WriteString(fmt.Sprintf("  ⏰ %-20s %s\n", u.LeadName, u.Countdown))
		}
		out.WriteString("\n")
	}

	if stats.OverdueFollowUps > 0 || stats.UnreadConversations > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		if stats.OverdueFollowUps > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d follow-ups overdue\n", stats.OverdueFollowUps))
		}
		if stats.UnreadConversations > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d unread conversations\n", stats.UnreadConversations))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline map[string]PipelineStageStats) {
	maxCount := 0
	for _, ps := range pipeline {
		if ps.Count > maxCount {
			maxCount = ps.Count
		}
	}
	if maxCount == 0 {
		out.WriteString("  (no leads)\n")
		return
	}

	for _, stage := range Stages {
		ps, ok := pipeline[stage]
		if !ok {
			continue
		}
		barLength := (ps.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-13s %s  %2d (avg %d)\n", stage, bar, ps.Count, ps.AvgScore))
	}
}
