// ABOUTME: Demo workspace CLI commands
// ABOUTME: status, load, clear, reset and lead management over the persisted snapshot
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/viz"
)

// DemoStatusCommand prints a one-screen summary of the workspace.
func DemoStatusCommand(ws *Workspace, args []string) error {
	fs := ws.flags("demo status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st := ws.Store.Snapshot()
	stats := viz.GenerateDashboardStats(st, ws.Store.Clock().Now())

	mode := "live (empty workspace)"
	if st.SampleMode {
		mode = "sample"
	}
	ws.printf("Mode:          %s\n", mode)
	ws.printf("Leads:         %d (%d hot)\n", stats.TotalLeads, stats.HotLeads)
	ws.printf("Deals:         %d ($%d volume, $%d commission)\n", stats.TotalDeals, stats.ClosedVolume, stats.Commission)
	ws.printf("Follow-ups:    %d pending, %d overdue\n", stats.PendingFollowUps, stats.OverdueFollowUps)
	ws.printf("Unread convos: %d\n", stats.UnreadConversations)
	ws.printf("Documents:     %d processing\n", stats.ProcessingDocuments)
	if st.ActiveProperty != nil {
		ws.printf("Property:      %s\n", st.ActiveProperty.Title)
	}
	if st.Insight != "" {
		ws.printf("\n%s\n", st.Insight)
	}
	return nil
}

func DemoLoadCommand(ws *Workspace, _ []string) error {
	ws.Store.LoadSampleData()
	ws.printf("✓ Sample data loaded\n")
	return nil
}

func DemoClearCommand(ws *Workspace, _ []string) error {
	ws.Store.ClearSampleData()
	ws.printf("✓ Sample mode off; workspace is empty\n")
	return nil
}

func DemoResetCommand(ws *Workspace, _ []string) error {
	ws.Store.ResetDemoData()
	ws.printf("✓ Sample data reset\n")
	return nil
}

// DemoLeadsCommand lists pipeline leads.
func DemoLeadsCommand(ws *Workspace, args []string) error {
	fs := ws.flags("demo leads")
	stage := fs.String("stage", "", "Filter by stage")
	minScore := fs.Int("min-score", 0, "Only leads scoring at least this much")
	if err := fs.Parse(args); err != nil {
		return err
	}

	leads := ws.Store.Snapshot().Leads
	w := tabwriter.NewWriter(ws.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTAGE\tSCORE\tLOCATION\tBUDGET\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t--------\t------\t--")

	shown := 0
	for _, l := range leads {
		if *stage != "" && !strings.EqualFold(l.Stage, *stage) {
			continue
		}
		if l.Score < *minScore {
			continue
		}
		hot := ""
		if l.Score >= viz.HotLeadScore {
			hot = "🔥 "
		}
		_, _ = fmt.Fprintf(w, "%s%s\t%s\t%d\t%s\t%s\t%s\n", hot, l.Name, l.Stage, l.Score, l.Location, l.Budget, l.ID)
		shown++
	}
	_ = w.Flush()

	if shown == 0 {
		ws.printf("No leads found\n")
	}
	return nil
}

// DemoAddLeadCommand captures a lead, or pulls one from the library with --library.
func DemoAddLeadCommand(ws *Workspace, args []string) error {
	fs := ws.flags("demo add-lead")
	library := fs.Bool("library", false, "Add a random lead from the sample library")
	name := fs.String("name", "", "Lead name (required unless --library)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	source := fs.String("source", "", "Lead source")
	location := fs.String("location", "", "Search area")
	budget := fs.String("budget", "", "Budget")
	timeline := fs.String("timeline", "", "Purchase timeline")
	notes := fs.String("notes", "", "Notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ws.requireSampleMode(); err != nil {
		return err
	}

	if *library {
		lead, ok := ws.Store.AddLeadFromLibrary()
		if !ok {
			return fmt.Errorf("could not add a library lead")
		}
		ws.printf("✓ Added %s (%s, score %d)\n", lead.Name, lead.Stage, lead.Score)
		return nil
	}

	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("--name is required")
	}
	lead := ws.Store.CreateLead(demo.LeadInput{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Source:   *source,
		Location: *location,
		Budget:   *budget,
		Timeline: *timeline,
		Notes:    *notes,
	})
	ws.printf("✓ Created lead: %s (ID: %s, score %d)\n", lead.Name, lead.ID, lead.Score)
	return nil
}

func DemoDeleteLeadCommand(ws *Workspace, args []string) error {
	id, err := oneArg(ws.flags("demo delete-lead"), args, "demo delete-lead <id>")
	if err != nil {
		return err
	}
	if err := ws.requireSampleMode(); err != nil {
		return err
	}
	if !ws.Store.DeleteLead(id) {
		return fmt.Errorf("lead not found: %s", id)
	}
	ws.printf("✓ Deleted lead: %s\n", id)
	return nil
}

// DemoDraftCommand prepares and prints the follow-up draft for a lead.
func DemoDraftCommand(ws *Workspace, args []string) error {
	id, err := oneArg(ws.flags("demo draft"), args, "demo draft <lead-id>")
	if err != nil {
		return err
	}
	if err := ws.requireSampleMode(); err != nil {
		return err
	}
	draft, ok := ws.Store.PrepareFollowUp(id)
	if !ok {
		return fmt.Errorf("lead not found: %s", id)
	}
	ws.printf("%s\n", draft.Content)
	return nil
}
