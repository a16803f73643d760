// ABOUTME: Scheduled follow-up CLI commands
// ABOUTME: Commands for scheduling, listing, sending and cancelling follow-up texts
package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/growthdesk/demo"
)

// DemoScheduleCommand queues a follow-up text for a lead.
func DemoScheduleCommand(ws *Workspace, args []string) error {
	fs := ws.flags("demo schedule")
	delay := fs.String("delay", "1 day", "One of: "+strings.Join(demo.DelayLabels, ", "))
	id, err := oneArg(fs, args, `demo schedule [--delay "4 hours"] <lead-id>`)
	if err != nil {
		return err
	}
	if !slices.Contains(demo.DelayLabels, *delay) {
		return fmt.Errorf("invalid delay %q; use one of: %s", *delay, strings.Join(demo.DelayLabels, ", "))
	}
	if err := ws.requireSampleMode(); err != nil {
		return err
	}

	item, ok := ws.FollowUps.Schedule(id, *delay)
	if !ok {
		return fmt.Errorf("lead not found: %s", id)
	}
	ws.printf("✓ Follow-up for %s scheduled %s (ID: %s)\n",
		item.LeadName, demo.CountdownFor(item, ws.Store.Clock().Now()), item.ID)
	return nil
}

// DemoFollowUpsCommand lists scheduled follow-ups with their countdowns.
func DemoFollowUpsCommand(ws *Workspace, args []string) error {
	fs := ws.flags("demo followups")
	overdueOnly := fs.Bool("overdue-only", false, "Show only overdue follow-ups")
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := ws.Store.Clock().Now()
	items := ws.FollowUps.List()
	if len(items) == 0 {
		ws.printf("No follow-ups scheduled\n")
		return nil
	}

	w := tabwriter.NewWriter(ws.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LEAD\tDUE\tSTATUS\tDELAY\tID")
	_, _ = fmt.Fprintln(w, "----\t---\t------\t-----\t--")
	for _, item := range items {
		cd := demo.CountdownFor(item, now)
		if *overdueOnly && !cd.Overdue {
			continue
		}
		indicator := "🟢"
		if cd.Overdue {
			indicator = "🔴"
		} else if cd.Hours < 4 {
			indicator = "🟡"
		}
		_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n", indicator, item.LeadName, cd, item.Status, item.Delay, item.ID)
	}
	_ = w.Flush()
	return nil
}

func DemoSendFollowUpCommand(ws *Workspace, args []string) error {
	id, err := oneArg(ws.flags("demo send-followup"), args, "demo send-followup <id>")
	if err != nil {
		return err
	}
	if err := ws.requireSampleMode(); err != nil {
		return err
	}
	if !ws.FollowUps.SendNow(id) {
		return fmt.Errorf("no waiting follow-up with id %s", id)
	}
	ws.printf("✓ Sent follow-up: %s\n", id)
	return nil
}

func DemoCancelFollowUpCommand(ws *Workspace, args []string) error {
	id, err := oneArg(ws.flags("demo cancel-followup"), args, "demo cancel-followup <id>")
	if err != nil {
		return err
	}
	if err := ws.requireSampleMode(); err != nil {
		return err
	}
	if !ws.FollowUps.Cancel(id) {
		return fmt.Errorf("follow-up not found: %s", id)
	}
	ws.printf("✓ Cancelled follow-up: %s\n", id)
	return nil
}
