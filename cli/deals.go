// ABOUTME: Deal CLI commands
// ABOUTME: Lists closed deals and archives them from the workspace
package cli

import (
	"fmt"
	"text/tabwriter"
)

// DemoDealsCommand lists closed deals, or archives one with --archive.
func DemoDealsCommand(ws *Workspace, args []string) error {
	fs := ws.flags("demo deals")
	archive := fs.String("archive", "", "Archive the deal with this ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *archive != "" {
		if err := ws.requireSampleMode(); err != nil {
			return err
		}
		if !ws.Store.ArchiveDeal(*archive) {
			return fmt.Errorf("deal not found: %s", *archive)
		}
		ws.printf("✓ Archived deal: %s\n", *archive)
		return nil
	}

	deals := ws.Store.Snapshot().Deals
	if len(deals) == 0 {
		ws.printf("No deals found\n")
		return nil
	}

	w := tabwriter.NewWriter(ws.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROPERTY\tBUYER\tPRICE\tCOMMISSION\tCLOSED\tID")
	_, _ = fmt.Fprintln(w, "--------\t-----\t-----\t----------\t------\t--")

	var total, commission int64
	for _, d := range deals {
		_, _ = fmt.Fprintf(w, "%s\t%s\t$%d\t$%d\t%s\t%s\n", d.Property, d.Buyer, d.Price, d.Commission, d.ClosedOn, d.ID)
		total += d.Price
		commission += d.Commission
	}
	_ = w.Flush()

	ws.printf("\nTotal: %d deal(s) - $%d volume, $%d commission\n", len(deals), total, commission)
	return nil
}
