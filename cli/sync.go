// ABOUTME: Snapshot sync CLI commands
// ABOUTME: Routes growthdesk sync subcommands to the Charm client
package cli

import (
	"fmt"
	"io"

	"github.com/harperreed/growthdesk/charm"
)

// SyncCommand dispatches now, status, auto and wipe.
func SyncCommand(out io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: growthdesk sync <now|status|auto|wipe>")
	}
	switch args[0] {
	case "now":
		return charm.SyncNowCommand(out, args[1:])
	case "status":
		return charm.SyncStatusCommand(out, args[1:])
	case "auto":
		return charm.SyncAutoCommand(out, args[1:])
	case "wipe":
		return charm.SyncWipeCommand(out, args[1:])
	default:
		return fmt.Errorf("unknown sync command: %s", args[0])
	}
}
