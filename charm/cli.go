// ABOUTME: CLI commands for syncing demo snapshots through Charm
// ABOUTME: SSH key auth means there is nothing to log in to

package charm

import (
	"flag"
	"fmt"
	"io"
)

// SyncNowCommand pushes and pulls snapshots immediately.
func SyncNowCommand(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := Shared()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	if *verbose {
		_, _ = fmt.Fprintf(out, "Syncing with %s...\n", c.Config().Host)
	}
	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	_, _ = fmt.Fprintln(out, "✓ Synced")
	return nil
}

// SyncStatusCommand prints the server, auto-sync flag and link status.
func SyncStatusCommand(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := Shared()
	if err != nil {
		writeStatus(out, cfg, nil)
		return nil //nolint:nilerr // an unreachable server is a status, not a failure
	}
	writeStatus(out, cfg, c)
	return nil
}

func writeStatus(out io.Writer, cfg *Config, c *Client) {
	_, _ = fmt.Fprintln(out, "Charm Sync Status")
	_, _ = fmt.Fprintln(out, "─────────────────")
	_, _ = fmt.Fprintf(out, "Server:    %s\n", cfg.Host)
	_, _ = fmt.Fprintf(out, "Auto-sync: %v\n", cfg.AutoSync)

	if c == nil {
		_, _ = fmt.Fprintln(out, "\nStatus: Not connected")
		return
	}

	if c.IsConnected() {
		_, _ = fmt.Fprintln(out, "\nStatus: Connected to Charm Cloud")
		if id, err := c.ID(); err == nil {
			_, _ = fmt.Fprintf(out, "ID:        %s\n", id)
		}
	} else {
		_, _ = fmt.Fprintln(out, "\nStatus: Offline (snapshots stay local until the next sync)")
	}

	if keys, err := c.Keys(); err == nil {
		_, _ = fmt.Fprintf(out, "Keys:      %d\n", len(keys))
	}
}

// SyncAutoCommand toggles sync-after-write.
func SyncAutoCommand(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync auto", flag.ContinueOnError)
	enable := fs.Bool("enable", false, "Enable auto-sync")
	disable := fs.Bool("disable", false, "Disable auto-sync")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *enable == *disable {
		return fmt.Errorf("usage: growthdesk sync auto --enable|--disable")
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.AutoSync = *enable
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	state := "disabled"
	if cfg.AutoSync {
		state = "enabled"
	}
	_, _ = fmt.Fprintf(out, "✓ Auto-sync %s\n", state)
	return nil
}

// SyncWipeCommand deletes every stored snapshot. It needs --confirm.
func SyncWipeCommand(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sync wipe", flag.ContinueOnError)
	confirm := fs.Bool("confirm", false, "Confirm data wipe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*confirm {
		writeWipeWarning(out)
		return nil
	}

	c, err := Shared()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	return wipe(out, c)
}

func writeWipeWarning(out io.Writer) {
	_, _ = fmt.Fprintln(out, "WARNING: This will delete ALL stored snapshots!")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "To confirm, run:")
	_, _ = fmt.Fprintln(out, "  growthdesk sync wipe --confirm")
}

func wipe(out io.Writer, c *Client) error {
	n, err := c.Wipe()
	if err != nil {
		return fmt.Errorf("failed to wipe KV store: %w", err)
	}
	_, _ = fmt.Fprintf(out, "✓ Wiped %d key(s)\n", n)
	_, _ = fmt.Fprintln(out, "The next run starts from the sample workspace.")
	return nil
}
