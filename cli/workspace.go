// ABOUTME: Shared collaborators for the demo workspace subcommands
// ABOUTME: Bundles the store, follow-up scheduler, simulator and output writer
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/harperreed/growthdesk/demo"
)

// Workspace is what every demo subcommand operates on. Out defaults to stdout.
type Workspace struct {
	Store     *demo.Store
	FollowUps *demo.FollowUps
	Simulator *demo.Simulator
	Out       io.Writer
}

// NewWorkspace wires the follow-up scheduler and simulator to store.
func NewWorkspace(store *demo.Store) *Workspace {
	return &Workspace{
		Store:     store,
		FollowUps: demo.NewFollowUps(store),
		Simulator: demo.NewSimulator(store),
		Out:       os.Stdout,
	}
}

func (ws *Workspace) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ws.Out, format, args...)
}

func (ws *Workspace) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(ws.Out)
	return fs
}

func (ws *Workspace) requireSampleMode() error {
	if !ws.Store.SampleMode() {
		return fmt.Errorf("sample mode is off; run 'growthdesk demo load' first")
	}
	return nil
}

// oneArg parses flags and returns the single positional argument.
func oneArg(fs *flag.FlagSet, args []string, usage string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return fs.Arg(0), nil
}
