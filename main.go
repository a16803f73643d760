// ABOUTME: Entry point for the growthdesk CLI, web server, MCP server and TUI
// ABOUTME: Builds the shared demo workspace and routes to the requested command
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/harperreed/growthdesk/ai"
	"github.com/harperreed/growthdesk/charm"
	"github.com/harperreed/growthdesk/cli"
	"github.com/harperreed/growthdesk/config"
	"github.com/harperreed/growthdesk/db"
	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/persist"
	"github.com/harperreed/growthdesk/tui"
	"github.com/harperreed/growthdesk/web"
)

const version = "0.2.0"

type demoCommand func(ws *cli.Workspace, args []string) error

var demoCommands = map[string]demoCommand{
	"status":          cli.DemoStatusCommand,
	"load":            cli.DemoLoadCommand,
	"clear":           cli.DemoClearCommand,
	"reset":           cli.DemoResetCommand,
	"leads":           cli.DemoLeadsCommand,
	"add-lead":        cli.DemoAddLeadCommand,
	"delete-lead":     cli.DemoDeleteLeadCommand,
	"draft":           cli.DemoDraftCommand,
	"schedule":        cli.DemoScheduleCommand,
	"followups":       cli.DemoFollowUpsCommand,
	"send-followup":   cli.DemoSendFollowUpCommand,
	"cancel-followup": cli.DemoCancelFollowUpCommand,
	"deals":           cli.DemoDealsCommand,
	"pipeline":        cli.DemoPipelineCommand,
}

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbURL := flag.String("db", "", "Database path or postgres:// DSN for live mode")
	persistFlag := flag.String("persist", "", "Snapshot backend: charm, file or none")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("growthdesk version %s\n", version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		return
	}

	// stdout belongs to the MCP transport, so logs always go to stderr.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}
	if *persistFlag != "" {
		cfg.Persist = *persistFlag
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	command, commandArgs := args[0], args[1:]

	// sync talks to charm directly and needs no workspace.
	if command == "sync" {
		if err := cli.SyncCommand(os.Stdout, commandArgs); err != nil {
			logger.Fatal("sync failed", "err", err)
		}
		return
	}

	ws, err := openWorkspace(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open workspace", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "serve":
		database, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			// The demo workspace still works; live endpoints answer 503.
			logger.Warn("live database unavailable", "err", err)
		} else {
			defer func() { _ = database.Close() }()
		}
		deps := web.Deps{
			DB:     database,
			AI:     ai.NewClient(cfg.OpenAIKey, cfg.Model, "", logger),
			Logger: logger,
		}
		if err := cli.ServeCommand(ctx, ws, deps, cfg.Port, commandArgs); err != nil {
			logger.Fatal("server failed", "err", err)
		}

	case "mcp":
		if err := cli.MCPCommand(ctx, ws, logger); err != nil {
			logger.Fatal("MCP server failed", "err", err)
		}

	case "tui":
		if err := tui.Run(ws.Store, ws.FollowUps, ws.Simulator); err != nil {
			logger.Fatal("TUI failed", "err", err)
		}

	case "demo":
		if len(commandArgs) == 0 {
			fmt.Println("Error: demo requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		run, ok := demoCommands[commandArgs[0]]
		if !ok {
			fmt.Printf("Unknown demo command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}
		if err := run(ws, commandArgs[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openWorkspace restores the demo store from the configured snapshot backend.
func openWorkspace(cfg *config.Config, logger *log.Logger) (*cli.Workspace, error) {
	var persister persist.Store
	switch cfg.Persist {
	case config.PersistCharm:
		client, err := charm.Shared()
		if err != nil {
			return nil, err
		}
		persister = persist.NewKVStore(client)
	case config.PersistFile:
		files, err := persist.DefaultFileStore()
		if err != nil {
			return nil, err
		}
		persister = files
	case config.PersistNone:
		persister = persist.NewMemoryStore()
	default:
		return nil, fmt.Errorf("invalid persist backend %q (want charm, file or none)", cfg.Persist)
	}

	store := demo.NewStore(demo.Options{
		Persister:  persister,
		Logger:     logger.WithPrefix("demo"),
		StartEmpty: !cfg.SampleMode,
	})
	if err := store.Restore(); err != nil {
		return nil, fmt.Errorf("failed to restore snapshot: %w", err)
	}
	return cli.NewWorkspace(store), nil
}

func printUsage() {
	fmt.Printf(`growthdesk v%s - Real estate agent growth workspace

USAGE:
  growthdesk [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db <path|dsn>        Live database (default: ~/.local/share/growthdesk/growthdesk.db)
  --persist <backend>    Snapshot backend: charm, file or none (default: file)

COMMANDS:
  serve                  Start the web dashboard and JSON API
    --port <n>             Port to listen on (default: 8080)
  mcp                    Start MCP server on stdio for desktop agents
  tui                    Open the interactive terminal workspace
  demo                   Work with the demo workspace
  sync                   Charm cloud sync (now, status, auto --enable|--disable, wipe --confirm)

DEMO COMMANDS:
  growthdesk demo status                 Show mode and pipeline totals
  growthdesk demo load                   Load the sample workspace
  growthdesk demo clear                  Switch to an empty live workspace
  growthdesk demo reset                  Restore the original sample data

  growthdesk demo leads                  List leads
    --stage <stage>                        Filter by stage
    --min-score <n>                        Minimum lead score

  growthdesk demo add-lead               Add a lead
    --library                              Pull a random lead from the library
    --name <name>                          Lead name (required without --library)
    --email, --phone, --source, --location, --budget, --timeline, --notes

  growthdesk demo delete-lead <id>       Delete a lead
  growthdesk demo draft <lead-id>        Draft a follow-up for review

  growthdesk demo schedule [flags] <lead-id>   Schedule a follow-up
    --delay <label>                        1 hour, 4 hours, 1 day, 2 days, 3 days or 1 week
  growthdesk demo followups              List scheduled follow-ups
    --overdue-only                         Only show overdue follow-ups
  growthdesk demo send-followup <id>     Send a follow-up now
  growthdesk demo cancel-followup <id>   Cancel a follow-up

  growthdesk demo deals                  List closed deals
    --archive <id>                         Archive a deal
  growthdesk demo pipeline               Render the pipeline dashboard
    --graph                                Emit the stage graph as xdot instead
    --output <file>                        Write the graph to a file

ENVIRONMENT:
  OPENAI_API_KEY              Enables the AI endpoints (testing mode without it)
  GROWTHDESK_DATABASE_URL     Live database path or DSN
  GROWTHDESK_PERSIST          Snapshot backend
  GROWTHDESK_SAMPLE_MODE      Start with sample data (default: true)

EXAMPLES:
  # Serve the dashboard on port 3000
  growthdesk serve --port 3000

  # Schedule a follow-up for Avery in four hours
  growthdesk demo schedule --delay "4 hours" lead-1

`, version)
}
