// ABOUTME: Migration utility for moving a database from the legacy CRM schema to the growthdesk live schema.
// ABOUTME: Provides dry-run and backup capabilities for safe schema migration.

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/growthdesk/db"
)

// legacyTables are left behind by the CRM this tool upgrades from, in drop order.
var legacyTables = []string{
	"interactions", "followup_queue", "contact_cadence",
	"notes", "relationships", "objects", "contacts", "companies",
	"sync_log", "sync_state",
}

type options struct {
	dryRun bool
	backup bool
	force  bool
}

func main() {
	dsn := flag.String("db", "", "SQLite path or postgres:// DSN (required)")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Copy the SQLite file before migrating")
	force := flag.Bool("force", false, "Drop legacy tables even though their data is lost")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate", ReportTimestamp: true})

	if *dsn == "" {
		logger.Fatal("-db flag is required")
	}

	opts := options{dryRun: *dryRun, backup: *backup, force: *force}
	if err := migrate(*dsn, opts, logger); err != nil {
		logger.Fatal("migration failed", "err", err)
	}
	logger.Info("migration completed successfully")
}

func migrate(dsn string, opts options, logger *log.Logger) error {
	postgres := db.IsPostgresDSN(dsn)
	if !postgres {
		if _, err := os.Stat(dsn); os.IsNotExist(err) {
			return fmt.Errorf("database file does not exist: %s", dsn)
		}
	}

	if opts.backup && !opts.dryRun && !postgres {
		backupPath := fmt.Sprintf("%s.backup.%s", dsn, time.Now().Format("20060102-150405"))
		if err := copyFile(dsn, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		logger.Info("backup created", "path", backupPath)
	}

	database, err := openRaw(dsn, postgres)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	tables, err := db.Tables(database)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	logger.Info("current tables", "tables", tables)

	var drop []string
	for _, table := range legacyTables {
		if slices.Contains(tables, table) {
			drop = append(drop, table)
		}
	}
	// The CRM also had a deals table, with different columns.
	if slices.Contains(tables, "deals") && !hasLiveDeals(database) {
		drop = append(drop, "deals")
	}

	if opts.dryRun {
		logger.Info("[DRY RUN] would perform the following actions")
		if len(drop) > 0 {
			logger.Info("[DRY RUN] drop legacy tables", "tables", drop)
		}
		var missing []string
		for _, table := range db.TableNames {
			if !slices.Contains(tables, table) || slices.Contains(drop, table) {
				missing = append(missing, table)
			}
		}
		if len(missing) > 0 {
			logger.Info("[DRY RUN] create tables", "tables", missing)
		} else {
			logger.Info("[DRY RUN] live tables already exist")
		}
		return nil
	}

	if len(drop) > 0 {
		if !opts.force {
			logger.Warn("migration will drop legacy tables and their data", "tables", drop)
			return fmt.Errorf("migration requires -force flag")
		}
		for _, table := range drop {
			if _, err := database.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
			logger.Info("dropped table", "table", table)
		}
	}

	if err := db.InitSchema(database); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info("live schema ready", "tables", db.TableNames)
	return nil
}

// openRaw connects without initializing the schema, which must wait until
// conflicting legacy tables are gone.
func openRaw(dsn string, postgres bool) (*db.DB, error) {
	driver := db.DriverSQLite
	if postgres {
		driver = db.DriverPostgres
	}
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &db.DB{DB: sqlDB, Driver: driver}, nil
}

func hasLiveDeals(database *db.DB) bool {
	rows, err := database.Query("SELECT missing_signatures FROM deals LIMIT 0")
	if err != nil {
		return false
	}
	_ = rows.Close()
	return true
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, input, 0600)
}
