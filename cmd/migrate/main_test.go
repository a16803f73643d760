package main

import (
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/db"
)

func legacyDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crm.db")
	sqlDB, err := sql.Open(db.DriverSQLite, path)
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	_, err = sqlDB.Exec(`
		CREATE TABLE companies (id TEXT PRIMARY KEY, name TEXT);
		CREATE TABLE contacts (id TEXT PRIMARY KEY, name TEXT, company_id TEXT);
		CREATE TABLE deals (id TEXT PRIMARY KEY, title TEXT, company_id TEXT, amount INTEGER);
	`)
	require.NoError(t, err)
	return path
}

func tablesAt(t *testing.T, path string) []string {
	t.Helper()
	database, err := openRaw(path, false)
	require.NoError(t, err)
	defer func() { _ = database.Close() }()
	tables, err := db.Tables(database)
	require.NoError(t, err)
	return tables
}

var quiet = log.New(io.Discard)

func TestMigrateDryRunChangesNothing(t *testing.T) {
	path := legacyDB(t)

	require.NoError(t, migrate(path, options{dryRun: true, backup: true}, quiet))
	assert.ElementsMatch(t, []string{"companies", "contacts", "deals"}, tablesAt(t, path))

	backups, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestMigrateRequiresForce(t *testing.T) {
	path := legacyDB(t)

	err := migrate(path, options{}, quiet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-force")
	assert.Contains(t, tablesAt(t, path), "companies")
}

func TestMigrateReplacesLegacySchema(t *testing.T) {
	path := legacyDB(t)

	require.NoError(t, migrate(path, options{backup: true, force: true}, quiet))
	assert.ElementsMatch(t, db.TableNames, tablesAt(t, path))

	backups, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	// The live deals table is kept on a second run.
	require.NoError(t, migrate(path, options{}, quiet))
	assert.ElementsMatch(t, db.TableNames, tablesAt(t, path))
}

func TestMigrateMissingFile(t *testing.T) {
	err := migrate(filepath.Join(t.TempDir(), "nope.db"), options{}, quiet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
