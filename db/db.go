// ABOUTME: Database connection management for live mode
// ABOUTME: Opens SQLite (WAL, single writer) or Postgres depending on the DSN

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by updates that match no row.
var ErrNotFound = errors.New("record not found")

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB is a *sql.DB that rewrites ? placeholders for the Postgres driver.
type DB struct {
	*sql.DB
	Driver string
}

// pingAttempts and pingInterval bound the wait for a managed Postgres to come up.
var (
	pingAttempts = 10
	pingInterval = 2 * time.Second
)

// IsPostgresDSN reports whether dsn should be opened with lib/pq.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open picks the driver from the DSN and initializes the schema.
func Open(dsn string) (*DB, error) {
	if IsPostgresDSN(dsn) {
		return OpenPostgres(dsn)
	}
	return OpenDatabase(dsn)
}

// OpenDatabase opens (creating if needed) a SQLite file.
func OpenDatabase(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(DriverSQLite, path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// one connection avoids "database is locked"
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB, Driver: DriverSQLite}
	if err := InitSchema(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// OpenPostgres connects with retries and initializes the schema.
func OpenPostgres(dsn string) (*DB, error) {
	sqlDB, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < pingAttempts; i++ {
		if err = sqlDB.Ping(); err == nil {
			break
		}
		time.Sleep(pingInterval)
	}
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	db := &DB{DB: sqlDB, Driver: DriverPostgres}
	if err := InitSchema(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return db, nil
}

// Rebind converts ? placeholders to $1, $2... for Postgres.
func (d *DB) Rebind(query string) string {
	if d.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) Exec(query string, args ...any) (sql.Result, error) {
	return d.DB.Exec(d.Rebind(query), args...)
}

func (d *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return d.DB.Query(d.Rebind(query), args...)
}

func (d *DB) QueryRow(query string, args ...any) *sql.Row {
	return d.DB.QueryRow(d.Rebind(query), args...)
}

// Tables lists user tables in the connected database.
func Tables(db *DB) ([]string, error) {
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	if db.Driver == DriverPostgres {
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
