// ABOUTME: Tests for live-mode schema creation
// ABOUTME: Uses in-memory SQLite for fast isolated tests
package db

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func TestInitSchema(t *testing.T) {
	sqlDB, err := sql.Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB, Driver: DriverSQLite}
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	for _, table := range TableNames {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	indexes := []string{
		"idx_leads_user_created",
		"idx_marketing_user_created",
		"idx_deals_user_created",
		"idx_clients_user_created",
		"idx_messages_client_created",
	}
	for _, idx := range indexes {
		var indexName string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&indexName)
		if err != nil {
			t.Errorf("Index %s not found: %v", idx, err)
		}
	}
}

func TestMessageSenderConstraint(t *testing.T) {
	sqlDB, err := sql.Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB, Driver: DriverSQLite}
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	now := time.Now()
	if _, err := db.Exec("INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)", "u1", "a@example.com", now); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	_, err = db.Exec("INSERT INTO messages (id, user_id, sender, content, created_at) VALUES (?, ?, ?, ?, ?)",
		"m1", "u1", "robot", "hello", now)
	if err == nil {
		t.Error("expected sender check constraint to reject 'robot'")
	}
}
