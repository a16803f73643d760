// ABOUTME: User account and settings operations
// ABOUTME: Live mode runs every request as a single demo user

package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/growthdesk/models"
)

// EnsureUser creates the user row if it does not exist yet and returns it.
func EnsureUser(db *DB, id, email string) (*models.User, error) {
	user, err := GetUser(db, id)
	if err != nil || user != nil {
		return user, err
	}

	now := time.Now().UTC()
	if _, err := db.Exec(`
		INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)
	`, id, email, now); err != nil {
		return nil, err
	}
	return &models.User{ID: id, Email: email, CreatedAt: now}, nil
}

func GetUser(db *DB, id string) (*models.User, error) {
	user := &models.User{}
	var name, key sql.NullString

	err := db.QueryRow(`
		SELECT id, name, email, openai_api_key, created_at FROM users WHERE id = ?
	`, id).Scan(&user.ID, &name, &user.Email, &key, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.Name = nullString(name)
	user.OpenAIAPIKey = nullString(key)
	return user, nil
}

// UserSettings is a partial settings update; nil fields are unchanged and an
// empty string clears the column.
type UserSettings struct {
	Name         *string
	OpenAIAPIKey *string
}

func UpdateUserSettings(db *DB, id string, s UserSettings) (*models.User, error) {
	user, err := GetUser(db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if s.Name != nil {
		user.Name = emptyToNil(*s.Name)
	}
	if s.OpenAIAPIKey != nil {
		user.OpenAIAPIKey = emptyToNil(*s.OpenAIAPIKey)
	}

	_, err = db.Exec(`
		UPDATE users SET name = ?, openai_api_key = ? WHERE id = ?
	`, user.Name, user.OpenAIAPIKey, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
