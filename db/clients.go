// ABOUTME: Client and message database operations
// ABOUTME: Messages hang off clients; a nil client id means the general inbox

package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/growthdesk/models"
)

const clientColumns = `id, user_id, name, deal_id, stage, last_message, next_action, created_at`

func CreateClient(db *DB, c *models.Client) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	_, err := db.Exec(`
		INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.Name, c.DealID, c.Stage, c.LastMessage, c.NextAction, c.CreatedAt)
	return err
}

func scanClient(row rowScanner) (*models.Client, error) {
	c := &models.Client{}
	var dealID, stage, lastMessage, nextAction sql.NullString
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &dealID, &stage, &lastMessage, &nextAction, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.DealID = nullString(dealID)
	c.Stage = nullString(stage)
	c.LastMessage = nullString(lastMessage)
	c.NextAction = nullString(nextAction)
	return c, nil
}

func GetClient(db *DB, userID, id string) (*models.Client, error) {
	c, err := scanClient(db.QueryRow(`
		SELECT `+clientColumns+` FROM clients WHERE user_id = ? AND id = ?
	`, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// ListClients returns the user's clients, newest first.
func ListClients(db *DB, userID string) ([]*models.Client, error) {
	rows, err := db.Query(`
		SELECT `+clientColumns+` FROM clients WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	clients := []*models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// CreateMessage stores a message and, for client threads, records it as the
// client's last message.
func CreateMessage(db *DB, m *models.MessageRecord) error {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()

	if _, err := db.Exec(`
		INSERT INTO messages (id, user_id, client_id, sender, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.UserID, m.ClientID, m.Sender, m.Content, m.CreatedAt); err != nil {
		return err
	}

	if m.ClientID != nil {
		_, err := db.Exec(`
			UPDATE clients SET last_message = ? WHERE user_id = ? AND id = ?
		`, m.Content, m.UserID, *m.ClientID)
		return err
	}
	return nil
}

// ListMessages returns the most recent messages in chronological order.
// A nil clientID lists messages that belong to no client.
func ListMessages(db *DB, userID string, clientID *string, limit int) ([]*models.MessageRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error
	if clientID != nil {
		rows, err = db.Query(`
			SELECT id, user_id, client_id, sender, content, created_at FROM messages
			WHERE user_id = ? AND client_id = ? ORDER BY created_at DESC LIMIT ?
		`, userID, *clientID, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, user_id, client_id, sender, content, created_at FROM messages
			WHERE user_id = ? AND client_id IS NULL ORDER BY created_at DESC LIMIT ?
		`, userID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var newestFirst []*models.MessageRecord
	for rows.Next() {
		m := &models.MessageRecord{}
		var cid sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &cid, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.ClientID = nullString(cid)
		newestFirst = append(newestFirst, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	msgs := make([]*models.MessageRecord, len(newestFirst))
	for i, m := range newestFirst {
		msgs[len(newestFirst)-1-i] = m
	}
	return msgs, nil
}
