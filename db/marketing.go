// ABOUTME: Marketing content persistence for live mode
// ABOUTME: Create and list generated marketing content per user

package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/growthdesk/models"
)

func CreateMarketingContent(db *DB, c *models.MarketingContent) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	_, err := db.Exec(`
		INSERT INTO marketing_content (id, user_id, listing_details, content_type, generated_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.ListingDetails, c.ContentType, c.GeneratedText, c.CreatedAt)
	return err
}

// ListMarketingContent returns up to limit items, newest first. limit <= 0 means no limit.
func ListMarketingContent(db *DB, userID string, limit int) ([]*models.MarketingContent, error) {
	query := `
		SELECT id, user_id, listing_details, content_type, generated_text, created_at
		FROM marketing_content WHERE user_id = ? ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []*models.MarketingContent{}
	for rows.Next() {
		c := &models.MarketingContent{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.ListingDetails, &c.ContentType, &c.GeneratedText, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
