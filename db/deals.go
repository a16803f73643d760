// ABOUTME: Deal record database operations
// ABOUTME: Signature and task lists are stored as JSON text columns

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/growthdesk/models"
)

func CreateDeal(db *DB, deal *models.DealRecord) error {
	deal.ID = uuid.NewString()
	deal.CreatedAt = time.Now().UTC()
	if deal.MissingSignatures == nil {
		deal.MissingSignatures = []string{}
	}
	if deal.NextTasks == nil {
		deal.NextTasks = []models.DealTask{}
	}

	sigs, err := json.Marshal(deal.MissingSignatures)
	if err != nil {
		return fmt.Errorf("failed to encode signatures: %w", err)
	}
	tasks, err := json.Marshal(deal.NextTasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO deals (id, user_id, file_url, buyer, seller, price, address, missing_signatures, summary, next_tasks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, deal.ID, deal.UserID, deal.FileURL, deal.Buyer, deal.Seller, deal.Price, deal.Address,
		string(sigs), deal.Summary, string(tasks), deal.CreatedAt)
	return err
}

// ListDeals returns the user's deals, newest first.
func ListDeals(db *DB, userID string) ([]*models.DealRecord, error) {
	rows, err := db.Query(`
		SELECT id, user_id, file_url, buyer, seller, price, address, missing_signatures, summary, next_tasks, created_at
		FROM deals WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	deals := []*models.DealRecord{}
	for rows.Next() {
		deal := &models.DealRecord{}
		var fileURL, buyer, seller, address, summary sql.NullString
		var price sql.NullFloat64
		var sigs, tasks string

		if err := rows.Scan(&deal.ID, &deal.UserID, &fileURL, &buyer, &seller, &price, &address,
			&sigs, &summary, &tasks, &deal.CreatedAt); err != nil {
			return nil, err
		}

		deal.FileURL = nullString(fileURL)
		deal.Buyer = nullString(buyer)
		deal.Seller = nullString(seller)
		deal.Address = nullString(address)
		deal.Summary = nullString(summary)
		if price.Valid {
			p := price.Float64
			deal.Price = &p
		}
		if err := json.Unmarshal([]byte(sigs), &deal.MissingSignatures); err != nil {
			return nil, fmt.Errorf("deal %s: bad missing_signatures: %w", deal.ID, err)
		}
		if err := json.Unmarshal([]byte(tasks), &deal.NextTasks); err != nil {
			return nil, fmt.Errorf("deal %s: bad next_tasks: %w", deal.ID, err)
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}
