// ABOUTME: Lead record database operations
// ABOUTME: Create, list newest-first and partial update scoped to a user

package db

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/growthdesk/models"
)

const leadColumns = `id, user_id, name, email, phone, intent, budget, timeline, lead_score, summary, stage, created_at, updated_at`

func CreateLead(db *DB, lead *models.LeadRecord) error {
	lead.ID = uuid.NewString()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO leads (`+leadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID, lead.UserID, lead.Name, lead.Email, lead.Phone, lead.Intent, lead.Budget,
		lead.Timeline, lead.LeadScore, lead.Summary, lead.Stage, lead.CreatedAt, lead.UpdatedAt)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*models.LeadRecord, error) {
	lead := &models.LeadRecord{}
	var email, phone, intent, budget, timeline, summary, stage sql.NullString
	var score sql.NullInt64

	err := row.Scan(&lead.ID, &lead.UserID, &lead.Name, &email, &phone, &intent, &budget,
		&timeline, &score, &summary, &stage, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}

	lead.Email = nullString(email)
	lead.Phone = nullString(phone)
	lead.Intent = nullString(intent)
	lead.Budget = nullString(budget)
	lead.Timeline = nullString(timeline)
	lead.Summary = nullString(summary)
	lead.Stage = nullString(stage)
	if score.Valid {
		v := int(score.Int64)
		lead.LeadScore = &v
	}
	return lead, nil
}

func GetLead(db *DB, userID, id string) (*models.LeadRecord, error) {
	lead, err := scanLead(db.QueryRow(`
		SELECT `+leadColumns+` FROM leads WHERE user_id = ? AND id = ?
	`, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return lead, err
}

// ListLeads returns the user's leads, newest first.
func ListLeads(db *DB, userID string) ([]*models.LeadRecord, error) {
	rows, err := db.Query(`
		SELECT `+leadColumns+` FROM leads WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	leads := []*models.LeadRecord{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// LeadPatch holds the editable lead columns; nil fields are unchanged.
type LeadPatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Intent    *string `json:"intent,omitempty"`
	Budget    *string `json:"budget,omitempty"`
	Timeline  *string `json:"timeline,omitempty"`
	LeadScore *int    `json:"lead_score,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Stage     *string `json:"stage,omitempty"`
}

// UpdateLead applies a patch and returns the updated row, or ErrNotFound.
func UpdateLead(db *DB, userID, id string, p LeadPatch) (*models.LeadRecord, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.Intent != nil {
		add("intent", *p.Intent)
	}
	if p.Budget != nil {
		add("budget", *p.Budget)
	}
	if p.Timeline != nil {
		add("timeline", *p.Timeline)
	}
	if p.LeadScore != nil {
		add("lead_score", *p.LeadScore)
	}
	if p.Summary != nil {
		add("summary", *p.Summary)
	}
	if p.Stage != nil {
		add("stage", *p.Stage)
	}
	add("updated_at", time.Now().UTC())
	args = append(args, userID, id)

	res, err := db.Exec(`UPDATE leads SET `+strings.Join(sets, ", ")+` WHERE user_id = ? AND id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return GetLead(db, userID, id)
}
