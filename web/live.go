// ABOUTME: Live-mode JSON endpoints over the relational tables
// ABOUTME: Every request runs as the demo user
package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/harperreed/growthdesk/db"
	"github.com/harperreed/growthdesk/models"
)

func (s *Server) currentUser() (*models.User, error) {
	u, err := db.EnsureUser(s.db, models.DemoUserID, "demo@example.com")
	if err != nil {
		return nil, fmt.Errorf("ensure demo user: %w", err)
	}
	return u, nil
}

func (s *Server) listLeads(w http.ResponseWriter, _ *http.Request) error {
	leads, err := db.ListLeads(s.db, models.DemoUserID)
	if err != nil {
		return fmt.Errorf("failed to load leads: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
	return nil
}

func (s *Server) patchLead(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		ID string `json:"id"`
		db.LeadPatch
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("id", req.ID, "Lead ID is required")
	if err := v.err(); err != nil {
		return err
	}

	lead, err := db.UpdateLead(s.db, models.DemoUserID, req.ID, req.LeadPatch)
	if errors.Is(err, db.ErrNotFound) {
		return notFound("lead", req.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"lead": lead})
	return nil
}

func (s *Server) listDeals(w http.ResponseWriter, _ *http.Request) error {
	deals, err := db.ListDeals(s.db, models.DemoUserID)
	if err != nil {
		return fmt.Errorf("failed to load deals: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"deals": deals})
	return nil
}

func (s *Server) listClients(w http.ResponseWriter, _ *http.Request) error {
	clients, err := db.ListClients(s.db, models.DemoUserID)
	if err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
	return nil
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Name       string  `json:"name"`
		DealID     *string `json:"deal_id"`
		Stage      *string `json:"stage"`
		NextAction *string `json:"next_action"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("name", req.Name, "Name is required")
	if err := v.err(); err != nil {
		return err
	}
	if _, err := s.currentUser(); err != nil {
		return err
	}

	client := &models.Client{
		UserID:     models.DemoUserID,
		Name:       req.Name,
		DealID:     req.DealID,
		Stage:      req.Stage,
		NextAction: req.NextAction,
	}
	if err := db.CreateClient(s.db, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"client": client})
	return nil
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) error {
	var clientID *string
	if id := r.URL.Query().Get("clientId"); id != "" {
		clientID = &id
	}
	msgs, err := db.ListMessages(s.db, models.DemoUserID, clientID, 0)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
	return nil
}

func validSender(sender string) bool {
	switch sender {
	case models.RecordSenderAgent, models.RecordSenderAI, models.RecordSenderClient:
		return true
	}
	return false
}

func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		ClientID *string `json:"clientId"`
		Sender   string  `json:"sender"`
		Content  string  `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	if !validSender(req.Sender) {
		v.add("sender", "Sender must be agent, ai or client")
	}
	if err := v.err(); err != nil {
		return err
	}
	if _, err := s.currentUser(); err != nil {
		return err
	}

	msg := &models.MessageRecord{UserID: models.DemoUserID, ClientID: req.ClientID, Sender: req.Sender, Content: req.Content}
	if err := db.CreateMessage(s.db, msg); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
	return nil
}

func (s *Server) listMarketing(w http.ResponseWriter, r *http.Request) error {
	items, err := db.ListMarketingContent(s.db, models.DemoUserID, 0)
	if err != nil {
		return fmt.Errorf("failed to load marketing content: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": items})
	return nil
}

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) error {
	user, err := s.currentUser()
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": user})
	return nil
}

func (s *Server) patchSettings(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Name         *string `json:"name"`
		OpenAIAPIKey *string `json:"openaiApiKey"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if _, err := s.currentUser(); err != nil {
		return err
	}
	user, err := db.UpdateUserSettings(s.db, models.DemoUserID, db.UserSettings{Name: req.Name, OpenAIAPIKey: req.OpenAIAPIKey})
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": user})
	return nil
}
