// ABOUTME: AI endpoints for lead scoring, copywriting, insights and chat
// ABOUTME: Without an API key every endpoint answers with canned results
package web

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harperreed/growthdesk/ai"
	"github.com/harperreed/growthdesk/db"
	"github.com/harperreed/growthdesk/models"
	"github.com/harperreed/growthdesk/viz"
)

const chatHistoryLimit = 25

func (s *Server) aiRoutes(r chi.Router) {
	r.Post("/lead", s.handle(s.qualifyLead))
	r.Post("/lead/followup", s.handle(s.leadFollowUp))
	r.Post("/marketing", s.handle(s.generateMarketing))
	r.Post("/client", s.handle(s.clientMessage))
	r.Get("/insights", s.handle(s.insights))
	r.Post("/deal", s.handle(s.summarizeDeal))
	r.Post("/images", s.handle(s.generateImage))
	r.Post("/assistant", s.handle(s.assistantChat))
	r.With(s.requireDB).Post("/client-chat", s.handle(s.clientChat))
}

// aiFailure maps model errors onto 502s.
func aiFailure(err error) error {
	if errors.Is(err, ai.ErrEmptyResponse) || errors.Is(err, ai.ErrBadJSON) {
		return &APIError{Status: http.StatusBadGateway, Message: err.Error()}
	}
	return err
}

func strOrNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func firstNonEmpty(vals ...*string) *string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func (s *Server) qualifyLead(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		LeadData struct {
			Name     string  `json:"name"`
			Email    *string `json:"email,omitempty"`
			Phone    *string `json:"phone,omitempty"`
			Intent   *string `json:"intent,omitempty"`
			Budget   *string `json:"budget,omitempty"`
			Timeline *string `json:"timeline,omitempty"`
			Notes    *string `json:"notes,omitempty"`
		} `json:"leadData"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	in := req.LeadData
	v := &ValidationError{}
	v.required("leadData.name", in.Name, "Name is required")
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		v.add("leadData.email", "Invalid email")
	}
	if err := v.err(); err != nil {
		return err
	}

	res, err := s.ai.QualifyLead(r.Context(), in)
	if err != nil {
		return aiFailure(err)
	}

	var lead *models.LeadRecord
	if s.db != nil {
		if _, err := s.currentUser(); err != nil {
			return err
		}
		stage := res.Stage
		if stage == "" {
			stage = "engaged"
		}
		score := res.LeadScore
		lead = &models.LeadRecord{
			UserID:    models.DemoUserID,
			Name:      in.Name,
			Email:     strOrNil(in.Email),
			Phone:     strOrNil(in.Phone),
			Intent:    firstNonEmpty(&res.Intent, in.Intent),
			Budget:    firstNonEmpty(&res.Budget, in.Budget),
			Timeline:  firstNonEmpty(&res.Timeline, in.Timeline),
			LeadScore: &score,
			Summary:   &res.Summary,
			Stage:     &stage,
		}
		if err := db.CreateLead(s.db, lead); err != nil {
			return fmt.Errorf("failed to save lead: %w", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"lead": lead, "ai": res})
	return nil
}

func (s *Server) leadFollowUp(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Summary   string `json:"summary"`
		Stage     string `json:"stage"`
		AgentName string `json:"agentName"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if req.Stage == "" {
		req.Stage = "engaged"
	}
	if req.AgentName == "" {
		req.AgentName = "Agent"
	}
	msg, err := s.ai.LeadFollowUp(r.Context(), req.Summary, req.Stage, req.AgentName)
	if err != nil {
		return aiFailure(err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	return nil
}

func (s *Server) generateMarketing(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Type    string `json:"type"`
		Details string `json:"details"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	if _, ok := ai.MarketingTemplates[req.Type]; !ok {
		v.add("type", "Type must be instagramCaption, listingVideoScript or blogPost")
	}
	if err := v.err(); err != nil {
		return err
	}

	text, err := s.ai.Marketing(r.Context(), req.Type, req.Details)
	if err != nil {
		return aiFailure(err)
	}

	content := &models.MarketingContent{
		UserID:         models.DemoUserID,
		ListingDetails: req.Details,
		ContentType:    req.Type,
		GeneratedText:  text,
	}
	if s.db != nil {
		if _, err := s.currentUser(); err != nil {
			return err
		}
		if err := db.CreateMarketingContent(s.db, content); err != nil {
			return fmt.Errorf("failed to store marketing content: %w", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": content})
	return nil
}

func (s *Server) clientMessage(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		ClientName string `json:"clientName"`
		Stage      string `json:"stage"`
		AgentName  string `json:"agentName"`
		Type       string `json:"type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	if _, ok := ai.ClientTemplates[req.Type]; !ok {
		v.add("type", "Type must be message, reviewRequest or referralFollowup")
	}
	if err := v.err(); err != nil {
		return err
	}
	if req.AgentName == "" {
		req.AgentName = "Agent"
	}
	msg, err := s.ai.ClientMessage(r.Context(), req.Type, req.ClientName, req.Stage, req.AgentName)
	if err != nil {
		return aiFailure(err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	return nil
}

// Metrics feed the daily briefing.
type Metrics struct {
	TotalLeads         int `json:"totalLeads"`
	HotLeads           int `json:"hotLeads"`
	ActiveDeals        int `json:"activeDeals"`
	MarketingAssets    int `json:"marketingAssets"`
	TasksDue           int `json:"tasksDue"`
	ClientSatisfaction int `json:"clientSatisfaction"`
}

func satisfaction(clients int) int {
	return min(98, 78+clients*2)
}

// liveMetrics reads the relational tables. Failed queries count as empty.
func (s *Server) liveMetrics() (Metrics, map[string]any) {
	var m Metrics
	sample := map[string]any{}

	leads, err := db.ListLeads(s.db, models.DemoUserID)
	if err != nil {
		s.logger.Warn("insights: leads query failed, using empty data", "err", err)
	}
	m.TotalLeads = len(leads)
	for _, l := range leads {
		if l.LeadScore != nil && *l.LeadScore >= viz.HotLeadScore {
			m.HotLeads++
		}
	}

	deals, err := db.ListDeals(s.db, models.DemoUserID)
	if err != nil {
		s.logger.Warn("insights: deals query failed, using empty data", "err", err)
	}
	m.ActiveDeals = len(deals)
	for _, d := range deals {
		for _, t := range d.NextTasks {
			if t.Priority == "high" {
				m.TasksDue++
			}
		}
	}

	marketing, err := db.ListMarketingContent(s.db, models.DemoUserID, 0)
	if err != nil {
		s.logger.Warn("insights: marketing query failed, using empty data", "err", err)
	}
	m.MarketingAssets = len(marketing)

	clients, err := db.ListClients(s.db, models.DemoUserID)
	if err != nil {
		s.logger.Warn("insights: clients query failed, using empty data", "err", err)
	}
	m.ClientSatisfaction = satisfaction(len(clients))

	sample["sampleLeads"] = leads[:min(5, len(leads))]
	sample["sampleDeals"] = deals[:min(5, len(deals))]
	return m, sample
}

// demoMetrics derives the same numbers from the demo workspace.
func (s *Server) demoMetrics() (Metrics, map[string]any) {
	st := s.store.Snapshot()
	stats := viz.GenerateDashboardStats(st, s.store.Clock().Now())
	m := Metrics{
		TotalLeads:         stats.TotalLeads,
		HotLeads:           stats.HotLeads,
		ActiveDeals:        stats.TotalDeals,
		MarketingAssets:    stats.MarketingAssets,
		TasksDue:           stats.PendingFollowUps,
		ClientSatisfaction: satisfaction(len(st.Conversations)),
	}
	return m, map[string]any{
		"sampleLeads": st.Leads[:min(5, len(st.Leads))],
		"sampleDeals": st.Deals[:min(5, len(st.Deals))],
	}
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) error {
	var metrics Metrics
	var sample map[string]any
	if s.db != nil {
		metrics, sample = s.liveMetrics()
	} else {
		metrics, sample = s.demoMetrics()
	}
	sample["metrics"] = metrics

	summary, err := s.ai.DailyBriefing(r.Context(), sample)
	if err != nil {
		return aiFailure(err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary, "metrics": metrics})
	return nil
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

func (s *Server) summarizeDeal(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Text    string  `json:"text"`
		FileURL *string `json:"fileUrl"`
		Buyer   *string `json:"buyer"`
		Seller  *string `json:"seller"`
		Price   *string `json:"price"`
		Address *string `json:"address"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("text", req.Text, "Contract text is required")
	if err := v.err(); err != nil {
		return err
	}

	res, err := s.ai.SummarizeContract(r.Context(), req.Text)
	if err != nil {
		return aiFailure(err)
	}

	var deal *models.DealRecord
	if s.db != nil {
		if _, err := s.currentUser(); err != nil {
			return err
		}
		tasks := make([]models.DealTask, 0, len(res.Tasks))
		for _, t := range res.Tasks {
			tasks = append(tasks, models.DealTask(t))
		}
		summary := res.Summary
		deal = &models.DealRecord{
			UserID:            models.DemoUserID,
			FileURL:           strOrNil(req.FileURL),
			Buyer:             strOrNil(req.Buyer),
			Seller:            strOrNil(req.Seller),
			Address:           strOrNil(req.Address),
			MissingSignatures: res.MissingSignatures,
			Summary:           &summary,
			NextTasks:         tasks,
		}
		if req.Price != nil {
			if p, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(*req.Price, ""), 64); err == nil {
				deal.Price = &p
			}
		}
		if err := db.CreateDeal(s.db, deal); err != nil {
			return fmt.Errorf("failed to store deal record: %w", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deal":              deal,
		"summary":           res.Summary,
		"missingSignatures": res.MissingSignatures,
		"tasks":             res.Tasks,
	})
	return nil
}

func (s *Server) generateImage(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		PropertyDetails ai.PropertyDetails `json:"propertyDetails"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	url, err := s.ai.GenerateImage(r.Context(), req.PropertyDetails)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
	return nil
}

// saveMessage stores a chat turn when a database is configured. Failures are
// logged and ignored so chat keeps working without storage.
func (s *Server) saveMessage(clientID *string, sender, content string) {
	if s.db == nil {
		return
	}
	if _, err := s.currentUser(); err != nil {
		s.logger.Warn("failed to persist message", "err", err)
		return
	}
	msg := &models.MessageRecord{UserID: models.DemoUserID, ClientID: clientID, Sender: sender, Content: content}
	if err := db.CreateMessage(s.db, msg); err != nil {
		s.logger.Warn("failed to persist message", "sender", sender, "err", err)
	}
}

func (s *Server) history(clientID *string) []*models.MessageRecord {
	if s.db == nil {
		return nil
	}
	msgs, err := db.ListMessages(s.db, models.DemoUserID, clientID, chatHistoryLimit)
	if err != nil {
		s.logger.Warn("failed to load history, continuing without it", "err", err)
		return nil
	}
	return msgs
}

// streamText relays the completion as plain text chunks and returns the full reply.
func (s *Server) streamText(w http.ResponseWriter, r *http.Request, msgs []ai.Message, temperature float32) (string, error) {
	flusher, _ := w.(http.Flusher)
	started := false
	full, err := s.ai.Stream(r.Context(), msgs, temperature, func(chunk string) error {
		if !started {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil && !started {
		return "", err
	}
	if err != nil {
		s.logger.Error("stream error", "path", r.URL.Path, "err", err)
	}
	if !started {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
	}
	return strings.TrimSpace(full), nil
}

func (s *Server) assistantChat(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("message", req.Message, "Message is required")
	if err := v.err(); err != nil {
		return err
	}

	history := s.history(nil)
	s.saveMessage(nil, models.RecordSenderAgent, req.Message)

	if !s.ai.Configured() {
		s.saveMessage(nil, models.RecordSenderAI, ai.FallbackAssistant)
		writeJSON(w, http.StatusOK, map[string]string{"message": ai.FallbackAssistant})
		return nil
	}

	msgs := []ai.Message{{Role: ai.RoleSystem, Content: ai.SystemIdentity}}
	for _, m := range history {
		role := ai.RoleUser
		if m.Sender == models.RecordSenderAI {
			role = ai.RoleAssistant
		}
		msgs = append(msgs, ai.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: req.Message})

	full, err := s.streamText(w, r, msgs, ai.DefaultTemperature)
	if err != nil {
		return err
	}
	if full != "" {
		s.saveMessage(nil, models.RecordSenderAI, full)
	}
	return nil
}

// clientChat lets the model role-play the client; its replies are stored as
// client messages.
func (s *Server) clientChat(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		ClientID string `json:"clientId"`
		Message  string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("clientId", req.ClientID, "Client ID is required")
	v.required("message", req.Message, "Message is required")
	if err := v.err(); err != nil {
		return err
	}

	client, err := db.GetClient(s.db, models.DemoUserID, req.ClientID)
	if err != nil {
		return fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return notFound("client", req.ClientID)
	}

	clientID := &client.ID
	history := s.history(clientID)
	s.saveMessage(clientID, models.RecordSenderAgent, req.Message)

	if !s.ai.Configured() {
		s.saveMessage(clientID, models.RecordSenderClient, ai.FallbackAssistant)
		writeJSON(w, http.StatusOK, map[string]string{"message": ai.FallbackAssistant})
		return nil
	}

	stage := ""
	if client.Stage != nil {
		stage = *client.Stage
	}
	msgs := []ai.Message{{Role: ai.RoleSystem, Content: ai.ClientPersona(client.Name, stage)}}
	for _, m := range history {
		role := ai.RoleUser
		if m.Sender == models.RecordSenderClient || m.Sender == models.RecordSenderAI {
			role = ai.RoleAssistant
		}
		msgs = append(msgs, ai.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: req.Message})

	full, err := s.streamText(w, r, msgs, 0.7)
	if err != nil {
		return err
	}
	if full != "" {
		s.saveMessage(clientID, models.RecordSenderClient, full)
	}
	return nil
}
