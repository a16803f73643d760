// ABOUTME: Demo workspace API routes over the in-memory store
// ABOUTME: Mutations are refused with 409 while sample mode is off

package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harperreed/growthdesk/demo"
	"github.com/harperreed/growthdesk/models"
)

// DefaultFollowUpDelay is used when a schedule request names no delay.
const DefaultFollowUpDelay = "1 day"

var errSampleModeOff = &APIError{Status: http.StatusConflict, Message: "sample mode is off"}

func (s *Server) demoRoutes(r chi.Router) {
	r.Get("/state", s.handle(s.getState))
	r.Post("/load", s.handle(s.loadSample))
	r.Post("/clear", s.handle(s.clearSample))
	r.Post("/reset", s.handle(s.resetSample))
	r.Get("/events", s.handleEvents)

	r.Get("/library/leads", s.handle(func(w http.ResponseWriter, _ *http.Request) error {
		writeJSON(w, http.StatusOK, map[string]any{"leads": demo.LeadLibrary()})
		return nil
	}))
	r.Get("/library/properties", s.handle(func(w http.ResponseWriter, _ *http.Request) error {
		writeJSON(w, http.StatusOK, map[string]any{"properties": demo.PropertyLibrary()})
		return nil
	}))
	r.Get("/leads", s.handle(s.listDemoLeads))
	r.Get("/leads/{id}/conversation", s.handle(s.leadConversation))
	r.Get("/followups", s.handle(s.listFollowUps))

	r.Group(func(r chi.Router) {
		r.Use(s.requireSampleMode)

		r.Put("/insight", s.handle(s.setInsight))
		r.Post("/notifications", s.handle(s.addNotification))

		r.Post("/leads", s.handle(s.createDemoLead))
		r.Post("/leads/library", s.handle(s.addLibraryLead))
		r.Patch("/leads/{id}", s.handle(s.updateDemoLead))
		r.Delete("/leads/{id}", s.handle(s.deleteDemoLead))
		r.Post("/leads/{id}/draft", s.handle(s.prepareDraft))
		r.Post("/leads/{id}/text", s.handle(s.sendQuickText))
		r.Delete("/draft", s.handle(func(w http.ResponseWriter, _ *http.Request) error {
			s.store.ClearFollowUpDraft()
			w.WriteHeader(http.StatusNoContent)
			return nil
		}))

		r.Post("/conversations/{id}/open", s.handle(s.openConversation))
		r.Post("/conversations/{id}/messages", s.handle(s.sendConversationMessage))
		r.Post("/conversations/{id}/inject", s.handle(s.injectClientMessage))
		r.Post("/conversations/{id}/draft", s.handle(s.generateDraft))

		r.Post("/property/randomize", s.handle(func(w http.ResponseWriter, _ *http.Request) error {
			writeJSON(w, http.StatusOK, map[string]any{"property": s.store.RandomizeProperty()})
			return nil
		}))
		r.Put("/property", s.handle(s.selectProperty))
		r.Delete("/property", s.handle(func(w http.ResponseWriter, _ *http.Request) error {
			s.store.ResetActiveProperty()
			writeJSON(w, http.StatusOK, map[string]any{"property": s.store.Snapshot().ActiveProperty})
			return nil
		}))

		r.Post("/documents", s.handle(s.addDocument))
		r.Delete("/documents/{id}", s.handle(s.removeDocument))
		r.Post("/documents/{id}/ready", s.handle(s.markDocumentReady))

		r.Post("/marketing", s.handle(s.addMarketing))
		r.Delete("/marketing", s.handle(s.removeMarketing))

		r.Delete("/deals/{id}", s.handle(s.archiveDeal))

		r.Post("/followups", s.handle(s.scheduleFollowUp))
		r.Delete("/followups/{id}", s.handle(s.cancelFollowUp))
		r.Post("/followups/{id}/send", s.handle(s.sendFollowUp))
		r.Post("/followups/{id}/snooze", s.handle(s.snoozeFollowUp))
	})
}

func (s *Server) requireSampleMode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.store.SampleMode() {
			s.writeError(w, r, errSampleModeOff)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func notFound(what, id string) *APIError {
	return apiError(http.StatusNotFound, "%s %s not found", what, id)
}

func (s *Server) writeState(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"state": s.store.Snapshot()})
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) error {
	s.writeState(w)
	return nil
}

func (s *Server) loadSample(w http.ResponseWriter, _ *http.Request) error {
	s.store.LoadSampleData()
	s.writeState(w)
	return nil
}

func (s *Server) clearSample(w http.ResponseWriter, _ *http.Request) error {
	s.store.ClearSampleData()
	s.writeState(w)
	return nil
}

func (s *Server) resetSample(w http.ResponseWriter, _ *http.Request) error {
	s.store.ResetDemoData()
	s.writeState(w)
	return nil
}

func (s *Server) setInsight(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Insight string `json:"insight"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	s.store.SetInsight(req.Insight)
	writeJSON(w, http.StatusOK, map[string]string{"insight": req.Insight})
	return nil
}

func (s *Server) addNotification(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("title", req.Title, "Title is required")
	if err := v.err(); err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{"notification": s.store.AddNotification(req.Title, req.Detail)})
	return nil
}

func (s *Server) listDemoLeads(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{"leads": s.store.Snapshot().Leads})
	return nil
}

func (s *Server) createDemoLead(w http.ResponseWriter, r *http.Request) error {
	var in demo.LeadInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("name", in.Name, "Name is required")
	if err := v.err(); err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{"lead": s.store.CreateLead(in)})
	return nil
}

func (s *Server) addLibraryLead(w http.ResponseWriter, _ *http.Request) error {
	lead, ok := s.store.AddLeadFromLibrary()
	if !ok {
		return errSampleModeOff
	}
	writeJSON(w, http.StatusCreated, map[string]any{"lead": lead})
	return nil
}

func (s *Server) updateDemoLead(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	var u demo.LeadUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		return err
	}
	v := &ValidationError{}
	if u.Name != nil {
		v.required("name", *u.Name, "Name cannot be blank")
	}
	if u.Score != nil && (*u.Score < 0 || *u.Score > 100) {
		v.add("score", "Score must be between 0 and 100")
	}
	if err := v.err(); err != nil {
		return err
	}
	lead, ok := s.store.UpdateLead(id, u)
	if !ok {
		return notFound("lead", id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"lead": lead})
	return nil
}

func (s *Server) deleteDemoLead(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if !s.store.DeleteLead(id) {
		return notFound("lead", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) prepareDraft(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	draft, ok := s.store.PrepareFollowUp(id)
	if !ok {
		return notFound("lead", id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"draft": draft})
	return nil
}

func (s *Server) sendQuickText(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if _, ok := s.store.GetLead(id); !ok {
		return notFound("lead", id)
	}
	msg, ok := s.followUps.SendQuickText(id)
	if !ok {
		return apiError(http.StatusConflict, "lead %s has no conversation", id)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
	return nil
}

func (s *Server) leadConversation(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	conv, ok := s.store.ConversationForLead(id)
	if !ok {
		return apiError(http.StatusNotFound, "no conversation for lead %s", id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversation": conv})
	return nil
}

func (s *Server) openConversation(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if !s.store.OpenConversation(id) {
		return notFound("conversation", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

type bodyRequest struct {
	Body string `json:"body"`
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (string, error) {
	var req bodyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return "", err
	}
	v := &ValidationError{}
	v.required("body", req.Body, "Message is required")
	return strings.TrimSpace(req.Body), v.err()
}

// sendConversationMessage posts as the agent; the simulated reply arrives
// later over the events feed.
func (s *Server) sendConversationMessage(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	body, err := s.decodeBody(w, r)
	if err != nil {
		return err
	}
	if _, ok := s.sim.SendAgentMessage(id, body); !ok {
		return notFound("conversation", id)
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"replyIn": demo.TypingDelay.String()})
	return nil
}

func (s *Server) injectClientMessage(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	body, err := s.decodeBody(w, r)
	if err != nil {
		return err
	}
	msg, ok := s.store.InjectClientConversationMessage(id, body)
	if !ok {
		return notFound("conversation", id)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
	return nil
}

func (s *Server) generateDraft(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	var req struct {
		Kind string `json:"kind"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if req.Kind == "" {
		req.Kind = string(demo.DraftMessage)
	}
	kind, ok := demo.ParseDraftKind(req.Kind)
	if !ok {
		v := &ValidationError{}
		v.add("kind", "Kind must be message, reviewRequest or referral")
		return v
	}
	if _, ok := s.sim.GenerateDraft(id, kind, nil); !ok {
		return notFound("conversation", id)
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"kind": kind, "readyIn": demo.DraftDelay.String()})
	return nil
}

func (s *Server) selectProperty(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if !s.store.SetActiveProperty(req.ID) {
		return notFound("property", req.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"property": s.store.Snapshot().ActiveProperty})
	return nil
}

func (s *Server) addDocument(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Title    string `json:"title"`
		Property string `json:"property"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("title", req.Title, "Title is required")
	if err := v.err(); err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{"document": s.store.AddDocumentPlaceholder(req.Title, req.Property)})
	return nil
}

func (s *Server) removeDocument(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if !s.store.RemoveDocument(id) {
		return notFound("document", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) markDocumentReady(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if !s.store.MarkDocumentReady(id) {
		return notFound("processing document", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) addMarketing(w http.ResponseWriter, r *http.Request) error {
	var post models.MarketingPost
	if err := decodeJSON(w, r, &post); err != nil {
		return err
	}
	v := &ValidationError{}
	v.required("title", post.Title, "Title is required")
	v.required("platform", post.Platform, "Platform is required")
	if err := v.err(); err != nil {
		return err
	}
	s.store.AddMarketingAsset(post)
	writeJSON(w, http.StatusCreated, map[string]any{"post": post})
	return nil
}

func (s *Server) removeMarketing(w http.ResponseWriter, r *http.Request) error {
	title := r.URL.Query().Get("title")
	if !s.store.RemoveMarketingAsset(title) {
		return notFound("marketing asset", title)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) archiveDeal(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if !s.store.ArchiveDeal(id) {
		return notFound("deal", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

type followUpView struct {
	models.ScheduledFollowUp
	Countdown string `json:"countdown"`
	Overdue   bool   `json:"overdue"`
}

func (s *Server) listFollowUps(w http.ResponseWriter, _ *http.Request) error {
	now := s.store.Clock().Now()
	items := s.followUps.List()
	views := make([]followUpView, 0, len(items))
	for _, item := range items {
		cd := demo.CountdownFor(item, now)
		views = append(views, followUpView{ScheduledFollowUp: item, Countdown: cd.String(), Overdue: cd.Overdue})
	}
	writeJSON(w, http.StatusOK, map[string]any{"followUps": views})
	return nil
}

func validDelay(v *ValidationError, delay string) {
	for _, l := range demo.DelayLabels {
		if l == delay {
			return
		}
	}
	v.add("delay", "Delay must be one of: "+strings.Join(demo.DelayLabels, ", "))
}

func (s *Server) scheduleFollowUp(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		LeadID string `json:"leadId"`
		Delay  string `json:"delay"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if req.Delay == "" {
		req.Delay = DefaultFollowUpDelay
	}
	v := &ValidationError{}
	v.required("leadId", req.LeadID, "Lead ID is required")
	validDelay(v, req.Delay)
	if err := v.err(); err != nil {
		return err
	}
	item, ok := s.followUps.Schedule(req.LeadID, req.Delay)
	if !ok {
		return notFound("lead", req.LeadID)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"followUp": item})
	return nil
}

func (s *Server) cancelFollowUp(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if !s.followUps.Cancel(id) {
		return notFound("follow-up", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) sendFollowUp(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if !s.followUps.SendNow(id) {
		return notFound("waiting follow-up", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) snoozeFollowUp(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	var req struct {
		Delay string `json:"delay"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if req.Delay == "" {
		req.Delay = DefaultFollowUpDelay
	}
	v := &ValidationError{}
	validDelay(v, req.Delay)
	if err := v.err(); err != nil {
		return err
	}
	if !s.followUps.Snooze(id, req.Delay) {
		return notFound("waiting follow-up", id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
