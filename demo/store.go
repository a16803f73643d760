// ABOUTME: DemoStateStore - the single source of truth for sample-mode data
// ABOUTME: Copy-on-write commits under a mutex, then persist and notify subscribers

package demo

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/growthdesk/models"
	"github.com/harperreed/growthdesk/persist"
)

const (
	// StorageKey is where the snapshot lives in the persistence backend.
	StorageKey = "ai-realestate-sample-mode"

	maxNotifications  = 8
	maxMarketingPosts = 50

	createdLeadBaseScore = 82
)

// Change is delivered to subscribers after every commit. Rev increases with
// every commit; subscribers never see a Rev lower than one already delivered.
type Change struct {
	Op    string `json:"op"`
	Rev   uint64 `json:"rev"`
	State State  `json:"state"`
}

// Options configures a Store. Zero values select the production defaults.
type Options struct {
	Clock     Clock
	Random    Random
	NewID     func() string
	Persister persist.Store
	Logger    *log.Logger
	// StartEmpty begins in live mode instead of with seeded sample data.
	StartEmpty bool
}

// Store holds the demo aggregate. Missing ids are silent no-ops reported as false.
type Store struct {
	mu    sync.Mutex
	state State
	rev   uint64

	persistMu    sync.Mutex
	persistedRev uint64

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int

	notifyMu    sync.Mutex
	notifiedRev uint64

	clock     Clock
	rand      Random
	newID     func() string
	persister persist.Store
	logger    *log.Logger
}

func NewStore(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Random == nil {
		opts.Random = NewRandom()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	s := &Store{
		clock:     opts.Clock,
		rand:      opts.Random,
		newID:     opts.NewID,
		persister: opts.Persister,
		logger:    opts.Logger,
		subs:      make(map[int]func(Change)),
	}
	if opts.StartEmpty {
		s.state = emptyState()
	} else {
		s.state = seedState(s.clock.Now())
	}
	return s
}

// Clock exposes the store's time source to the follow-up timer and simulator.
func (s *Store) Clock() Clock { return s.clock }

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Current returns a deep copy of the state with the revision it was read at.
func (s *Store) Current() (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.rev
}

// SampleMode reports whether fabricated data is active.
func (s *Store) SampleMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SampleMode
}

// Subscribe registers fn for every committed change. Call the returned func to stop.
// fn runs on the committing goroutine and must not commit to the store itself.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// update applies fn to a copy of the state and swaps it in when fn reports a change.
func (s *Store) update(op string, fn func(st *State) bool) bool {
	s.mu.Lock()
	next := s.state.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	if next.SampleMode && next.IsEmpty() {
		s.logger.Debug("sample data exhausted, reseeding", "op", op)
		next = seedState(s.clock.Now())
	}
	s.rev++
	rev := s.rev
	s.state = next
	snap := next.Clone()
	s.mu.Unlock()

	s.persist(rev, snap)
	s.notify(Change{Op: op, Rev: rev, State: snap})
	return true
}

func (s *Store) persist(rev uint64, st State) {
	if s.persister == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if rev < s.persistedRev {
		return
	}
	s.persistedRev = rev

	data, err := EncodeSnapshot(st)
	if err != nil {
		s.logger.Error("failed to encode snapshot", "err", err)
		return
	}
	if err := s.persister.Save(StorageKey, data); err != nil {
		s.logger.Warn("failed to persist snapshot", "err", err)
	}
}

// notify delivers in revision order. A commit that reaches here after a newer
// one was delivered is dropped; the newer state already contains it.
func (s *Store) notify(c Change) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if c.Rev <= s.notifiedRev {
		s.logger.Debug("dropping superseded change", "op", c.Op, "rev", c.Rev)
		return
	}
	s.notifiedRev = c.Rev

	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// LoadSampleData replaces everything with a freshly generated seed.
func (s *Store) LoadSampleData() {
	s.update("load", func(st *State) bool {
		*st = seedState(s.clock.Now())
		return true
	})
}

// ClearSampleData switches to live mode with empty collections.
func (s *Store) ClearSampleData() {
	s.update("clear", func(st *State) bool {
		*st = emptyState()
		return true
	})
}

// ResetDemoData discards all edits and reseeds.
func (s *Store) ResetDemoData() {
	s.update("reset", func(st *State) bool {
		*st = seedState(s.clock.Now())
		return true
	})
}

func (s *Store) SetInsight(text string) {
	s.update("insight", func(st *State) bool {
		st.Insight = text
		return true
	})
}

// LeadInput carries the capture form fields for CreateLead.
type LeadInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Source   string `json:"source"`
	Location string `json:"location"`
	Budget   string `json:"budget"`
	Timeline string `json:"timeline"`
	Notes    string `json:"notes"`
}

// CreateLead prepends a new Discovery lead. Callers validate that Name is non-empty.
func (s *Store) CreateLead(in LeadInput) models.Lead {
	var created models.Lead
	s.update("lead.create", func(st *State) bool {
		created = models.Lead{
			ID:          s.newID(),
			Name:        in.Name,
			Email:       in.Email,
			Phone:       in.Phone,
			Source:      in.Source,
			Location:    in.Location,
			Budget:      in.Budget,
			Timeline:    in.Timeline,
			Notes:       in.Notes,
			Score:       adjustScore(s.rand, createdLeadBaseScore),
			Stage:       models.StageDiscovery,
			Status:      models.LeadStatusActive,
			LastContact: "just now",
			CreatedAt:   s.clock.Now(),
		}
		linkConversation(st, &created)
		st.Leads = append([]models.Lead{created}, st.Leads...)
		return true
	})
	return created
}

// AddLeadFromLibrary pulls a random template into the pipeline. Refused outside sample mode.
func (s *Store) AddLeadFromLibrary() (models.Lead, bool) {
	var created models.Lead
	ok := s.update("lead.library", func(st *State) bool {
		if !st.SampleMode {
			return false
		}
		tmpl := leadLibrary[s.rand.Intn(len(leadLibrary))]
		created = tmpl
		created.ID = s.newID()
		created.Score = adjustScore(s.rand, tmpl.Score)
		created.Stage = models.StageNewInquiry
		created.Status = models.LeadStatusActive
		created.LastContact = "just now"
		created.CreatedAt = s.clock.Now()
		created.ConversationID = ""
		linkConversation(st, &created)
		st.Leads = append([]models.Lead{created}, st.Leads...)
		s.pushNotification(st, "Sample lead entered", created.Name+" arrived via "+created.Source+".")
		return true
	})
	return created, ok
}

// linkConversation attaches the conversation whose client has the lead's name.
// The link is fixed here; later renames never re-link.
func linkConversation(st *State, lead *models.Lead) {
	for _, c := range st.Conversations {
		if strings.EqualFold(c.ClientName, lead.Name) {
			lead.ConversationID = c.ID
			return
		}
	}
}

// LeadUpdate is a partial lead; nil fields are left alone.
type LeadUpdate struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Source      *string `json:"source,omitempty"`
	Location    *string `json:"location,omitempty"`
	Budget      *string `json:"budget,omitempty"`
	Status      *string `json:"status,omitempty"`
	Stage       *string `json:"stage,omitempty"`
	Timeline    *string `json:"timeline,omitempty"`
	LastContact *string `json:"lastContact,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Score       *int    `json:"score,omitempty"`
}

func (u LeadUpdate) apply(l *models.Lead) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&l.Name, u.Name)
	set(&l.Email, u.Email)
	set(&l.Phone, u.Phone)
	set(&l.Source, u.Source)
	set(&l.Location, u.Location)
	set(&l.Budget, u.Budget)
	set(&l.Status, u.Status)
	set(&l.Stage, u.Stage)
	set(&l.Timeline, u.Timeline)
	set(&l.LastContact, u.LastContact)
	set(&l.Notes, u.Notes)
	if u.Score != nil {
		l.Score = *u.Score
	}
}

// UpdateLead merges the partial into the lead with the given id.
func (s *Store) UpdateLead(id string, u LeadUpdate) (models.Lead, bool) {
	var updated models.Lead
	ok := s.update("lead.update", func(st *State) bool {
		i := st.leadIndex(id)
		if i < 0 {
			return false
		}
		u.apply(&st.Leads[i])
		updated = st.Leads[i]
		return true
	})
	return updated, ok
}

func (s *Store) DeleteLead(id string) bool {
	return s.update("lead.delete", func(st *State) bool {
		i := st.leadIndex(id)
		if i < 0 {
			return false
		}
		st.Leads = append(st.Leads[:i], st.Leads[i+1:]...)
		return true
	})
}

// GetLead looks a lead up by id.
func (s *Store) GetLead(id string) (models.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.state.leadIndex(id); i >= 0 {
		return s.state.Leads[i], true
	}
	return models.Lead{}, false
}

// PrepareFollowUp composes the single global draft, replacing any previous one.
func (s *Store) PrepareFollowUp(leadID string) (models.FollowUpDraft, bool) {
	var draft models.FollowUpDraft
	ok := s.update("followup.draft", func(st *State) bool {
		i := st.leadIndex(leadID)
		if i < 0 {
			return false
		}
		draft = models.FollowUpDraft{
			LeadID:      leadID,
			Content:     ComposeFollowUp(st.Leads[i]),
			GeneratedAt: s.clock.Now(),
		}
		st.FollowUpDraft = &draft
		return true
	})
	return draft, ok
}

func (s *Store) ClearFollowUpDraft() {
	s.update("followup.draft.clear", func(st *State) bool {
		if st.FollowUpDraft == nil {
			return false
		}
		st.FollowUpDraft = nil
		return true
	})
}

// ConversationForLead follows the lead's stable conversation link.
func (s *Store) ConversationForLead(leadID string) (models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.leadIndex(leadID)
	if i < 0 {
		return models.Conversation{}, false
	}
	ci := s.state.conversationIndex(s.state.Leads[i].ConversationID)
	if ci < 0 {
		return models.Conversation{}, false
	}
	c := s.state.Conversations[ci]
	c.Messages = cloneSlice(c.Messages)
	return c, true
}

// OpenConversation makes the conversation active and marks it read.
func (s *Store) OpenConversation(id string) bool {
	return s.update("conversation.open", func(st *State) bool {
		i := st.conversationIndex(id)
		if i < 0 {
			return false
		}
		st.ActiveConversationID = id
		st.Conversations[i].Unread = false
		return true
	})
}

// AppendConversationMessage adds a message to the end of a conversation.
func (s *Store) AppendConversationMessage(conversationID, body, sender string) (models.ConversationMessage, bool) {
	return s.appendMessage("conversation.append", conversationID, body, sender, false)
}

// InjectClientConversationMessage appends a client message and flags the conversation unread.
func (s *Store) InjectClientConversationMessage(conversationID, body string) (models.ConversationMessage, bool) {
	return s.appendMessage("conversation.inject", conversationID, body, models.SenderClient, true)
}

func (s *Store) appendMessage(op, conversationID, body, sender string, unread bool) (models.ConversationMessage, bool) {
	var msg models.ConversationMessage
	ok := s.update(op, func(st *State) bool {
		i := st.conversationIndex(conversationID)
		if i < 0 {
			return false
		}
		msg = s.newMessage(&st.Conversations[i], sender, body)
		st.Conversations[i].Messages = append(st.Conversations[i].Messages, msg)
		if unread {
			st.Conversations[i].Unread = true
		}
		return true
	})
	return msg, ok
}

// newMessage stamps a message, keeping timestamps monotonic within the conversation.
func (s *Store) newMessage(c *models.Conversation, sender, body string) models.ConversationMessage {
	ts := s.clock.Now()
	if n := len(c.Messages); n > 0 && ts.Before(c.Messages[n-1].Timestamp) {
		ts = c.Messages[n-1].Timestamp
	}
	return models.ConversationMessage{ID: s.newID(), Sender: sender, Body: body, Timestamp: ts}
}

// RandomizeProperty activates a random library property. The current one may be picked again.
func (s *Store) RandomizeProperty() models.Property {
	var picked models.Property
	s.update("property.randomize", func(st *State) bool {
		picked = cloneProperty(propertyLibrary[s.rand.Intn(len(propertyLibrary))])
		p := cloneProperty(picked)
		st.ActiveProperty = &p
		return true
	})
	return picked
}

// SetActiveProperty selects a library property by id.
func (s *Store) SetActiveProperty(id string) bool {
	return s.update("property.select", func(st *State) bool {
		for _, p := range propertyLibrary {
			if p.ID == id {
				cp := cloneProperty(p)
				st.ActiveProperty = &cp
				return true
			}
		}
		return false
	})
}

// ResetActiveProperty goes back to the first library property.
func (s *Store) ResetActiveProperty() {
	s.update("property.reset", func(st *State) bool {
		p := cloneProperty(propertyLibrary[0])
		st.ActiveProperty = &p
		return true
	})
}

// AddDocumentPlaceholder records an upload that is still processing.
func (s *Store) AddDocumentPlaceholder(title, property string) models.Document {
	var doc models.Document
	s.update("document.add", func(st *State) bool {
		if strings.TrimSpace(property) == "" {
			property = "Demo Upload"
		}
		doc = models.Document{
			ID:         s.newID(),
			Title:      title,
			Property:   property,
			Size:       "Processing",
			UploadedAt: s.clock.Now(),
			Status:     models.DocumentProcessing,
		}
		st.Documents = append([]models.Document{doc}, st.Documents...)
		return true
	})
	return doc
}

func (s *Store) RemoveDocument(id string) bool {
	return s.update("document.remove", func(st *State) bool {
		for i, d := range st.Documents {
			if d.ID == id {
				st.Documents = append(st.Documents[:i], st.Documents[i+1:]...)
				return true
			}
		}
		return false
	})
}

// MarkDocumentReady is the only way a document leaves processing.
func (s *Store) MarkDocumentReady(id string) bool {
	return s.update("document.ready", func(st *State) bool {
		for i, d := range st.Documents {
			if d.ID == id {
				if d.Status == models.DocumentReady {
					return false
				}
				st.Documents[i].Status = models.DocumentReady
				return true
			}
		}
		return false
	})
}

// AddMarketingAsset prepends a post, keeping the newest fifty.
func (s *Store) AddMarketingAsset(post models.MarketingPost) {
	s.update("marketing.add", func(st *State) bool {
		st.MarketingPosts = append([]models.MarketingPost{post}, st.MarketingPosts...)
		if len(st.MarketingPosts) > maxMarketingPosts {
			st.MarketingPosts = st.MarketingPosts[:maxMarketingPosts]
		}
		return true
	})
}

// RemoveMarketingAsset drops every post with the given title.
func (s *Store) RemoveMarketingAsset(title string) bool {
	return s.update("marketing.remove", func(st *State) bool {
		kept := st.MarketingPosts[:0]
		for _, p := range st.MarketingPosts {
			if p.Title != title {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(st.MarketingPosts) {
			return false
		}
		st.MarketingPosts = kept
		return true
	})
}

// ArchiveDeal hard-deletes a deal.
func (s *Store) ArchiveDeal(id string) bool {
	return s.update("deal.archive", func(st *State) bool {
		for i, d := range st.Deals {
			if d.ID == id {
				st.Deals = append(st.Deals[:i], st.Deals[i+1:]...)
				return true
			}
		}
		return false
	})
}

// AddNotification prepends a notification, keeping the newest eight.
func (s *Store) AddNotification(title, detail string) models.Notification {
	var n models.Notification
	s.update("notification", func(st *State) bool {
		n = s.pushNotification(st, title, detail)
		return true
	})
	return n
}

func (s *Store) pushNotification(st *State, title, detail string) models.Notification {
	n := models.Notification{ID: s.newID(), Title: title, Detail: detail, Timestamp: s.clock.Now()}
	st.Notifications = append([]models.Notification{n}, st.Notifications...)
	if len(st.Notifications) > maxNotifications {
		st.Notifications = st.Notifications[:maxNotifications]
	}
	return n
}
