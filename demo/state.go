// ABOUTME: The demo workspace aggregate and its deep copy
// ABOUTME: Every store commit swaps in a fresh State built from a Clone

package demo

import (
	"github.com/harperreed/growthdesk/models"
)

// State is the whole simulated business. Its JSON form is the persisted snapshot.
type State struct {
	SampleMode           bool                       `json:"isSampleMode"`
	Leads                []models.Lead              `json:"leads"`
	MarketingPosts       []models.MarketingPost     `json:"marketingPosts"`
	Messages             []models.FeedMessage       `json:"messages"`
	AssistantChat        []models.ChatMessage       `json:"assistantChat"`
	Documents            []models.Document          `json:"documents"`
	Deals                []models.Deal              `json:"deals"`
	Conversations        []models.Conversation      `json:"conversations"`
	ActiveConversationID string                     `json:"activeConversationId"`
	Insight              string                     `json:"insight"`
	Notifications        []models.Notification      `json:"notifications"`
	ActiveProperty       *models.Property           `json:"activeProperty"`
	FollowUpDraft        *models.FollowUpDraft      `json:"followUpDraft"`
	ScheduledFollowUps   []models.ScheduledFollowUp `json:"scheduledFollowUps"`
}

// Clone returns a deep copy. Nil slices stay nil.
func (s State) Clone() State {
	out := s
	out.Leads = cloneSlice(s.Leads)
	out.MarketingPosts = cloneSlice(s.MarketingPosts)
	out.Messages = cloneSlice(s.Messages)
	out.AssistantChat = cloneSlice(s.AssistantChat)
	out.Documents = cloneSlice(s.Documents)
	out.Deals = cloneSlice(s.Deals)
	out.Notifications = cloneSlice(s.Notifications)
	out.ScheduledFollowUps = cloneSlice(s.ScheduledFollowUps)

	if s.Conversations != nil {
		out.Conversations = make([]models.Conversation, len(s.Conversations))
		for i, c := range s.Conversations {
			c.Messages = cloneSlice(c.Messages)
			out.Conversations[i] = c
		}
	}
	if s.ActiveProperty != nil {
		p := cloneProperty(*s.ActiveProperty)
		out.ActiveProperty = &p
	}
	if s.FollowUpDraft != nil {
		d := *s.FollowUpDraft
		out.FollowUpDraft = &d
	}
	return out
}

// IsEmpty reports whether every user-facing list the dashboard seeds is empty.
func (s State) IsEmpty() bool {
	return len(s.Leads) == 0 && len(s.Deals) == 0 &&
		len(s.MarketingPosts) == 0 && len(s.Documents) == 0
}

func (s *State) leadIndex(id string) int {
	for i := range s.Leads {
		if s.Leads[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) conversationIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Conversations {
		if s.Conversations[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) followUpIndex(id string) int {
	for i := range s.ScheduledFollowUps {
		if s.ScheduledFollowUps[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneProperty(p models.Property) models.Property {
	p.Highlights = cloneSlice(p.Highlights)
	p.Gallery = cloneSlice(p.Gallery)
	return p
}

// emptyState is the live-mode aggregate: no fabricated data, first library property active.
func emptyState() State {
	p := cloneProperty(propertyLibrary[0])
	return State{
		SampleMode:         false,
		Leads:              []models.Lead{},
		MarketingPosts:     []models.MarketingPost{},
		Messages:           []models.FeedMessage{},
		AssistantChat:      []models.ChatMessage{},
		Documents:          []models.Document{},
		Deals:              []models.Deal{},
		Conversations:      []models.Conversation{},
		Notifications:      []models.Notification{},
		ActiveProperty:     &p,
		ScheduledFollowUps: []models.ScheduledFollowUp{},
	}
}
