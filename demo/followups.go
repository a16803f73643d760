// ABOUTME: ScheduledFollowUpTimer - per-lead delayed messages advanced by explicit sends
// ABOUTME: Sent items linger for a short display window and are then removed

package demo

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/growthdesk/models"
)

// SentDisplayWindow is how long a sent follow-up stays listed before removal.
const SentDisplayWindow = 3 * time.Second

// FollowUps schedules and sends automated lead follow-ups on top of a Store.
type FollowUps struct {
	store *Store

	mu       sync.Mutex
	removals map[string]Timer
	entropy  *ulid.MonotonicEntropy
}

func NewFollowUps(store *Store) *FollowUps {
	return &FollowUps{
		store:    store,
		removals: make(map[string]Timer),
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

func (f *FollowUps) newID(leadID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(f.store.clock.Now()), f.entropy)
	return fmt.Sprintf("followup-%s-%s", leadID, id.String())
}

// Schedule queues a pending follow-up for the lead. The message is composed now
// and does not track later lead edits.
func (f *FollowUps) Schedule(leadID, delay string) (models.ScheduledFollowUp, bool) {
	if _, ok := f.store.GetLead(leadID); !ok {
		return models.ScheduledFollowUp{}, false
	}
	id := f.newID(leadID)

	var item models.ScheduledFollowUp
	ok := f.store.update("followup.schedule", func(st *State) bool {
		i := st.leadIndex(leadID)
		if i < 0 {
			return false
		}
		lead := st.Leads[i]
		item = models.ScheduledFollowUp{
			ID:             id,
			LeadID:         lead.ID,
			LeadName:       lead.Name,
			ConversationID: lead.ConversationID,
			ScheduledFor:   f.store.clock.Now().Add(DelayDuration(delay)),
			Status:         models.FollowUpPending,
			Message:        ComposeQuickMessage(lead),
			Delay:          delay,
		}
		st.ScheduledFollowUps = append(st.ScheduledFollowUps, item)
		return true
	})
	return item, ok
}

// Cancel removes a follow-up regardless of its status.
func (f *FollowUps) Cancel(id string) bool {
	f.stopRemoval(id)
	return f.store.update("followup.cancel", func(st *State) bool {
		i := st.followUpIndex(id)
		if i < 0 {
			return false
		}
		st.ScheduledFollowUps = append(st.ScheduledFollowUps[:i], st.ScheduledFollowUps[i+1:]...)
		return true
	})
}

// SendNow marks a waiting follow-up sent, posts its message into the linked
// conversation and removes the item after SentDisplayWindow.
func (f *FollowUps) SendNow(id string) bool {
	ok := f.store.update("followup.send", func(st *State) bool {
		i := st.followUpIndex(id)
		if i < 0 || st.ScheduledFollowUps[i].Status == models.FollowUpSent {
			return false
		}
		item := &st.ScheduledFollowUps[i]
		item.Status = models.FollowUpSent

		if ci := st.conversationIndex(item.ConversationID); ci >= 0 {
			c := &st.Conversations[ci]
			c.Messages = append(c.Messages, f.store.newMessage(c, models.SenderAgent, item.Message))
		}
		return true
	})
	if !ok {
		return false
	}

	timer := f.store.clock.AfterFunc(SentDisplayWindow, func() {
		f.mu.Lock()
		delete(f.removals, id)
		f.mu.Unlock()
		f.store.update("followup.expire", func(st *State) bool {
			i := st.followUpIndex(id)
			if i < 0 {
				return false
			}
			st.ScheduledFollowUps = append(st.ScheduledFollowUps[:i], st.ScheduledFollowUps[i+1:]...)
			return true
		})
	})

	f.mu.Lock()
	f.removals[id] = timer
	f.mu.Unlock()
	return true
}

// Snooze pushes a waiting follow-up out by another delay.
func (f *FollowUps) Snooze(id, delay string) bool {
	return f.store.update("followup.snooze", func(st *State) bool {
		i := st.followUpIndex(id)
		if i < 0 || st.ScheduledFollowUps[i].Status == models.FollowUpSent {
			return false
		}
		item := &st.ScheduledFollowUps[i]
		base := f.store.clock.Now()
		if item.ScheduledFor.After(base) {
			base = item.ScheduledFor
		}
		item.ScheduledFor = base.Add(DelayDuration(delay))
		item.Status = models.FollowUpSnoozed
		item.Delay = delay
		return true
	})
}

// List returns the follow-ups in scheduling order.
func (f *FollowUps) List() []models.ScheduledFollowUp {
	return f.store.Snapshot().ScheduledFollowUps
}

// SendQuickText posts the quick message straight into the lead's conversation.
func (f *FollowUps) SendQuickText(leadID string) (models.ConversationMessage, bool) {
	var msg models.ConversationMessage
	ok := f.store.update("lead.text", func(st *State) bool {
		i := st.leadIndex(leadID)
		if i < 0 {
			return false
		}
		lead := &st.Leads[i]
		ci := st.conversationIndex(lead.ConversationID)
		if ci < 0 {
			return false
		}
		c := &st.Conversations[ci]
		msg = f.store.newMessage(c, models.SenderAgent, ComposeQuickMessage(*lead))
		c.Messages = append(c.Messages, msg)
		lead.LastContact = "just now"
		f.store.pushNotification(st, "Text sent", lead.FirstName()+" received a quick text.")
		return true
	})
	return msg, ok
}

func (f *FollowUps) stopRemoval(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.removals[id]; ok {
		t.Stop()
		delete(f.removals, id)
	}
}

// Countdown is the time remaining before a follow-up is due.
type Countdown struct {
	Hours   int
	Minutes int
	Overdue bool
}

func (c Countdown) String() string {
	if c.Overdue {
		return "due now"
	}
	if c.Hours == 0 {
		return fmt.Sprintf("in %dm", c.Minutes)
	}
	return fmt.Sprintf("in %dh %dm", c.Hours, c.Minutes)
}

// CountdownFor computes the countdown of an item relative to now.
func CountdownFor(item models.ScheduledFollowUp, now time.Time) Countdown {
	left := item.ScheduledFor.Sub(now)
	if left <= 0 {
		return Countdown{Overdue: true}
	}
	return Countdown{
		Hours:   int(left / time.Hour),
		Minutes: int((left % time.Hour) / time.Minute),
	}
}
