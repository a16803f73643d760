// ABOUTME: ConversationSimulator - fake client replies and canned concierge drafts
// ABOUTME: Delays run on the store clock so tests can advance them deterministically

package demo

import (
	"time"

	"github.com/harperreed/growthdesk/models"
)

const (
	// TypingDelay is how long the simulated client "types" before replying.
	TypingDelay = 1500 * time.Millisecond
	// DraftDelay is the simulated generation time for concierge drafts.
	DraftDelay = 900 * time.Millisecond
)

// CannedReplies are the client responses picked uniformly at random.
var CannedReplies = []string{
	"Thanks for the update! Looking forward to it.",
	"Sounds great! I'll be there.",
	"Perfect, that works for me.",
	"Thanks for keeping me in the loop!",
	"Appreciate the heads up!",
	"Got it, thanks!",
	"That sounds perfect, thank you!",
}

type Simulator struct {
	store *Store
}

func NewSimulator(store *Store) *Simulator {
	return &Simulator{store: store}
}

// SendAgentMessage posts the agent's message and schedules a canned client reply.
// The returned Timer cancels the pending reply.
func (s *Simulator) SendAgentMessage(conversationID, body string) (Timer, bool) {
	var clientName string
	ok := s.store.update("conversation.send", func(st *State) bool {
		i := st.conversationIndex(conversationID)
		if i < 0 {
			return false
		}
		c := &st.Conversations[i]
		clientName = c.ClientName
		c.Messages = append(c.Messages, s.store.newMessage(c, models.SenderAgent, body))
		s.store.pushNotification(st, "Message sent", clientName+" notified via concierge.")
		return true
	})
	if !ok {
		return nil, false
	}

	timer := s.store.clock.AfterFunc(TypingDelay, func() {
		reply := CannedReplies[s.store.rand.Intn(len(CannedReplies))]
		s.store.update("conversation.reply", func(st *State) bool {
			i := st.conversationIndex(conversationID)
			if i < 0 {
				return false
			}
			c := &st.Conversations[i]
			c.Messages = append(c.Messages, s.store.newMessage(c, models.SenderClient, reply))
			c.Unread = true
			s.store.pushNotification(st, "Client replied", clientName+" responded automatically.")
			return true
		})
	})
	return timer, true
}

// GenerateDraft appends a canned draft of the given kind after DraftDelay.
// done, when set, receives the appended message.
func (s *Simulator) GenerateDraft(conversationID string, kind DraftKind, done func(models.ConversationMessage)) (Timer, bool) {
	s.store.mu.Lock()
	found := s.store.state.conversationIndex(conversationID) >= 0
	s.store.mu.Unlock()
	if !found {
		return nil, false
	}

	timer := s.store.clock.AfterFunc(DraftDelay, func() {
		var msg models.ConversationMessage
		ok := s.store.update("conversation.draft", func(st *State) bool {
			i := st.conversationIndex(conversationID)
			if i < 0 {
				return false
			}
			c := &st.Conversations[i]
			msg = s.store.newMessage(c, models.SenderAgent, ComposeDraft(kind, c.ClientName))
			c.Messages = append(c.Messages, msg)
			return true
		})
		if ok && done != nil {
			done(msg)
		}
	})
	return timer, true
}
