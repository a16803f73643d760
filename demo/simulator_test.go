package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/models"
)

func TestSimulatedReply(t *testing.T) {
	store, clock, _ := newTestStore(t, 3)
	sim := NewSimulator(store)
	store.OpenConversation("conv-2")
	before := len(store.Snapshot().Conversations[1].Messages)

	_, ok := sim.SendAgentMessage("conv-2", "Tour confirmed for Friday.")
	require.True(t, ok)

	st := store.Snapshot()
	conv := st.Conversations[1]
	require.Len(t, conv.Messages, before+1)
	assert.Equal(t, models.SenderAgent, conv.Messages[before].Sender)
	assert.Equal(t, "Message sent", st.Notifications[0].Title)
	assert.Equal(t, "Marcus Reed notified via concierge.", st.Notifications[0].Detail)

	clock.Advance(TypingDelay - time.Millisecond)
	assert.Len(t, store.Snapshot().Conversations[1].Messages, before+1)

	clock.Advance(time.Millisecond)
	st = store.Snapshot()
	conv = st.Conversations[1]
	require.Len(t, conv.Messages, before+2)
	reply := conv.Messages[before+1]
	assert.Equal(t, models.SenderClient, reply.Sender)
	assert.Equal(t, CannedReplies[3], reply.Body)
	assert.True(t, conv.Unread)
	assert.Equal(t, "Client replied", st.Notifications[0].Title)
	assert.Equal(t, "Marcus Reed responded automatically.", st.Notifications[0].Detail)
}

func TestSimulatedReplyCanBeCancelled(t *testing.T) {
	store, clock, _ := newTestStore(t)
	sim := NewSimulator(store)

	timer, ok := sim.SendAgentMessage("conv-1", "On my way.")
	require.True(t, ok)
	count := len(store.Snapshot().Conversations[0].Messages)

	assert.True(t, timer.Stop())
	clock.Advance(time.Minute)
	assert.Len(t, store.Snapshot().Conversations[0].Messages, count)
}

func TestSimulatorUnknownConversation(t *testing.T) {
	store, _, _ := newTestStore(t)
	sim := NewSimulator(store)

	timer, ok := sim.SendAgentMessage("missing", "hello")
	assert.False(t, ok)
	assert.Nil(t, timer)

	_, ok = sim.GenerateDraft("missing", DraftMessage, nil)
	assert.False(t, ok)
}

func TestGenerateDraft(t *testing.T) {
	store, clock, _ := newTestStore(t)
	sim := NewSimulator(store)

	var got models.ConversationMessage
	_, ok := sim.GenerateDraft("conv-3", DraftReferral, func(m models.ConversationMessage) { got = m })
	require.True(t, ok)

	clock.Advance(DraftDelay)
	assert.Equal(t, models.SenderAgent, got.Sender)
	assert.Equal(t, "Hi Priya, thanks again for trusting us. If anyone in your circle is planning a move this year, I would love to give them the same VIP experience.", got.Body)

	msgs := store.Snapshot().Conversations[2].Messages
	assert.Equal(t, got, msgs[len(msgs)-1])
}
