package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/models"
)

func TestDelayHours(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"1 hour", 1},
		{"4 hours", 4},
		{"1 day", 24},
		{"2 days", 48},
		{"3 days", 72},
		{"1 week", 168},
		{"next month", DefaultDelayHours},
		{"", DefaultDelayHours},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, DelayHours(tt.label))
		})
	}
}

func TestScheduleFollowUp(t *testing.T) {
	store, _, _ := newTestStore(t)
	followUps := NewFollowUps(store)

	item, ok := followUps.Schedule("lead-1", "1 day")
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(item.ID, "followup-lead-1-"), item.ID)
	assert.Equal(t, models.FollowUpPending, item.Status)
	assert.Equal(t, "Avery Collins", item.LeadName)
	assert.Equal(t, "conv-1", item.ConversationID)
	assert.WithinDuration(t, testStart.Add(24*time.Hour), item.ScheduledFor, time.Second)

	lead, _ := store.GetLead("lead-1")
	assert.Equal(t, ComposeQuickMessage(lead), item.Message)
	assert.Equal(t, []models.ScheduledFollowUp{item}, followUps.List())
}

func TestScheduleUnknownLead(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, ok := NewFollowUps(store).Schedule("missing", "1 day")
	assert.False(t, ok)
	assert.Empty(t, store.Snapshot().ScheduledFollowUps)
}

func TestScheduledMessageIsFrozen(t *testing.T) {
	store, _, _ := newTestStore(t)
	followUps := NewFollowUps(store)

	item, ok := followUps.Schedule("lead-2", "4 hours")
	require.True(t, ok)

	moved := "Portland, OR"
	store.UpdateLead("lead-2", LeadUpdate{Location: &moved})

	list := followUps.List()
	require.Len(t, list, 1)
	assert.Equal(t, item.Message, list[0].Message)
	assert.Contains(t, list[0].Message, "Seattle, WA")
}

func TestCancelFollowUp(t *testing.T) {
	store, _, _ := newTestStore(t)
	followUps := NewFollowUps(store)

	item, _ := followUps.Schedule("lead-1", "1 hour")
	assert.True(t, followUps.Cancel(item.ID))
	assert.Empty(t, followUps.List())
	assert.False(t, followUps.Cancel(item.ID))
}

func TestSendFollowUpThenExpire(t *testing.T) {
	store, clock, _ := newTestStore(t)
	followUps := NewFollowUps(store)
	before := len(store.Snapshot().Conversations[0].Messages)

	item, _ := followUps.Schedule("lead-1", "1 day")
	require.True(t, followUps.SendNow(item.ID))

	list := followUps.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.FollowUpSent, list[0].Status)

	msgs := store.Snapshot().Conversations[0].Messages
	require.Len(t, msgs, before+1)
	assert.Equal(t, item.Message, msgs[len(msgs)-1].Body)
	assert.Equal(t, models.SenderAgent, msgs[len(msgs)-1].Sender)

	assert.False(t, followUps.SendNow(item.ID), "already sent")

	clock.Advance(SentDisplayWindow - time.Millisecond)
	assert.Len(t, followUps.List(), 1)

	clock.Advance(time.Millisecond)
	assert.Empty(t, followUps.List())
	assert.Len(t, store.Snapshot().Conversations[0].Messages, before+1)
}

func TestSendFollowUpWithoutConversation(t *testing.T) {
	store, _, _ := newTestStore(t)
	followUps := NewFollowUps(store)

	item, _ := followUps.Schedule("lead-4", "1 day")
	assert.Empty(t, item.ConversationID)
	assert.True(t, followUps.SendNow(item.ID))
	assert.Equal(t, models.FollowUpSent, followUps.List()[0].Status)
}

func TestCancelAfterSendStopsRemoval(t *testing.T) {
	store, clock, _ := newTestStore(t)
	followUps := NewFollowUps(store)

	item, _ := followUps.Schedule("lead-1", "1 day")
	followUps.SendNow(item.ID)
	require.Equal(t, 1, clock.Pending())

	assert.True(t, followUps.Cancel(item.ID))
	assert.Equal(t, 0, clock.Pending())
}

func TestSnoozeFollowUp(t *testing.T) {
	store, _, _ := newTestStore(t)
	followUps := NewFollowUps(store)

	item, _ := followUps.Schedule("lead-3", "1 hour")
	require.True(t, followUps.Snooze(item.ID, "4 hours"))

	got := followUps.List()[0]
	assert.Equal(t, models.FollowUpSnoozed, got.Status)
	assert.Equal(t, item.ScheduledFor.Add(4*time.Hour), got.ScheduledFor)
	assert.Equal(t, "4 hours", got.Delay)

	assert.True(t, followUps.SendNow(item.ID), "snoozed items can still be sent")
	assert.False(t, followUps.Snooze(item.ID, "1 day"), "sent items cannot be snoozed")
}

func TestSendQuickText(t *testing.T) {
	store, _, _ := newTestStore(t)
	followUps := NewFollowUps(store)

	msg, ok := followUps.SendQuickText("lead-2")
	require.True(t, ok)
	assert.Equal(t, "Hi Marcus, I just unlocked fresh homes in Seattle, WA. They line up with your next 90 days move window. Want me to fast-track a private tour?", msg.Body)

	st := store.Snapshot()
	assert.Equal(t, "Text sent", st.Notifications[0].Title)
	_, ok = followUps.SendQuickText("lead-4")
	assert.False(t, ok, "no linked conversation")
}

func TestCountdownFor(t *testing.T) {
	item := models.ScheduledFollowUp{ScheduledFor: testStart.Add(26*time.Hour + 30*time.Minute)}

	c := CountdownFor(item, testStart)
	assert.Equal(t, Countdown{Hours: 26, Minutes: 30}, c)
	assert.Equal(t, "in 26h 30m", c.String())

	assert.Equal(t, "in 5m", CountdownFor(item, item.ScheduledFor.Add(-5*time.Minute)).String())

	overdue := CountdownFor(item, item.ScheduledFor.Add(time.Minute))
	assert.True(t, overdue.Overdue)
	assert.Equal(t, "due now", overdue.String())
}
