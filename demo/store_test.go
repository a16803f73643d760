// ABOUTME: Tests for the demo state store
// ABOUTME: Covers seeding, lead lifecycle, no-op semantics, caps and subscriptions

package demo

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/models"
	"github.com/harperreed/growthdesk/persist"
)

var testStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, randomValues ...int) (*Store, *FakeClock, *persist.MemoryStore) {
	t.Helper()
	clock := NewFakeClock(testStart)
	mem := persist.NewMemoryStore()
	n := 0
	store := NewStore(Options{
		Clock:  clock,
		Random: NewSequenceRandom(randomValues...),
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Persister: mem,
	})
	return store, clock, mem
}

func TestLoadSampleDataPopulatesEverything(t *testing.T) {
	store, _, _ := newTestStore(t)
	store.ClearSampleData()
	store.LoadSampleData()

	st := store.Snapshot()
	assert.True(t, st.SampleMode)
	assert.NotEmpty(t, st.Leads)
	assert.NotEmpty(t, st.Deals)
	require.NotEmpty(t, st.Conversations)
	assert.NotEmpty(t, st.Conversations[0].Messages)
	assert.Len(t, st.MarketingPosts, 4)
	assert.Len(t, st.Messages, 4)
	require.NotNil(t, st.ActiveProperty)
	assert.Equal(t, "prop-aurora", st.ActiveProperty.ID)
}

func TestSeededLeadsLinkToConversations(t *testing.T) {
	store, _, _ := newTestStore(t)

	conv, ok := store.ConversationForLead("lead-1")
	require.True(t, ok)
	assert.Equal(t, "conv-1", conv.ID)
	assert.Equal(t, "Avery Collins", conv.ClientName)

	_, ok = store.ConversationForLead("lead-4")
	assert.False(t, ok, "lead-4 has no conversation")
}

func TestSeedPostsAlternatePlatforms(t *testing.T) {
	posts := seedPosts()
	require.Len(t, posts, 4)
	assert.Equal(t, "Instagram", posts[0].Platform)
	assert.Equal(t, "LinkedIn", posts[1].Platform)
	assert.Equal(t, "1180 Skyline Drive, Malibu, CA just hit the market. "+propertyLibrary[0].Description, posts[0].Caption)
	assert.Equal(t, sampleHashtags, posts[3].Hashtags)
}

func TestFeedMapsSenders(t *testing.T) {
	store, _, _ := newTestStore(t)
	feed := store.Snapshot().Messages

	require.Len(t, feed, 4)
	assert.Equal(t, "Avery Collins", feed[0].Sender)
	assert.Equal(t, "You", feed[1].Sender)
	assert.Equal(t, "AI Concierge", feed[2].Sender)
}

func TestCreateThenDeleteLead(t *testing.T) {
	store, _, _ := newTestStore(t, 7)
	before := store.Snapshot().Leads

	lead := store.CreateLead(LeadInput{Name: "Casey Morgan", Location: "Denver, CO", Timeline: "Next 30 days"})

	assert.Equal(t, "Casey Morgan", lead.Name)
	assert.Equal(t, models.StageDiscovery, lead.Stage)
	assert.Equal(t, models.LeadStatusActive, lead.Status)
	assert.Equal(t, "just now", lead.LastContact)
	assert.Equal(t, 84, lead.Score)
	assert.Equal(t, testStart, lead.CreatedAt)

	leads := store.Snapshot().Leads
	require.Len(t, leads, len(before)+1)
	assert.Equal(t, lead.ID, leads[0].ID, "new leads go first")

	assert.True(t, store.DeleteLead(lead.ID))
	assert.Equal(t, before, store.Snapshot().Leads)
}

func TestCreateLeadLinksConversationByNameOnce(t *testing.T) {
	store, _, _ := newTestStore(t)

	lead := store.CreateLead(LeadInput{Name: "marcus reed"})
	assert.Equal(t, "conv-2", lead.ConversationID)

	renamed := "Marcus Reed-Whitfield"
	updated, ok := store.UpdateLead(lead.ID, LeadUpdate{Name: &renamed})
	require.True(t, ok)
	assert.Equal(t, "conv-2", updated.ConversationID, "renames keep the original link")

	stranger := store.CreateLead(LeadInput{Name: "Nobody Known"})
	assert.Empty(t, stranger.ConversationID)
}

func TestCreateLeadKeepsNameAsGiven(t *testing.T) {
	store, _, _ := newTestStore(t)

	lead := store.CreateLead(LeadInput{Name: " Casey Morgan "})
	assert.Equal(t, " Casey Morgan ", lead.Name)
}

func TestMissingIDsAreNoOps(t *testing.T) {
	store, _, mem := newTestStore(t)
	before := store.Snapshot()

	notes := "changed"
	_, ok := store.UpdateLead("missing", LeadUpdate{Notes: &notes})
	assert.False(t, ok)
	assert.False(t, store.DeleteLead("missing"))
	assert.False(t, store.OpenConversation("missing"))
	assert.False(t, store.ArchiveDeal("missing"))
	assert.False(t, store.RemoveDocument("missing"))
	assert.False(t, store.MarkDocumentReady("missing"))
	assert.False(t, store.RemoveMarketingAsset("missing"))
	assert.False(t, store.SetActiveProperty("missing"))
	_, ok = store.InjectClientConversationMessage("missing", "hello")
	assert.False(t, ok)
	_, ok = store.AppendConversationMessage("missing", "hello", models.SenderAgent)
	assert.False(t, ok)
	_, ok = store.PrepareFollowUp("missing")
	assert.False(t, ok)

	assert.Equal(t, before, store.Snapshot())

	_, err := mem.Load(StorageKey)
	assert.ErrorIs(t, err, persist.ErrNotFound, "no-ops never persist")
}

func TestUpdateLeadMergesPartial(t *testing.T) {
	store, _, _ := newTestStore(t)
	stage := models.StageNegotiating
	score := 95

	lead, ok := store.UpdateLead("lead-2", LeadUpdate{Stage: &stage, Score: &score})
	require.True(t, ok)

	assert.Equal(t, models.StageNegotiating, lead.Stage)
	assert.Equal(t, 95, lead.Score)
	assert.Equal(t, "Marcus Reed", lead.Name, "untouched fields survive")
}

func TestPrepareFollowUpDraft(t *testing.T) {
	store, _, _ := newTestStore(t)

	draft, ok := store.PrepareFollowUp("lead-1")
	require.True(t, ok)
	assert.Contains(t, draft.Content, "Avery")
	assert.Contains(t, draft.Content, "Malibu, CA")
	assert.Equal(t, "lead-1", draft.LeadID)

	second, ok := store.PrepareFollowUp("lead-3")
	require.True(t, ok)

	st := store.Snapshot()
	require.NotNil(t, st.FollowUpDraft)
	assert.Equal(t, second, *st.FollowUpDraft, "one draft at a time")

	store.ClearFollowUpDraft()
	assert.Nil(t, store.Snapshot().FollowUpDraft)
}

func TestAdjustScoreClamps(t *testing.T) {
	tests := []struct {
		name string
		base int
		roll int
		want int
	}{
		{"jitter down", 80, 0, 75},
		{"jitter up", 80, 9, 84},
		{"clamp high", 98, 9, 99},
		{"clamp low", 56, 0, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adjustScore(NewSequenceRandom(tt.roll), tt.base)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddLeadFromLibrary(t *testing.T) {
	store, _, _ := newTestStore(t, 1, 9)

	lead, ok := store.AddLeadFromLibrary()
	require.True(t, ok)

	assert.Equal(t, "Marcus Reed", lead.Name)
	assert.Equal(t, 88, lead.Score)
	assert.Equal(t, models.StageNewInquiry, lead.Stage)
	assert.Equal(t, "conv-2", lead.ConversationID)
	assert.NotEqual(t, "lead-2", lead.ID)

	st := store.Snapshot()
	assert.Equal(t, lead.ID, st.Leads[0].ID)
	assert.Equal(t, "Sample lead entered", st.Notifications[0].Title)
	assert.Equal(t, "Marcus Reed arrived via Zillow.", st.Notifications[0].Detail)

	store.ClearSampleData()
	_, ok = store.AddLeadFromLibrary()
	assert.False(t, ok, "library leads need sample mode")
	assert.Empty(t, store.Snapshot().Leads)
}

func TestClearSampleData(t *testing.T) {
	store, _, _ := newTestStore(t)
	store.ClearSampleData()

	st := store.Snapshot()
	assert.False(t, st.SampleMode)
	assert.Empty(t, st.Leads)
	assert.Empty(t, st.Deals)
	assert.Empty(t, st.Documents)
	assert.Empty(t, st.MarketingPosts)
	require.NotNil(t, st.ActiveProperty)
	assert.Equal(t, propertyLibrary[0].ID, st.ActiveProperty.ID)
}

func TestResetDiscardsEdits(t *testing.T) {
	store, _, _ := newTestStore(t)
	store.CreateLead(LeadInput{Name: "Temporary"})
	store.ArchiveDeal("deal-1")

	store.ResetDemoData()

	st := store.Snapshot()
	assert.Len(t, st.Leads, seededLeadCount)
	assert.Len(t, st.Deals, 3)
}

func TestInjectClientMessage(t *testing.T) {
	store, clock, _ := newTestStore(t)
	clock.Advance(time.Minute)

	msg, ok := store.InjectClientConversationMessage("conv-2", "Is the terrace heated?")
	require.True(t, ok)

	st := store.Snapshot()
	conv := st.Conversations[1]
	assert.True(t, conv.Unread)
	last := conv.Messages[len(conv.Messages)-1]
	assert.Equal(t, msg, last)
	assert.Equal(t, models.SenderClient, last.Sender)
	assert.Equal(t, "Is the terrace heated?", last.Body)
}

func TestOpenConversationMarksRead(t *testing.T) {
	store, _, _ := newTestStore(t)

	require.True(t, store.OpenConversation("conv-3"))

	st := store.Snapshot()
	assert.Equal(t, "conv-3", st.ActiveConversationID)
	assert.False(t, st.Conversations[2].Unread)
}

func TestAppendKeepsTimestampsMonotonic(t *testing.T) {
	store, _, _ := newTestStore(t)
	// last message stamped ahead of the clock
	store.mu.Lock()
	store.state.Conversations[0].Messages[3].Timestamp = testStart.Add(time.Hour)
	store.mu.Unlock()

	msg, ok := store.AppendConversationMessage("conv-1", "Booked.", models.SenderAgent)
	require.True(t, ok)
	assert.Equal(t, testStart.Add(time.Hour), msg.Timestamp)
}

func TestDocumentPlaceholderLifecycle(t *testing.T) {
	store, _, _ := newTestStore(t)

	doc := store.AddDocumentPlaceholder("Counteroffer.pdf", "")
	assert.Equal(t, "Demo Upload", doc.Property)
	assert.Equal(t, "Processing", doc.Size)
	assert.Equal(t, models.DocumentProcessing, doc.Status)
	assert.Equal(t, doc.ID, store.Snapshot().Documents[0].ID)

	require.True(t, store.MarkDocumentReady(doc.ID))
	assert.Equal(t, models.DocumentReady, store.Snapshot().Documents[0].Status)
	assert.False(t, store.MarkDocumentReady(doc.ID), "already ready")

	assert.True(t, store.RemoveDocument(doc.ID))
	assert.Len(t, store.Snapshot().Documents, 3)
}

func TestMarketingAssetsCapAndRemoveByTitle(t *testing.T) {
	store, _, _ := newTestStore(t)

	for i := 0; i < 60; i++ {
		store.AddMarketingAsset(models.MarketingPost{Platform: "Instagram", Title: fmt.Sprintf("Post %d", i)})
	}
	posts := store.Snapshot().MarketingPosts
	require.Len(t, posts, maxMarketingPosts)
	assert.Equal(t, "Post 59", posts[0].Title)

	store.AddMarketingAsset(models.MarketingPost{Title: "Post 59"})
	require.True(t, store.RemoveMarketingAsset("Post 59"))
	for _, p := range store.Snapshot().MarketingPosts {
		assert.NotEqual(t, "Post 59", p.Title)
	}
}

func TestNotificationsCapped(t *testing.T) {
	store, _, _ := newTestStore(t)

	for i := 0; i < 10; i++ {
		store.AddNotification(fmt.Sprintf("Note %d", i), "detail")
	}
	notes := store.Snapshot().Notifications
	require.Len(t, notes, maxNotifications)
	assert.Equal(t, "Note 9", notes[0].Title)
	assert.Equal(t, "Note 2", notes[7].Title)
}

func TestPropertySelection(t *testing.T) {
	store, _, _ := newTestStore(t, 0, 1)

	picked := store.RandomizeProperty()
	assert.Equal(t, "prop-aurora", picked.ID, "the active property can be picked again")
	assert.Equal(t, "prop-aurora", store.Snapshot().ActiveProperty.ID)

	picked = store.RandomizeProperty()
	assert.Equal(t, "prop-harbor", picked.ID)
	assert.Equal(t, "prop-harbor", store.Snapshot().ActiveProperty.ID)

	require.True(t, store.SetActiveProperty("prop-loft"))
	assert.Equal(t, "prop-loft", store.Snapshot().ActiveProperty.ID)

	store.ResetActiveProperty()
	assert.Equal(t, "prop-aurora", store.Snapshot().ActiveProperty.ID)
}

func TestAutoReseedWhenSampleDataExhausted(t *testing.T) {
	store, _, _ := newTestStore(t)
	st := store.Snapshot()

	for _, l := range st.Leads {
		store.DeleteLead(l.ID)
	}
	for _, d := range st.Deals {
		store.ArchiveDeal(d.ID)
	}
	for _, p := range st.MarketingPosts {
		store.RemoveMarketingAsset(p.Title)
	}
	for _, d := range st.Documents[:len(st.Documents)-1] {
		store.RemoveDocument(d.ID)
	}
	assert.Empty(t, store.Snapshot().Leads, "not exhausted yet")

	store.RemoveDocument(st.Documents[len(st.Documents)-1].ID)

	after := store.Snapshot()
	assert.Len(t, after.Leads, seededLeadCount)
	assert.Len(t, after.Documents, 3)
}

func TestSubscribeReceivesCommits(t *testing.T) {
	store, _, _ := newTestStore(t)

	var ops []string
	unsubscribe := store.Subscribe(func(c Change) {
		ops = append(ops, c.Op)
	})

	store.SetInsight("Inventory is tightening.")
	store.DeleteLead("missing")
	unsubscribe()
	store.ResetDemoData()

	assert.Equal(t, []string{"insight"}, ops)
}

func TestSubscribersSeeCommitsInRevisionOrder(t *testing.T) {
	store, _, _ := newTestStore(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var delivered []Change
	store.Subscribe(func(c Change) {
		if c.Op == "notification" {
			close(entered)
			<-release
		}
		mu.Lock()
		delivered = append(delivered, c)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		store.AddNotification("Tour booked", "Avery confirmed Saturday.")
	}()
	<-entered
	go func() {
		defer wg.Done()
		store.SetInsight("latest")
	}()
	close(release)
	wg.Wait()

	require.Len(t, delivered, 2)
	assert.Equal(t, "notification", delivered[0].Op)
	assert.Equal(t, "insight", delivered[1].Op)
	assert.Less(t, delivered[0].Rev, delivered[1].Rev)
	assert.Equal(t, "latest", delivered[1].State.Insight)

	st, rev := store.Current()
	assert.Equal(t, "latest", st.Insight)
	assert.Equal(t, delivered[1].Rev, rev)
}

func TestNotifyDropsSupersededRevisions(t *testing.T) {
	store, _, _ := newTestStore(t)

	var revs []uint64
	store.Subscribe(func(c Change) { revs = append(revs, c.Rev) })

	store.notify(Change{Op: "b", Rev: 2})
	store.notify(Change{Op: "a", Rev: 1})
	store.notify(Change{Op: "c", Rev: 3})

	assert.Equal(t, []uint64{2, 3}, revs)
}

func TestSnapshotIsIsolated(t *testing.T) {
	store, _, _ := newTestStore(t)

	st := store.Snapshot()
	st.Leads[0].Name = "Mutated"
	st.Conversations[0].Messages[0].Body = "Mutated"

	fresh := store.Snapshot()
	assert.Equal(t, "Avery Collins", fresh.Leads[0].Name)
	assert.NotEqual(t, "Mutated", fresh.Conversations[0].Messages[0].Body)
}

func TestCommitsPersist(t *testing.T) {
	store, _, mem := newTestStore(t)
	store.SetInsight("Persist me")

	data, err := mem.Load(StorageKey)
	require.NoError(t, err)

	st, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, "Persist me", st.Insight)
}
