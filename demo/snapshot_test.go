package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/models"
	"github.com/harperreed/growthdesk/persist"
)

func restoredStore(t *testing.T, mem *persist.MemoryStore, clock *FakeClock) *Store {
	t.Helper()
	store := NewStore(Options{Clock: clock, Random: NewSequenceRandom(0), Persister: mem})
	require.NoError(t, store.Restore())
	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, clock, mem := newTestStore(t, 3)
	followUps := NewFollowUps(store)

	store.CreateLead(LeadInput{Name: "Casey Morgan", Location: "Denver, CO"})
	_, ok := followUps.Schedule("lead-2", "2 days")
	require.True(t, ok)
	store.InjectClientConversationMessage("conv-2", "Can we tour Friday?")
	store.PrepareFollowUp("lead-1")

	want := store.Snapshot()
	want.FollowUpDraft = nil

	got := restoredStore(t, mem, clock).Snapshot()
	assert.Equal(t, want, got)
}

func TestRestoreWithoutSnapshotKeepsDefaults(t *testing.T) {
	clock := NewFakeClock(testStart)
	store := restoredStore(t, persist.NewMemoryStore(), clock)

	st := store.Snapshot()
	assert.True(t, st.SampleMode)
	assert.Len(t, st.Leads, seededLeadCount)
}

func TestRestoreLiveModeStaysLive(t *testing.T) {
	store, clock, mem := newTestStore(t)
	store.ClearSampleData()

	st := restoredStore(t, mem, clock).Snapshot()
	assert.False(t, st.SampleMode)
	assert.Empty(t, st.Leads)
	require.NotNil(t, st.ActiveProperty)
}

func TestRestoreIgnoresCorruptPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{{{"},
		{"future version", `{"version":9,"state":{"isSampleMode":false}}`},
		{"missing state", `{"version":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := persist.NewMemoryStore()
			require.NoError(t, mem.Save(StorageKey, []byte(tt.payload)))

			st := restoredStore(t, mem, NewFakeClock(testStart)).Snapshot()
			assert.True(t, st.SampleMode, "defaults survive")
			assert.Len(t, st.Leads, seededLeadCount)
		})
	}
}

func TestDecodeSnapshotErrors(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"version":1,"state":{}}`))
	assert.ErrorIs(t, err, ErrSnapshotVersion)

	_, err = DecodeSnapshot([]byte(`[]`))
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestRestoreMergesLegacyPayload(t *testing.T) {
	mem := persist.NewMemoryStore()
	legacy := `{"isSampleMode":true,"leads":[],"documents":[],"insight":"Kept"}`
	require.NoError(t, mem.Save(StorageKey, []byte(legacy)))

	st := restoredStore(t, mem, NewFakeClock(testStart)).Snapshot()

	assert.Len(t, st.Leads, seededLeadCount, "empty leads are reseeded")
	assert.Empty(t, st.Documents, "explicitly empty lists are kept")
	assert.Len(t, st.Deals, 3, "absent lists come from the seed")
	assert.Equal(t, "Kept", st.Insight)
	assert.NotNil(t, st.ActiveProperty)
}

func TestRestoreDefaultsActiveConversation(t *testing.T) {
	mem := persist.NewMemoryStore()
	payload := `{"isSampleMode":true,"conversations":[{"id":"conv-9","clientName":"Sam","unread":false,"messages":[]}]}`
	require.NoError(t, mem.Save(StorageKey, []byte(payload)))

	st := restoredStore(t, mem, NewFakeClock(testStart)).Snapshot()

	require.Len(t, st.Conversations, 1)
	assert.Equal(t, "conv-9", st.Conversations[0].ID)
	assert.Equal(t, seedState(testStart).ActiveConversationID, st.ActiveConversationID)
}

func TestRestoreDropsSentFollowUpsAndDraft(t *testing.T) {
	clock := NewFakeClock(testStart)
	seeded := seedState(testStart)
	seeded.FollowUpDraft = &models.FollowUpDraft{LeadID: "lead-1", Content: "draft"}
	seeded.ScheduledFollowUps = []models.ScheduledFollowUp{
		{ID: "a", LeadID: "lead-1", Status: models.FollowUpPending},
		{ID: "b", LeadID: "lead-2", Status: models.FollowUpSent},
		{ID: "c", LeadID: "lead-3", Status: models.FollowUpSnoozed},
	}
	data, err := EncodeSnapshot(seeded)
	require.NoError(t, err)

	mem := persist.NewMemoryStore()
	require.NoError(t, mem.Save(StorageKey, data))

	st := restoredStore(t, mem, clock).Snapshot()
	assert.Nil(t, st.FollowUpDraft)
	require.Len(t, st.ScheduledFollowUps, 2)
	assert.Equal(t, "a", st.ScheduledFollowUps[0].ID)
	assert.Equal(t, "c", st.ScheduledFollowUps[1].ID)
}

func TestEncodeSnapshotWritesEmptyLists(t *testing.T) {
	data, err := EncodeSnapshot(State{SampleMode: true})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":2`)
	assert.Contains(t, string(data), `"leads":[]`)
	assert.NotContains(t, string(data), `"deals":null`)
}
