// ABOUTME: Versioned snapshot encoding and store restore
// ABOUTME: Restored payloads are merged with a fresh seed for any fields they lack

package demo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/growthdesk/models"
	"github.com/harperreed/growthdesk/persist"
)

// SnapshotVersion is the envelope version written by EncodeSnapshot.
const SnapshotVersion = 2

var (
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	ErrSnapshotCorrupt = errors.New("corrupt snapshot")
)

type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// EncodeSnapshot wraps the state in a versioned envelope. Nil lists are written as [].
func EncodeSnapshot(st State) ([]byte, error) {
	st = normalizeLists(st)
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return json.Marshal(envelope{Version: SnapshotVersion, State: raw})
}

// DecodeSnapshot reads an envelope. A payload without a version is read as the
// bare legacy state object.
func DecodeSnapshot(data []byte) (State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}

	raw := []byte(env.State)
	switch env.Version {
	case SnapshotVersion:
		if len(raw) == 0 {
			return State{}, fmt.Errorf("%w: missing state", ErrSnapshotCorrupt)
		}
	case 0:
		raw = data
	default:
		return State{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, env.Version)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return st, nil
}

// Restore loads the persisted snapshot. A missing or unreadable snapshot keeps the
// defaults; only backend failures are returned.
func (s *Store) Restore() error {
	if s.persister == nil {
		return nil
	}

	data, err := s.persister.Load(StorageKey)
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	loaded, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.Warn("ignoring persisted snapshot", "err", err)
		return nil
	}

	s.mu.Lock()
	s.state = mergeRestored(loaded, seedState(s.clock.Now()))
	s.rev++
	snap := s.state.Clone()
	s.mu.Unlock()

	s.logger.Info("restored demo state", "sample_mode", snap.SampleMode, "leads", len(snap.Leads))
	s.notify(Change{Op: "restore", State: snap})
	return nil
}

// mergeRestored fills absent fields of a sample-mode payload from the seed.
// A payload with sample mode off restores to the empty live state.
func mergeRestored(loaded, seed State) State {
	if !loaded.SampleMode {
		return emptyState()
	}

	out := loaded
	if len(out.Leads) == 0 {
		out.Leads = seed.Leads
	}
	if out.MarketingPosts == nil {
		out.MarketingPosts = seed.MarketingPosts
	}
	if out.Messages == nil {
		out.Messages = seed.Messages
	}
	if out.AssistantChat == nil {
		out.AssistantChat = seed.AssistantChat
	}
	if out.Documents == nil {
		out.Documents = seed.Documents
	}
	if out.Deals == nil {
		out.Deals = seed.Deals
	}
	if out.Conversations == nil {
		out.Conversations = seed.Conversations
	}
	if out.ActiveConversationID == "" {
		out.ActiveConversationID = seed.ActiveConversationID
	}
	if out.Notifications == nil {
		out.Notifications = seed.Notifications
	}
	if out.Insight == "" {
		out.Insight = seed.Insight
	}
	if out.ActiveProperty == nil {
		out.ActiveProperty = seed.ActiveProperty
	}
	out.FollowUpDraft = nil

	followUps := make([]models.ScheduledFollowUp, 0, len(out.ScheduledFollowUps))
	for _, f := range out.ScheduledFollowUps {
		if f.Status != models.FollowUpSent {
			followUps = append(followUps, f)
		}
	}
	out.ScheduledFollowUps = followUps
	return out
}

func normalizeLists(st State) State {
	if st.Leads == nil {
		st.Leads = []models.Lead{}
	}
	if st.MarketingPosts == nil {
		st.MarketingPosts = []models.MarketingPost{}
	}
	if st.Messages == nil {
		st.Messages = []models.FeedMessage{}
	}
	if st.AssistantChat == nil {
		st.AssistantChat = []models.ChatMessage{}
	}
	if st.Documents == nil {
		st.Documents = []models.Document{}
	}
	if st.Deals == nil {
		st.Deals = []models.Deal{}
	}
	if st.Conversations == nil {
		st.Conversations = []models.Conversation{}
	}
	if st.Notifications == nil {
		st.Notifications = []models.Notification{}
	}
	if st.ScheduledFollowUps == nil {
		st.ScheduledFollowUps = []models.ScheduledFollowUp{}
	}
	return st
}
