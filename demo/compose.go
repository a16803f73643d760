// ABOUTME: Follow-up delay labels and canned message composition
// ABOUTME: Builds follow-up, quick message and draft text from a lead

package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/growthdesk/models"
)

// DelayLabels lists the follow-up delays offered in the lead engine, shortest first.
var DelayLabels = []string{"1 hour", "4 hours", "1 day", "2 days", "3 days", "1 week"}

var delayHours = map[string]int{
	"1 hour":  1,
	"4 hours": 4,
	"1 day":   24,
	"2 days":  48,
	"3 days":  72,
	"1 week":  168,
}

// DefaultDelayHours applies to labels missing from DelayLabels.
const DefaultDelayHours = 24

// DelayHours maps a delay label to its hour offset.
func DelayHours(label string) int {
	if h, ok := delayHours[label]; ok {
		return h
	}
	return DefaultDelayHours
}

// DelayDuration is DelayHours as a time.Duration.
func DelayDuration(label string) time.Duration {
	return time.Duration(DelayHours(label)) * time.Hour
}

// ComposeFollowUp writes the review-before-send follow-up draft for a lead.
func ComposeFollowUp(lead models.Lead) string {
	location := strings.TrimSpace(lead.Location)
	if location == "" {
		location = "your target area"
	}

	parts := []string{
		fmt.Sprintf("Hi %s, just circling back on your search in %s.", lead.FirstName(), location),
	}
	if t := strings.TrimSpace(lead.Timeline); t != "" {
		parts = append(parts, fmt.Sprintf("I penciled in options that match your %s timeline.", t))
	}
	if n := strings.TrimSpace(lead.Notes); n != "" {
		parts = append(parts, "Highlights from my notes: "+n)
	}
	parts = append(parts, "Let me know if you would like fresh tours or refined comps and I will arrange everything this afternoon.")

	return strings.Join(parts, " ")
}

// ComposeQuickMessage writes the short text used for quick sends and scheduled follow-ups.
func ComposeQuickMessage(lead models.Lead) string {
	location := strings.TrimSpace(lead.Location)
	if location == "" {
		location = "your target area"
	}
	timeline := strings.ToLower(strings.TrimSpace(lead.Timeline))
	if timeline == "" {
		timeline = "upcoming"
	}
	return fmt.Sprintf(
		"Hi %s, I just unlocked fresh homes in %s. They line up with your %s move window. Want me to fast-track a private tour?",
		lead.FirstName(), location, timeline,
	)
}

// DraftKind selects a canned concierge draft.
type DraftKind string

const (
	DraftMessage       DraftKind = "message"
	DraftReviewRequest DraftKind = "reviewRequest"
	DraftReferral      DraftKind = "referral"
)

// ParseDraftKind accepts the three canned kinds.
func ParseDraftKind(s string) (DraftKind, bool) {
	switch DraftKind(s) {
	case DraftMessage, DraftReviewRequest, DraftReferral:
		return DraftKind(s), true
	}
	return "", false
}

// ComposeDraft renders the canned draft of the given kind for a client.
func ComposeDraft(kind DraftKind, clientName string) string {
	first := models.FirstName(clientName)
	switch kind {
	case DraftReviewRequest:
		return fmt.Sprintf("Hi %s, thrilled we crossed the finish line together. Would you mind sharing a quick 5-star review while the experience is fresh?", first)
	case DraftReferral:
		return fmt.Sprintf("Hi %s, thanks again for trusting us. If anyone in your circle is planning a move this year, I would love to give them the same VIP experience.", first)
	default:
		return fmt.Sprintf("Hey %s, just confirmed access for Saturday's architect walkthrough. Shall I lock in transportation and refreshments?", first)
	}
}
