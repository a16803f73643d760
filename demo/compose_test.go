package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/growthdesk/models"
)

func TestComposeFollowUp(t *testing.T) {
	lead := models.Lead{
		Name:     "Priya Natarajan",
		Location: "Greenwich, CT",
		Timeline: "This spring",
		Notes:    "Needs a guest suite.",
	}

	assert.Equal(t,
		"Hi Priya, just circling back on your search in Greenwich, CT. "+
			"I penciled in options that match your This spring timeline. "+
			"Highlights from my notes: Needs a guest suite. "+
			"Let me know if you would like fresh tours or refined comps and I will arrange everything this afternoon.",
		ComposeFollowUp(lead))
}

func TestComposeFollowUpSkipsEmptyParts(t *testing.T) {
	got := ComposeFollowUp(models.Lead{Name: "Jordan Blake", Location: "New York, NY"})

	assert.Equal(t,
		"Hi Jordan, just circling back on your search in New York, NY. "+
			"Let me know if you would like fresh tours or refined comps and I will arrange everything this afternoon.",
		got)
}

func TestComposeQuickMessageFallsBackOnLocation(t *testing.T) {
	got := ComposeQuickMessage(models.Lead{Name: "Elena Torres", Timeline: "Flexible"})
	assert.Equal(t, "Hi Elena, I just unlocked fresh homes in your target area. They line up with your flexible move window. Want me to fast-track a private tour?", got)
}

func TestComposeDraftKinds(t *testing.T) {
	assert.Contains(t, ComposeDraft(DraftReviewRequest, "Avery Collins"), "Hi Avery, thrilled we crossed the finish line")
	assert.Contains(t, ComposeDraft(DraftMessage, "Avery Collins"), "Hey Avery, just confirmed access")

	kind, ok := ParseDraftKind("reviewRequest")
	assert.True(t, ok)
	assert.Equal(t, DraftReviewRequest, kind)

	_, ok = ParseDraftKind("poem")
	assert.False(t, ok)
}
