// ABOUTME: Result types and canned responses for the AI tasks
// ABOUTME: Served in testing mode so every endpoint works offline

package ai

// Canned results served when no API key is configured.

type LeadQualificationResult struct {
	Intent    string `json:"intent"`
	Timeline  string `json:"timeline"`
	Budget    string `json:"budget"`
	LeadScore int    `json:"lead_score"`
	Summary   string `json:"summary"`
	Stage     string `json:"stage"`
}

type ContractTask struct {
	Title    string  `json:"title"`
	Owner    string  `json:"owner"`
	DueDate  *string `json:"due_date"`
	Priority string  `json:"priority"`
}

type ContractResult struct {
	Summary           string         `json:"summary"`
	MissingSignatures []string       `json:"missingSignatures"`
	Tasks             []ContractTask `json:"tasks"`
}

var FallbackLeadQualification = LeadQualificationResult{
	Intent:    "buy",
	Timeline:  "1-3 months",
	Budget:    "$900k - $1.1M",
	LeadScore: 86,
	Summary:   "Highly engaged relocation buyer relocating from Seattle, pre-approved and ready to tour modern homes in Austin next month.",
	Stage:     "engaged",
}

const FallbackLeadFollowUp = "Hi there! Appreciate the details you shared. I've shortlisted three West Lake homes that mirror your wish list. " +
	"Can we schedule a quick 15-minute call tomorrow to review them and lock in your tour window?"

const FallbackMarketing = "Experience the pinnacle of Hill Country living at 1188 Monarch Ridge. Floor-to-ceiling glass, a zero-edge pool, " +
	"and a smart wellness suite create vacation energy every day. DM for private showings. #AustinLuxury #ElevatedLiving #MonarchRidge"

const FallbackClientMessage = "Hi Jordan, quick concierge update as we move through inspections. The contractor visit is booked for " +
	"Thursday at 11am, and lender docs are fully cleared. Let me know if you want me on the walkthrough call."

const FallbackInsights = "• 3 hot leads surfaced overnight; prioritize outreach before noon.\n" +
	"• Deal desk flagged missing signatures on the Monarch Ridge contract.\n" +
	"• Concierge satisfaction sits at 92%; send one review request today."

const FallbackAssistant = "Let's focus on the Monarch Ridge deal. Schedule a concierge check-in with Jordan after the inspection " +
	"results and prep a social post highlighting the new staging photos."

// FallbackContract returns a fresh copy so callers may mutate it.
func FallbackContract() ContractResult {
	return ContractResult{
		Summary: "Executed residential purchase agreement for 512 Monarch Ln at $1.45M with financing contingencies cleared. " +
			"Closing is scheduled for March 28 with a 3-day inspection window remaining.",
		MissingSignatures: []string{"Buyer initial on page 7", "Seller signature on addendum B"},
		Tasks: []ContractTask{
			{Title: "Confirm appraisal delivery", Owner: "agent", Priority: "high"},
			{Title: "Coordinate final walkthrough", Owner: "transaction_coordinator", Priority: "medium"},
		},
	}
}

// SampleImages stand in for generated property photos.
var SampleImages = []string{
	"https://images.unsplash.com/photo-1613490493576-7fde63acd811?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1505693314120-0d443867891c?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1493809842364-78817add7ffb?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1505692794403-55b9b9d2a3aa?auto=format&fit=crop&w=1200&q=80",
	"https://images.unsplash.com/photo-1464146072230-91cabc968266?auto=format&fit=crop&w=1200&q=80",
}
