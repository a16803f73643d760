// ABOUTME: Fabricated sample data for demo mode
// ABOUTME: Property and lead libraries plus the seeded conversations, deals and documents

package demo

import (
	"fmt"
	"time"

	"github.com/harperreed/growthdesk/models"
)

const sampleHashtags = "#LuxuryRealEstate #AIConcierge #DemoMode"

var propertyLibrary = []models.Property{
	{
		ID:          "prop-aurora",
		Title:       "Aurora Ridge Residence",
		Address:     "1180 Skyline Drive, Malibu, CA",
		Price:       "$4,850,000",
		Bedrooms:    5,
		Bathrooms:   5.5,
		Area:        "6,200 sq ft",
		Description: "Glass-walled retreat with panoramic Pacific views, a chef's kitchen and a resort-style infinity pool.",
		Highlights:  []string{"Infinity pool", "Home theater", "Smart climate control"},
		Gallery:     []string{"/images/aurora-1.jpg", "/images/aurora-2.jpg", "/images/aurora-3.jpg"},
		Image:       "/images/aurora-1.jpg",
	},
	{
		ID:          "prop-harbor",
		Title:       "Harborview Penthouse",
		Address:     "88 Pier Street, Unit PH2, Seattle, WA",
		Price:       "$2,375,000",
		Bedrooms:    3,
		Bathrooms:   3.5,
		Area:        "3,100 sq ft",
		Description: "Top-floor penthouse with a wraparound terrace overlooking Elliott Bay and private elevator access.",
		Highlights:  []string{"Wraparound terrace", "Concierge", "Two parking stalls"},
		Gallery:     []string{"/images/harbor-1.jpg", "/images/harbor-2.jpg"},
		Image:       "/images/harbor-1.jpg",
	},
	{
		ID:          "prop-cedar",
		Title:       "Cedar Grove Estate",
		Address:     "42 Cedar Lane, Greenwich, CT",
		Price:       "$3,200,000",
		Bedrooms:    6,
		Bathrooms:   6,
		Area:        "7,450 sq ft",
		Description: "Gated colonial on three wooded acres with a guest cottage, tennis court and heated pool.",
		Highlights:  []string{"Guest cottage", "Tennis court", "Wine cellar"},
		Gallery:     []string{"/images/cedar-1.jpg", "/images/cedar-2.jpg"},
		Image:       "/images/cedar-1.jpg",
	},
	{
		ID:          "prop-loft",
		Title:       "SoHo Artist Loft",
		Address:     "214 Mercer Street, New York, NY",
		Price:       "$1,980,000",
		Bedrooms:    2,
		Bathrooms:   2,
		Area:        "2,050 sq ft",
		Description: "Full-floor loft with 14-foot ceilings, exposed brick and oversized factory windows.",
		Highlights:  []string{"Exposed brick", "Keyed elevator", "Cast-iron facade"},
		Gallery:     []string{"/images/loft-1.jpg", "/images/loft-2.jpg"},
		Image:       "/images/loft-1.jpg",
	},
	{
		ID:          "prop-desert",
		Title:       "Desert Bloom Modern",
		Address:     "9 Mesa Verde Court, Scottsdale, AZ",
		Price:       "$1,425,000",
		Bedrooms:    4,
		Bathrooms:   3,
		Area:        "3,600 sq ft",
		Description: "Single-level modern with mountain views, a negative-edge pool and an outdoor kitchen.",
		Highlights:  []string{"Mountain views", "Outdoor kitchen", "Solar array"},
		Gallery:     []string{"/images/desert-1.jpg", "/images/desert-2.jpg"},
		Image:       "/images/desert-1.jpg",
	},
	{
		ID:          "prop-lakeside",
		Title:       "Lakeside Craftsman",
		Address:     "515 Shoreline Road, Austin, TX",
		Price:       "$1,150,000",
		Bedrooms:    4,
		Bathrooms:   3.5,
		Area:        "3,250 sq ft",
		Description: "Renovated craftsman steps from Lake Austin with a boat slip and a detached workshop.",
		Highlights:  []string{"Boat slip", "Detached workshop", "Screened porch"},
		Gallery:     []string{"/images/lakeside-1.jpg", "/images/lakeside-2.jpg"},
		Image:       "/images/lakeside-1.jpg",
	},
}

var leadLibrary = []models.Lead{
	{
		ID:       "lead-1",
		Name:     "Avery Collins",
		Email:    "avery.collins@example.com",
		Phone:    "(310) 555-0142",
		Source:   "Instagram Ad",
		Location: "Malibu, CA",
		Budget:   "$4.5M - $5M",
		Timeline: "Next 60 days",
		Notes:    "Wants ocean views and a home office with natural light.",
		Score:    92,
		Stage:    models.StageTouring,
	},
	{
		ID:       "lead-2",
		Name:     "Marcus Reed",
		Email:    "marcus.reed@example.com",
		Phone:    "(206) 555-0178",
		Source:   "Zillow",
		Location: "Seattle, WA",
		Budget:   "$2M - $2.5M",
		Timeline: "Next 90 days",
		Notes:    "Relocating for a new role and prefers walkable neighborhoods.",
		Score:    84,
		Stage:    models.StageDiscovery,
	},
	{
		ID:       "lead-3",
		Name:     "Priya Natarajan",
		Email:    "priya.n@example.com",
		Phone:    "(203) 555-0119",
		Source:   "Referral",
		Location: "Greenwich, CT",
		Budget:   "$3M+",
		Timeline: "This spring",
		Notes:    "Needs a guest suite for visiting parents and room for a home gym.",
		Score:    88,
		Stage:    models.StageNegotiating,
	},
	{
		ID:       "lead-4",
		Name:     "Jordan Blake",
		Email:    "jordan.blake@example.com",
		Phone:    "(212) 555-0163",
		Source:   "Open House",
		Location: "New York, NY",
		Budget:   "$1.8M - $2.1M",
		Timeline: "Within 6 months",
		Notes:    "First-time buyer who loves loft layouts and exposed brick.",
		Score:    71,
		Stage:    models.StageNewInquiry,
	},
	{
		ID:       "lead-5",
		Name:     "Elena Torres",
		Email:    "elena.torres@example.com",
		Phone:    "(480) 555-0107",
		Source:   "Website Chat",
		Location: "Scottsdale, AZ",
		Budget:   "$1.2M - $1.5M",
		Timeline: "Flexible",
		Notes:    "Looking for a low-maintenance winter home.",
		Score:    67,
		Stage:    models.StageDiscovery,
	},
	{
		ID:       "lead-6",
		Name:     "Samuel Okafor",
		Email:    "samuel.okafor@example.com",
		Phone:    "(512) 555-0190",
		Source:   "Facebook Campaign",
		Location: "Austin, TX",
		Budget:   "$1M - $1.2M",
		Timeline: "Next 30 days",
		Notes:    "Pre-approved and wants a lake view plus a workshop.",
		Score:    79,
		Stage:    models.StageTouring,
	},
}

// seededLeadCount is how many library leads start in the pipeline.
const seededLeadCount = 4

const sampleInsight = "Hot leads are answering video walkthroughs twice as fast this week. Prioritize Avery and Priya for same-day follow-ups."

// PropertyLibrary returns a copy of the static property catalogue.
func PropertyLibrary() []models.Property {
	out := make([]models.Property, len(propertyLibrary))
	for i, p := range propertyLibrary {
		out[i] = cloneProperty(p)
	}
	return out
}

// LeadLibrary returns a copy of the lead templates used for seeding and library picks.
func LeadLibrary() []models.Lead {
	return cloneSlice(leadLibrary)
}

// seedState builds a fresh sample-mode aggregate anchored at now.
func seedState(now time.Time) State {
	conversations := seedConversations(now)

	leads := make([]models.Lead, 0, seededLeadCount)
	for i, tmpl := range leadLibrary[:seededLeadCount] {
		lead := tmpl
		lead.Status = models.LeadStatusActive
		lead.LastContact = []string{"2 hours ago", "yesterday", "1 hour ago", "3 days ago"}[i]
		lead.CreatedAt = now.Add(-time.Duration(i+1) * 26 * time.Hour)
		for _, c := range conversations {
			if c.LeadID == lead.ID {
				lead.ConversationID = c.ID
			}
		}
		leads = append(leads, lead)
	}

	active := cloneProperty(propertyLibrary[0])
	return State{
		SampleMode:           true,
		Leads:                leads,
		MarketingPosts:       seedPosts(),
		Messages:             feedFromConversation(conversations[0], 4),
		AssistantChat:        seedAssistantChat(),
		Documents:            seedDocuments(now),
		Deals:                seedDeals(now),
		Conversations:        conversations,
		ActiveConversationID: conversations[0].ID,
		Insight:              sampleInsight,
		Notifications:        seedNotifications(now),
		ActiveProperty:       &active,
		ScheduledFollowUps:   []models.ScheduledFollowUp{},
	}
}

func seedConversations(now time.Time) []models.Conversation {
	msg := func(id, sender, body string, ago time.Duration) models.ConversationMessage {
		return models.ConversationMessage{ID: id, Sender: sender, Body: body, Timestamp: now.Add(-ago)}
	}

	return []models.Conversation{
		{
			ID:         "conv-1",
			ClientName: "Avery Collins",
			LeadID:     "lead-1",
			Stage:      models.StageTouring,
			Summary:    "Touring oceanfront listings this weekend.",
			Unread:     true,
			Messages: []models.ConversationMessage{
				msg("msg-1", models.SenderClient, "Hi! Could we see Aurora Ridge this Saturday morning?", 3*time.Hour),
				msg("msg-2", models.SenderAgent, "Absolutely, you are booked for 10am. I will send the disclosure packet tonight.", 170*time.Minute),
				msg("msg-3", models.SenderAssistant, "Suggested: share the pool maintenance history before the tour.", 165*time.Minute),
				msg("msg-4", models.SenderClient, "Perfect. Can you also check whether the seller would leave the patio furniture?", 40*time.Minute),
			},
		},
		{
			ID:         "conv-2",
			ClientName: "Marcus Reed",
			LeadID:     "lead-2",
			Stage:      models.StageDiscovery,
			Summary:    "Comparing penthouses near the waterfront.",
			Messages: []models.ConversationMessage{
				msg("msg-5", models.SenderAgent, "Hi Marcus, I pulled three penthouse options near your new office.", 26*time.Hour),
				msg("msg-6", models.SenderClient, "Thanks! The Harborview unit looks great. What are the HOA fees?", 25*time.Hour),
				msg("msg-7", models.SenderAgent, "HOA is $1,150 per month and covers concierge and parking.", 24*time.Hour),
			},
		},
		{
			ID:         "conv-3",
			ClientName: "Priya Natarajan",
			LeadID:     "lead-3",
			Stage:      models.StageNegotiating,
			Summary:    "Counteroffer pending on Cedar Grove.",
			Unread:     true,
			Messages: []models.ConversationMessage{
				msg("msg-8", models.SenderAgent, "The seller countered at $3.15M with a 21-day close.", 5*time.Hour),
				msg("msg-9", models.SenderClient, "Can we ask them to cover the roof inspection repairs?", time.Hour),
			},
		},
	}
}

// feedFromConversation flattens the last n messages into the dashboard concierge feed.
func feedFromConversation(c models.Conversation, n int) []models.FeedMessage {
	msgs := c.Messages
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	feed := make([]models.FeedMessage, 0, len(msgs))
	for _, m := range msgs {
		sender := c.ClientName
		switch m.Sender {
		case models.SenderAssistant:
			sender = "AI Concierge"
		case models.SenderAgent:
			sender = "You"
		}
		feed = append(feed, models.FeedMessage{Sender: sender, Text: m.Body})
	}
	return feed
}

func seedPosts() []models.MarketingPost {
	posts := make([]models.MarketingPost, 0, 4)
	for i, p := range propertyLibrary[:4] {
		platform := "Instagram"
		if i%2 == 1 {
			platform = "LinkedIn"
		}
		posts = append(posts, models.MarketingPost{
			Platform: platform,
			Title:    p.Title,
			Caption:  fmt.Sprintf("%s just hit the market. %s", p.Address, p.Description),
			Hashtags: sampleHashtags,
		})
	}
	return posts
}

func seedAssistantChat() []models.ChatMessage {
	return []models.ChatMessage{
		{Role: models.RoleAssistant, Content: "Good morning! Two hot leads are waiting on replies and one contract still needs signatures."},
		{Role: models.RoleUser, Content: "Which lead should I call first?"},
		{Role: models.RoleAssistant, Content: "Start with Avery Collins. The lead scored 92 and asked about Aurora Ridge tour times within the last hour."},
	}
}

func seedDocuments(now time.Time) []models.Document {
	return []models.Document{
		{ID: "doc-1", Title: "Purchase Agreement - Aurora Ridge", Property: "Aurora Ridge Residence", Size: "2.4 MB", UploadedAt: now.Add(-48 * time.Hour), Status: models.DocumentReady},
		{ID: "doc-2", Title: "Inspection Report - Cedar Grove", Property: "Cedar Grove Estate", Size: "5.1 MB", UploadedAt: now.Add(-24 * time.Hour), Status: models.DocumentReady},
		{ID: "doc-3", Title: "Disclosure Packet - Harborview", Property: "Harborview Penthouse", Size: "1.8 MB", UploadedAt: now.Add(-3 * time.Hour), Status: models.DocumentProcessing},
	}
}

func seedDeals(now time.Time) []models.Deal {
	closed := func(days int) string {
		return now.AddDate(0, 0, -days).Format("Jan 2, 2006")
	}
	return []models.Deal{
		{
			ID:           "deal-1",
			Property:     "Marina Bay Villa",
			Address:      "301 Marina Way, Newport Beach, CA",
			Buyer:        "Olivia Chen",
			Seller:       "Bayside Holdings LLC",
			Price:        3450000,
			Commission:   103500,
			ClosedOn:     closed(12),
			Neighborhood: "Newport Coast",
			Summary:      "Cash offer, 14-day close, seller credit for dock repairs.",
		},
		{
			ID:           "deal-2",
			Property:     "Hilltop Modern",
			Address:      "77 Summit Avenue, Denver, CO",
			Buyer:        "The Patel Family",
			Seller:       "Gregory Lin",
			Price:        1875000,
			Commission:   56250,
			ClosedOn:     closed(27),
			Neighborhood: "Highlands",
			Summary:      "Conventional financing with an appraisal gap covered by the buyer.",
		},
		{
			ID:           "deal-3",
			Property:     "Brownstone on Bergen",
			Address:      "512 Bergen Street, Brooklyn, NY",
			Buyer:        "Nina Alvarez",
			Seller:       "Estate of R. Hughes",
			Price:        2600000,
			Commission:   78000,
			ClosedOn:     closed(41),
			Neighborhood: "Park Slope",
			Summary:      "Estate sale sold as-is after two competing offers.",
		},
	}
}

func seedNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{ID: "note-1", Title: "New lead captured", Detail: "Avery Collins requested a private tour.", Timestamp: now.Add(-30 * time.Minute)},
		{ID: "note-2", Title: "Contract ready", Detail: "The Aurora Ridge purchase agreement is ready for signatures.", Timestamp: now.Add(-2 * time.Hour)},
		{ID: "note-3", Title: "Market insight", Detail: "Luxury inventory in Malibu dropped 8% week over week.", Timestamp: now.Add(-5 * time.Hour)},
	}
}
