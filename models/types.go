// ABOUTME: Data models for the demo growth workspace
// ABOUTME: Defines Lead, Conversation, Deal, Document, MarketingPost and follow-up structs
package models

import (
	"time"
)

type Lead struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Source         string    `json:"source"`
	Location       string    `json:"location"`
	Budget         string    `json:"budget"`
	Status         string    `json:"status"`
	Stage          string    `json:"stage"`
	Timeline       string    `json:"timeline"`
	LastContact    string    `json:"lastContact"`
	Notes          string    `json:"notes"`
	Score          int       `json:"score"`
	ConversationID string    `json:"conversationId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FirstName returns the first whitespace-separated token of the lead name.
func (l Lead) FirstName() string {
	return FirstName(l.Name)
}

type Conversation struct {
	ID         string                `json:"id"`
	ClientName string                `json:"clientName"`
	LeadID     string                `json:"leadId,omitempty"`
	Stage      string                `json:"stage,omitempty"`
	Summary    string                `json:"summary,omitempty"`
	Unread     bool                  `json:"unread"`
	Messages   []ConversationMessage `json:"messages"`
}

type ConversationMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

type Deal struct {
	ID           string `json:"id"`
	Property     string `json:"property"`
	Address      string `json:"address,omitempty"`
	Buyer        string `json:"buyer"`
	Seller       string `json:"seller"`
	Price        int64  `json:"price"`      // whole dollars
	Commission   int64  `json:"commission"` // whole dollars
	ClosedOn     string `json:"closedOn"`
	Neighborhood string `json:"neighborhood"`
	Summary      string `json:"summary,omitempty"`
}

type Document struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Property   string    `json:"property"`
	Size       string    `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	Status     string    `json:"status"`
}

// MarketingPost is keyed by Title for removal; titles are not guaranteed unique.
type MarketingPost struct {
	Platform string `json:"platform"`
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	Hashtags string `json:"hashtags"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

type ScheduledFollowUp struct {
	ID             string    `json:"id"`
	LeadID         string    `json:"leadId"`
	LeadName       string    `json:"leadName"`
	ConversationID string    `json:"conversationId,omitempty"`
	ScheduledFor   time.Time `json:"scheduledFor"`
	Status         string    `json:"status"`
	Message        string    `json:"message"`
	Delay          string    `json:"delay"`
}

type FollowUpDraft struct {
	LeadID      string    `json:"leadId"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type Property struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Price       string   `json:"price"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   float64  `json:"bathrooms"`
	Area        string   `json:"area"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Gallery     []string `json:"gallery"`
	Image       string   `json:"image"`
}

// FeedMessage is a flattened concierge feed entry shown on the dashboard.
type FeedMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ChatMessage is one turn of the assistant widget conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Lead stages.
const (
	StageNewInquiry  = "New Inquiry"
	StageDiscovery   = "Discovery"
	StageTouring     = "Touring"
	StageNegotiating = "Negotiating"
	StageClosed      = "Closed"
)

// LeadStatusActive is the status given to every lead entering the pipeline.
const LeadStatusActive = "Active Lead"

// Message senders.
const (
	SenderAgent     = "agent"
	SenderClient    = "client"
	SenderAssistant = "assistant"
)

// Document statuses.
const (
	DocumentProcessing = "processing"
	DocumentReady      = "ready"
)

// Scheduled follow-up statuses.
const (
	FollowUpPending = "pending"
	FollowUpSent    = "sent"
	FollowUpSnoozed = "snoozed"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
