// ABOUTME: Row types for the live-mode relational backend
// ABOUTME: Mirrors the users, leads, marketing_content, deals, clients and messages tables
package models

import (
	"time"
)

// DemoUserID is the account every request runs as; authentication is delegated elsewhere.
const DemoUserID = "demo-user"

type User struct {
	ID           string    `json:"id"`
	Name         *string   `json:"name"`
	Email        string    `json:"email"`
	OpenAIAPIKey *string   `json:"openai_api_key"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeadRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Intent    *string   `json:"intent"`
	Budget    *string   `json:"budget"`
	Timeline  *string   `json:"timeline"`
	LeadScore *int      `json:"lead_score"`
	Summary   *string   `json:"summary"`
	Stage     *string   `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MarketingContent struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ListingDetails string    `json:"listing_details"`
	ContentType    string    `json:"content_type"`
	GeneratedText  string    `json:"generated_text"`
	CreatedAt      time.Time `json:"created_at"`
}

type DealTask struct {
	Title    string  `json:"title"`
	Owner    string  `json:"owner"`
	DueDate  *string `json:"due_date"`
	Priority string  `json:"priority"`
}

type DealRecord struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	FileURL           *string    `json:"file_url"`
	Buyer             *string    `json:"buyer"`
	Seller            *string    `json:"seller"`
	Price             *float64   `json:"price"`
	Address           *string    `json:"address"`
	MissingSignatures []string   `json:"missing_signatures"`
	Summary           *string    `json:"summary"`
	NextTasks         []DealTask `json:"next_tasks"`
	CreatedAt         time.Time  `json:"created_at"`
}

type Client struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	DealID      *string   `json:"deal_id"`
	Stage       *string   `json:"stage"`
	LastMessage *string   `json:"last_message"`
	NextAction  *string   `json:"next_action"`
	CreatedAt   time.Time `json:"created_at"`
}

type MessageRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ClientID  *string   `json:"client_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Live-mode message senders.
const (
	RecordSenderAgent  = "agent"
	RecordSenderAI     = "ai"
	RecordSenderClient = "client"
)
