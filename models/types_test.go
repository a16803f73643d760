// ABOUTME: Tests for workspace data models
// ABOUTME: Validates name helpers and the persisted JSON field names
package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full name", "Avery Collins", "Avery"},
		{"single", "Madonna", "Madonna"},
		{"padded", "  Jordan  Lee ", "Jordan"},
		{"blank", "   ", "there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstName(tt.in); got != tt.want {
				t.Errorf("FirstName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLeadJSONUsesCamelCase(t *testing.T) {
	lead := Lead{
		ID:             "lead-1",
		Name:           "Avery Collins",
		LastContact:    "just now",
		ConversationID: "conv-1",
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(lead)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for _, key := range []string{`"lastContact"`, `"conversationId"`, `"createdAt"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
}
