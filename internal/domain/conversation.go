package domain

import "time"

// Conversation message roles. Outbound portal texts are always recorded as
// the assistant side of the thread.
const (
	RoleAssistant = "assistant"
	RoleLead      = "lead"
)

// ConversationMessage is one unit of SMS history. A row is written only as a
// side effect of a successful outbound send.
type ConversationMessage struct {
	ID            string
	LeadID        *int64
	Role          string
	Content       string
	PhoneNumber   string
	IsUnknownLead bool
	CreatedAt     time.Time
}
