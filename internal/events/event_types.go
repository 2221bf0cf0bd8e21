package events

import (
	"time"

	"github.com/spec-kit/profile-service/internal/flow"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProfileUpdateApplied EventType = "profile_update_applied"
	EventProfileUpdateFailed  EventType = "profile_update_failed"
	EventCodeSent             EventType = "verification_code_sent"
	EventPhoneVerified        EventType = "phone_verified"
	EventOrganizationCreated  EventType = "organization_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProfileUpdateAppliedPayload payload.
type ProfileUpdateAppliedPayload struct {
	Step   flow.Step `json:"step"`
	Fields []string  `json:"fields"`
}

// ProfileUpdateFailedPayload payload.
type ProfileUpdateFailedPayload struct {
	Step   flow.Step `json:"step"`
	Fields []string  `json:"fields"`
	Reason string    `json:"reason"`
}

// CodeSentPayload payload. Code is carried only as far as the SMS worker.
type CodeSentPayload struct {
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// PhoneVerifiedPayload payload.
type PhoneVerifiedPayload struct {
	PhoneNumber string `json:"phone_number"`
}

// OrganizationCreatedPayload payload.
type OrganizationCreatedPayload struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
}
