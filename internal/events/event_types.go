package events

import (
	"time"

	"github.com/praceando/event-platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginRejected  EventType = "login_rejected"
	EventTokenRejected  EventType = "token_rejected"
	EventAccessDenied   EventType = "access_denied"
)

// Event represents an authentication event emitted by the gateway or the
// login flow. Subject is empty when no identity was established.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject,omitempty"`
	Path      string      `json:"path,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Role      domain.RoleName `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// LoginRejectedPayload payload. Reason is for the audit log only and never
// reaches the client response.
type LoginRejectedPayload struct {
	Reason string `json:"reason"`
}

// TokenRejectedPayload payload.
type TokenRejectedPayload struct {
	Reason string `json:"reason"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Role domain.RoleName `json:"role"`
}
