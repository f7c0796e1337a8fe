package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventProjectCreated EventType = "project.created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	ManagerID string `json:"manager_id"`
	Priority  string `json:"priority"`
}
