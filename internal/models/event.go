package models

import "time"

// Event represents a loggable action in a user's activity feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "user.signin", "task.created"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	UserID    *string   `json:"userId,omitempty"` // nil for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
