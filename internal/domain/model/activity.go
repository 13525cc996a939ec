package model

import (
	"time"
)

const (
	ActivityRegistration = "registration"
	ActivityLogin        = "login"
	ActivityLogout       = "logout"
)

// UserActivity is an append-only audit record. Rows are created once and never
// updated or deleted by the application.
type UserActivity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	Metadata     *string   `json:"metadata,omitempty"` // JSON blob
	CreatedAt    time.Time `json:"created_at"`
}
