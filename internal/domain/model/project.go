package model

import (
	"time"
)

type ProjectStatus string
type ProjectVisibility string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusArchived  ProjectStatus = "archived"
	ProjectStatusCompleted ProjectStatus = "completed"

	VisibilityPrivate ProjectVisibility = "private"
	VisibilityPublic  ProjectVisibility = "public"
	VisibilityTeam    ProjectVisibility = "team"
)

type Project struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	RepositoryURL string            `json:"repository_url"`
	Status        ProjectStatus     `json:"status"`
	Visibility    ProjectVisibility `json:"visibility"`
	OwnerID       string            `json:"owner_id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ValidVisibility reports whether v is one of the accepted visibility values.
func ValidVisibility(v string) bool {
	switch ProjectVisibility(v) {
	case VisibilityPrivate, VisibilityPublic, VisibilityTeam:
		return true
	}
	return false
}
