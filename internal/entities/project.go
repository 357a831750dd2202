package entities

import (
	"fmt"
	"time"
)

// ProjectStatus tracks where a project sits in its lifecycle.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusArchived  ProjectStatus = "archived"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project represents a collaboration project. Membership in a project is
// what grants non-administrators instance-level access to the project and
// to resources scoped under it.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	OwnerID     string        `json:"ownerId"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Validate checks if the project is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.OwnerID == "" {
		return fmt.Errorf("project owner ID is required")
	}
	switch p.Status {
	case ProjectStatusActive, ProjectStatusArchived, ProjectStatusCompleted:
	default:
		return fmt.Errorf("unknown project status: %s", p.Status)
	}
	return nil
}
