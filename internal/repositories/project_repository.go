package repositories

import (
	"context"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create stores a new project; the ID is assigned by the repository
	Create(ctx context.Context, project *entities.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (*entities.Project, error)

	// List retrieves all projects ordered by creation time
	List(ctx context.Context) ([]*entities.Project, error)

	// ListForUser retrieves the projects the user is a member of
	ListForUser(ctx context.Context, userID string) ([]*entities.Project, error)

	// Update replaces a project's mutable fields
	Update(ctx context.Context, project *entities.Project) error

	// Delete removes a project and its memberships
	Delete(ctx context.Context, id string) error

	// Count returns the total number of projects
	Count(ctx context.Context) (int, error)
}
