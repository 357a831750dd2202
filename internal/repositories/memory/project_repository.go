package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
)

// ProjectRepository is an in-memory implementation of
// repositories.ProjectRepository.
type ProjectRepository struct {
	mu          sync.RWMutex
	projects    map[string]*entities.Project
	order       []string
	memberships *MembershipRepository
}

// NewProjectRepository creates an empty in-memory project repository.
// Deletes cascade through memberships, which may be nil when membership
// tracking is not needed.
func NewProjectRepository(memberships *MembershipRepository) *ProjectRepository {
	return &ProjectRepository{
		projects:    make(map[string]*entities.Project),
		memberships: memberships,
	}
}

// Create stores a new project, assigning an ID and defaulting the status to
// active when unset.
func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = entities.ProjectStatusActive
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := project.Validate(); err != nil {
		return fmt.Errorf("failed to validate project: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *project
	r.projects[project.ID] = &stored
	r.order = append(r.order, project.ID)
	return nil
}

// GetByID retrieves a project by ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, repositories.ErrNotFound)
	}
	p := *stored
	return &p, nil
}

// List retrieves all projects ordered by creation time.
func (r *ProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Project, 0, len(r.order))
	for _, id := range r.order {
		if stored, ok := r.projects[id]; ok {
			p := *stored
			out = append(out, &p)
		}
	}
	return out, nil
}

// ListForUser retrieves the projects the user is a member of.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]*entities.Project, error) {
	if r.memberships == nil {
		return nil, nil
	}

	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Project, 0, len(all))
	for _, p := range all {
		member, err := r.memberships.IsProjectMember(ctx, userID, p.ID)
		if err != nil {
			return nil, err
		}
		if member {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update replaces a project's mutable fields.
func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("failed to validate project: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.projects[project.ID]
	if !ok {
		return fmt.Errorf("project %s: %w", project.ID, repositories.ErrNotFound)
	}
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now()
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

// Delete removes a project and its memberships.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.projects[id]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("project %s: %w", id, repositories.ErrNotFound)
	}
	delete(r.projects, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if r.memberships != nil {
		r.memberships.removeProject(id)
	}
	return nil
}

// Count returns the total number of projects.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects), nil
}
