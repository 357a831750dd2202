package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
)

// MembershipRepository is an in-memory implementation of
// repositories.MembershipRepository. It resolves members through the user
// repository the same way the postgres implementation joins the users table.
type MembershipRepository struct {
	mu      sync.RWMutex
	members map[string]map[string]struct{}
	users   *UserRepository
}

// NewMembershipRepository creates an empty in-memory membership repository
// resolving member details through users.
func NewMembershipRepository(users *UserRepository) *MembershipRepository {
	return &MembershipRepository{
		members: make(map[string]map[string]struct{}),
		users:   users,
	}
}

// AddMember adds a user to a project; adding an existing member is a no-op.
func (r *MembershipRepository) AddMember(ctx context.Context, projectID string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.members[projectID]
	if !ok {
		set = make(map[string]struct{})
		r.members[projectID] = set
	}
	set[userID] = struct{}{}
	return nil
}

// RemoveMember removes a user from a project.
func (r *MembershipRepository) RemoveMember(ctx context.Context, projectID string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.members[projectID]
	if !ok {
		return fmt.Errorf("membership %s/%s: %w", projectID, userID, repositories.ErrNotFound)
	}
	if _, ok := set[userID]; !ok {
		return fmt.Errorf("membership %s/%s: %w", projectID, userID, repositories.ErrNotFound)
	}
	delete(set, userID)
	return nil
}

// IsProjectMember reports whether the user belongs to the project.
func (r *MembershipRepository) IsProjectMember(ctx context.Context, userID string, projectID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.members[projectID]
	if !ok {
		return false, nil
	}
	_, ok = set[userID]
	return ok, nil
}

// ListMembers retrieves the users belonging to a project ordered by name.
func (r *MembershipRepository) ListMembers(ctx context.Context, projectID string) ([]*entities.Principal, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.members[projectID]))
	for id := range r.members[projectID] {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	out := make([]*entities.Principal, 0, len(ids))
	for _, id := range ids {
		u, err := r.users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve member %s: %w", id, err)
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// removeProject drops every membership of a project. Used by the project
// repository to cascade deletes.
func (r *MembershipRepository) removeProject(projectID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, projectID)
}
