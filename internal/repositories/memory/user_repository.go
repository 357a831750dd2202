// Package memory provides map-backed repository implementations. They mirror
// the postgres contracts (ordering, not-found wrapping, membership cascade)
// and serve tests and examples that run without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
)

// UserRepository is an in-memory implementation of repositories.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.Principal
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entities.Principal)}
}

// Create stores a new user, assigning an ID when none is set.
func (r *UserRepository) Create(ctx context.Context, user *entities.Principal) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("failed to validate user: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repositories.ErrNotFound)
	}
	u := *stored
	return &u, nil
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.users {
		if stored.Email == email {
			u := *stored
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, repositories.ErrNotFound)
}

// List retrieves all users ordered by name.
func (r *UserRepository) List(ctx context.Context) ([]*entities.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Principal, 0, len(r.users))
	for _, stored := range r.users {
		u := *stored
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update replaces a user's mutable fields.
func (r *UserRepository) Update(ctx context.Context, user *entities.Principal) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("failed to validate user: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, repositories.ErrNotFound)
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// CountByRole returns the number of users per role.
func (r *UserRepository) CountByRole(ctx context.Context) (map[entities.Role]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[entities.Role]int)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}
