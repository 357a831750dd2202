package repositories

import (
	"context"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create stores a new user; the ID is assigned by the repository
	Create(ctx context.Context, user *entities.Principal) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.Principal, error)

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*entities.Principal, error)

	// List retrieves all users ordered by name
	List(ctx context.Context) ([]*entities.Principal, error)

	// Update replaces a user's mutable fields
	Update(ctx context.Context, user *entities.Principal) error

	// CountByRole returns the number of users per role
	CountByRole(ctx context.Context) (map[entities.Role]int, error)
}
