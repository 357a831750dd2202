package repositories

import (
	"context"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
)

// MembershipRepository defines the interface for project membership data access.
// Membership is the predicate behind instance-level authorization: a user may
// touch a scoped resource only when it belongs to a project they are in.
type MembershipRepository interface {
	// AddMember adds a user to a project; adding an existing member is a no-op
	AddMember(ctx context.Context, projectID string, userID string) error

	// RemoveMember removes a user from a project
	RemoveMember(ctx context.Context, projectID string, userID string) error

	// IsProjectMember reports whether the user belongs to the project
	IsProjectMember(ctx context.Context, userID string, projectID string) (bool, error)

	// ListMembers retrieves the users belonging to a project ordered by name
	ListMembers(ctx context.Context, projectID string) ([]*entities.Principal, error)
}
