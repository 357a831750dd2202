package authorization

import (
	"context"
	"fmt"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
)

// OwnershipOracle answers instance-level access questions: may this
// principal act on this specific resource instance. Implementations are
// expected to perform I/O; errors signal an infrastructure fault and are
// never folded into a false answer.
type OwnershipOracle interface {
	CanAccess(ctx context.Context, principalID string, resourceID string) (bool, error)
}

// MembershipOracle implements OwnershipOracle on top of project
// membership: a principal can access an instance when it is a member of
// the project the instance is keyed by. All scoped resource kinds share
// this one predicate; the platform does not yet track per-artifact or
// per-conversation ownership separately.
type MembershipOracle struct {
	memberships repositories.MembershipRepository
}

// NewMembershipOracle creates a new MembershipOracle
func NewMembershipOracle(memberships repositories.MembershipRepository) *MembershipOracle {
	return &MembershipOracle{memberships: memberships}
}

// CanAccess returns true if the principal is a member of the project
// identified by resourceID
func (o *MembershipOracle) CanAccess(ctx context.Context, principalID string, resourceID string) (bool, error) {
	ok, err := o.memberships.IsProjectMember(ctx, principalID, resourceID)
	if err != nil {
		return false, fmt.Errorf("failed to check project membership: %w", err)
	}
	return ok, nil
}
