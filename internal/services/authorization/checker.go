package authorization

import (
	"context"
	"fmt"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
)

// CheckerInterface defines the interface for resource-scoped access decisions
type CheckerInterface interface {
	CanAccessResource(ctx context.Context, principal *entities.Principal, kind entities.ResourceKind, resourceID string, action entities.Permission) (bool, error)
	CanPerformAction(ctx context.Context, principal *entities.Principal, action entities.Permission, kind entities.ResourceKind, resourceID string) (bool, error)
}

// Checker combines the coarse permission evaluator with the ownership
// oracle into a single access decision. Denials are values, not errors;
// the only error path is an oracle failure.
type Checker struct {
	evaluator *Evaluator
	oracle    OwnershipOracle
}

// NewChecker creates a new Checker
func NewChecker(evaluator *Evaluator, oracle OwnershipOracle) *Checker {
	return &Checker{
		evaluator: evaluator,
		oracle:    oracle,
	}
}

// CanAccessResource decides whether the principal may perform action on
// the resource instance identified by kind and resourceID.
//
// The decision short-circuits in order: administrators are allowed
// everything without consulting the oracle; a principal without the
// coarse permission is denied without consulting the oracle; scoped
// kinds then stand or fall on the oracle's instance-level answer; the
// user kind allows self-access and otherwise requires user:manage.
func (c *Checker) CanAccessResource(
	ctx context.Context,
	principal *entities.Principal,
	kind entities.ResourceKind,
	resourceID string,
	action entities.Permission,
) (bool, error) {
	if principal == nil {
		return false, nil
	}

	if principal.IsAdministrator() {
		return true, nil
	}

	if !c.evaluator.HasPermission(principal, action) {
		return false, nil
	}

	switch kind {
	case entities.ResourceKindProject,
		entities.ResourceKindPersona,
		entities.ResourceKindConversation,
		entities.ResourceKindMilestone,
		entities.ResourceKindArtifact:
		allowed, err := c.oracle.CanAccess(ctx, principal.ID, resourceID)
		if err != nil {
			return false, fmt.Errorf("failed to check access to %s %s: %w", kind, resourceID, err)
		}
		return allowed, nil

	case entities.ResourceKindUser:
		if resourceID == principal.ID {
			return true, nil
		}
		return c.evaluator.HasPermission(principal, entities.PermissionUserManage), nil

	default:
		// Kinds without an instance-level rule pass here: the coarse
		// permission check above has already gated the action.
		return true, nil
	}
}

// CanPerformAction is a convenience wrapper around CanAccessResource.
// Without a resource kind and ID it degrades to the coarse permission
// check; with both it runs the full instance-level decision.
func (c *Checker) CanPerformAction(
	ctx context.Context,
	principal *entities.Principal,
	action entities.Permission,
	kind entities.ResourceKind,
	resourceID string,
) (bool, error) {
	if kind == "" || resourceID == "" {
		return c.evaluator.HasPermission(principal, action), nil
	}
	return c.CanAccessResource(ctx, principal, kind, resourceID, action)
}
