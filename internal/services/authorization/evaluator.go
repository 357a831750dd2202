package authorization

import (
	"sort"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
)

// EvaluatorInterface defines the interface for coarse permission evaluation
type EvaluatorInterface interface {
	HasPermission(principal *entities.Principal, permission entities.Permission) bool
	HasAnyPermission(principal *entities.Principal, permissions []entities.Permission) bool
	HasAllPermissions(principal *entities.Principal, permissions []entities.Permission) bool
	Permissions(principal *entities.Principal) []entities.Permission
}

// Evaluator answers role-level permission questions against the static
// role permission table. It performs no I/O and holds no mutable state,
// so a single instance is safe for concurrent use.
type Evaluator struct {
	table entities.RolePermissionTable
}

// NewEvaluator creates a new Evaluator backed by the given table
func NewEvaluator(table entities.RolePermissionTable) *Evaluator {
	return &Evaluator{table: table}
}

// NewDefaultEvaluator creates a new Evaluator backed by the platform's
// built-in role permission table
func NewDefaultEvaluator() *Evaluator {
	return NewEvaluator(entities.DefaultRolePermissions())
}

// HasPermission returns true if the principal's role grants the permission.
// A nil principal or a role missing from the table resolves to an empty
// permission set, so the answer is false rather than an error.
func (e *Evaluator) HasPermission(principal *entities.Principal, permission entities.Permission) bool {
	if principal == nil {
		return false
	}
	set, ok := e.table[principal.Role]
	if !ok {
		return false
	}
	return set.Has(permission)
}

// HasAnyPermission returns true if the principal holds at least one of the
// given permissions. An empty list is never a grant.
func (e *Evaluator) HasAnyPermission(principal *entities.Principal, permissions []entities.Permission) bool {
	for _, p := range permissions {
		if e.HasPermission(principal, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions returns true if the principal holds every one of the
// given permissions. An empty list is vacuously true.
func (e *Evaluator) HasAllPermissions(principal *entities.Principal, permissions []entities.Permission) bool {
	for _, p := range permissions {
		if !e.HasPermission(principal, p) {
			return false
		}
	}
	return true
}

// Permissions returns the principal's granted permissions as a sorted,
// caller-owned slice. Mutating it does not affect the table.
func (e *Evaluator) Permissions(principal *entities.Principal) []entities.Permission {
	if principal == nil {
		return nil
	}
	set, ok := e.table[principal.Role]
	if !ok {
		return nil
	}
	perms := make([]entities.Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
