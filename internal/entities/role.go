package entities

// Role represents one of the three fixed platform roles.
// Capability grows strictly from student to instructor to administrator.
type Role string

const (
	RoleStudent       Role = "student"
	RoleInstructor    Role = "instructor"
	RoleAdministrator Role = "administrator"
)

// ValidRole reports whether r is a known platform role.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdministrator:
		return true
	}
	return false
}

// AllRoles returns the three platform roles.
func AllRoles() []Role {
	return []Role{RoleStudent, RoleInstructor, RoleAdministrator}
}

// PermissionSet is a de-duplicated set of permissions granted to a role.
type PermissionSet map[Permission]struct{}

// Has reports whether the set contains p.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// RolePermissionTable maps each role to its granted permission set.
// The table is built once at startup and never mutated afterwards, so
// concurrent readers need no synchronization.
type RolePermissionTable map[Role]PermissionSet

// NewRolePermissionTable builds a table from role -> permission lists,
// dropping duplicate grants.
func NewRolePermissionTable(grants map[Role][]Permission) RolePermissionTable {
	table := make(RolePermissionTable, len(grants))
	for role, perms := range grants {
		set := make(PermissionSet, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		table[role] = set
	}
	return table
}

// DefaultRolePermissions returns the platform's static role table.
// Instructor grants are built on top of student grants, and administrator
// holds the entire catalog, so each role's set contains the previous one
// by construction.
func DefaultRolePermissions() RolePermissionTable {
	studentGrants := []Permission{
		PermissionProjectRead, PermissionProjectWrite,
		PermissionPersonaRead,
		PermissionConversationRead, PermissionConversationWrite,
		PermissionMilestoneRead, PermissionMilestoneWrite,
		PermissionArtifactRead, PermissionArtifactWrite,
		PermissionUserRead,
	}

	instructorGrants := append([]Permission{
		PermissionProjectDelete, PermissionProjectManage,
		PermissionPersonaWrite, PermissionPersonaDelete, PermissionPersonaModerate,
		PermissionConversationModerate,
		PermissionMilestoneDelete, PermissionMilestoneEvaluate,
		PermissionArtifactDelete, PermissionArtifactManage,
		PermissionUserWrite,
		PermissionAnalyticsRead,
	}, studentGrants...)

	return NewRolePermissionTable(map[Role][]Permission{
		RoleStudent:       studentGrants,
		RoleInstructor:    instructorGrants,
		RoleAdministrator: AllPermissions(),
	})
}
