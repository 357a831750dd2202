package entities

import "strings"

// Permission represents a single capability as a "<resource>:<action>" tag
// Example: "project:read", "milestone:evaluate"
type Permission string

// The catalog is closed: every grantable capability is declared here, and
// call sites reference these constants instead of hand-typing tag strings.
// Each resource family exposes only the actions that make sense for it
// (conversations cannot be managed, the system family has no read/write).
const (
	// Project permissions
	PermissionProjectRead   Permission = "project:read"
	PermissionProjectWrite  Permission = "project:write"
	PermissionProjectDelete Permission = "project:delete"
	PermissionProjectManage Permission = "project:manage"

	// Persona permissions
	PermissionPersonaRead     Permission = "persona:read"
	PermissionPersonaWrite    Permission = "persona:write"
	PermissionPersonaDelete   Permission = "persona:delete"
	PermissionPersonaModerate Permission = "persona:moderate"

	// Conversation permissions
	PermissionConversationRead     Permission = "conversation:read"
	PermissionConversationWrite    Permission = "conversation:write"
	PermissionConversationModerate Permission = "conversation:moderate"

	// Milestone permissions
	PermissionMilestoneRead     Permission = "milestone:read"
	PermissionMilestoneWrite    Permission = "milestone:write"
	PermissionMilestoneDelete   Permission = "milestone:delete"
	PermissionMilestoneEvaluate Permission = "milestone:evaluate"

	// Artifact permissions
	PermissionArtifactRead   Permission = "artifact:read"
	PermissionArtifactWrite  Permission = "artifact:write"
	PermissionArtifactDelete Permission = "artifact:delete"
	PermissionArtifactManage Permission = "artifact:manage"

	// User permissions
	PermissionUserRead   Permission = "user:read"
	PermissionUserWrite  Permission = "user:write"
	PermissionUserManage Permission = "user:manage"

	// Analytics permissions
	PermissionAnalyticsRead  Permission = "analytics:read"
	PermissionAnalyticsAdmin Permission = "analytics:admin"

	// System permissions
	PermissionSystemAdmin   Permission = "system:admin"
	PermissionSystemConfig  Permission = "system:config"
	PermissionSystemMonitor Permission = "system:monitor"
)

var allPermissions = []Permission{
	PermissionProjectRead, PermissionProjectWrite, PermissionProjectDelete, PermissionProjectManage,
	PermissionPersonaRead, PermissionPersonaWrite, PermissionPersonaDelete, PermissionPersonaModerate,
	PermissionConversationRead, PermissionConversationWrite, PermissionConversationModerate,
	PermissionMilestoneRead, PermissionMilestoneWrite, PermissionMilestoneDelete, PermissionMilestoneEvaluate,
	PermissionArtifactRead, PermissionArtifactWrite, PermissionArtifactDelete, PermissionArtifactManage,
	PermissionUserRead, PermissionUserWrite, PermissionUserManage,
	PermissionAnalyticsRead, PermissionAnalyticsAdmin,
	PermissionSystemAdmin, PermissionSystemConfig, PermissionSystemMonitor,
}

// AllPermissions returns the full permission catalog as a fresh slice.
func AllPermissions() []Permission {
	perms := make([]Permission, len(allPermissions))
	copy(perms, allPermissions)
	return perms
}

// Resource returns the resource family portion of the tag (e.g. "project").
func (p Permission) Resource() string {
	if i := strings.IndexByte(string(p), ':'); i >= 0 {
		return string(p)[:i]
	}
	return string(p)
}

// Action returns the action portion of the tag (e.g. "read").
func (p Permission) Action() string {
	if i := strings.IndexByte(string(p), ':'); i >= 0 {
		return string(p)[i+1:]
	}
	return ""
}

// Valid reports whether the permission is part of the catalog.
func (p Permission) Valid() bool {
	for _, known := range allPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// String returns the permission tag as a plain string.
func (p Permission) String() string {
	return string(p)
}
