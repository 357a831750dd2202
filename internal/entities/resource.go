package entities

// ResourceKind identifies a category of protected resource.
// Kinds marked as scoped carry per-instance access rules on top of the
// role permission table; the rest are governed by permissions alone.
type ResourceKind string

const (
	ResourceKindProject      ResourceKind = "project"
	ResourceKindPersona      ResourceKind = "persona"
	ResourceKindConversation ResourceKind = "conversation"
	ResourceKindMilestone    ResourceKind = "milestone"
	ResourceKindArtifact     ResourceKind = "artifact"
	ResourceKindUser         ResourceKind = "user"
)

// Scoped reports whether instances of this kind are bound to a project
// and therefore subject to membership checks for non-administrators.
func (k ResourceKind) Scoped() bool {
	switch k {
	case ResourceKindProject, ResourceKindPersona, ResourceKindConversation,
		ResourceKindMilestone, ResourceKindArtifact:
		return true
	}
	return false
}

// String returns the kind as a plain string.
func (k ResourceKind) String() string {
	return string(k)
}
