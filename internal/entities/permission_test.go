package entities

import "testing"

func TestPermission_ResourceAction(t *testing.T) {
	tests := []struct {
		name         string
		permission   Permission
		wantResource string
		wantAction   string
	}{
		{
			name:         "project read",
			permission:   PermissionProjectRead,
			wantResource: "project",
			wantAction:   "read",
		},
		{
			name:         "milestone evaluate",
			permission:   PermissionMilestoneEvaluate,
			wantResource: "milestone",
			wantAction:   "evaluate",
		},
		{
			name:         "system admin",
			permission:   PermissionSystemAdmin,
			wantResource: "system",
			wantAction:   "admin",
		},
		{
			name:         "tag without separator",
			permission:   Permission("broken"),
			wantResource: "broken",
			wantAction:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.permission.Resource(); got != tt.wantResource {
				t.Errorf("Permission.Resource() = %v, want %v", got, tt.wantResource)
			}
			if got := tt.permission.Action(); got != tt.wantAction {
				t.Errorf("Permission.Action() = %v, want %v", got, tt.wantAction)
			}
		})
	}
}

func TestPermission_Valid(t *testing.T) {
	tests := []struct {
		name       string
		permission Permission
		want       bool
	}{
		{
			name:       "catalog permission",
			permission: PermissionConversationModerate,
			want:       true,
		},
		{
			name:       "unknown action on known resource",
			permission: Permission("project:fly"),
			want:       false,
		},
		{
			name:       "unknown resource",
			permission: Permission("widget:read"),
			want:       false,
		},
		{
			name:       "empty tag",
			permission: Permission(""),
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.permission.Valid(); got != tt.want {
				t.Errorf("Permission.Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllPermissions(t *testing.T) {
	perms := AllPermissions()

	if len(perms) != 27 {
		t.Errorf("AllPermissions() returned %d permissions, want 27", len(perms))
	}

	seen := make(map[Permission]bool, len(perms))
	for _, p := range perms {
		if seen[p] {
			t.Errorf("AllPermissions() contains duplicate %s", p)
		}
		seen[p] = true
		if !p.Valid() {
			t.Errorf("AllPermissions() contains %s which is not Valid()", p)
		}
	}

	// Mutating the returned slice must not touch the catalog.
	perms[0] = Permission("mutated:tag")
	if !PermissionProjectRead.Valid() {
		t.Error("mutating AllPermissions() result corrupted the catalog")
	}
}

func TestAllPermissions_CatalogShape(t *testing.T) {
	actions := make(map[string][]string)
	for _, p := range AllPermissions() {
		actions[p.Resource()] = append(actions[p.Resource()], p.Action())
	}

	tests := []struct {
		name        string
		resource    string
		wantActions []string
	}{
		{"project family", "project", []string{"read", "write", "delete", "manage"}},
		{"persona family", "persona", []string{"read", "write", "delete", "moderate"}},
		{"conversation family", "conversation", []string{"read", "write", "moderate"}},
		{"milestone family", "milestone", []string{"read", "write", "delete", "evaluate"}},
		{"artifact family", "artifact", []string{"read", "write", "delete", "manage"}},
		{"user family", "user", []string{"read", "write", "manage"}},
		{"analytics family", "analytics", []string{"read", "admin"}},
		{"system family", "system", []string{"admin", "config", "monitor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actions[tt.resource]
			if len(got) != len(tt.wantActions) {
				t.Fatalf("resource %s has actions %v, want %v", tt.resource, got, tt.wantActions)
			}
			for i, action := range tt.wantActions {
				if got[i] != action {
					t.Errorf("resource %s action[%d] = %v, want %v", tt.resource, i, got[i], action)
				}
			}
		})
	}

	if len(actions) != 8 {
		t.Errorf("catalog spans %d resource families, want 8", len(actions))
	}
}
