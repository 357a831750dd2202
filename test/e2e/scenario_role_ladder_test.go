package e2e

import (
	"net/http"
	"testing"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
)

// TestScenario_RoleLadder drives the same surface with all three roles
// and checks that each rung of the ladder unlocks strictly more.
func TestScenario_RoleLadder(t *testing.T) {
	testServer := SetupE2ETest(t)
	defer testServer.Teardown(t)

	student := testServer.SeedUser(t, "Sakura", entities.RoleStudent)
	instructor := testServer.SeedUser(t, "Tanaka", entities.RoleInstructor)
	admin := testServer.SeedUser(t, "Root", entities.RoleAdministrator)

	studentToken := testServer.Token(t, student.ID)
	instructorToken := testServer.Token(t, instructor.ID)
	adminToken := testServer.Token(t, admin.ID)

	t.Log("Step 1: User directory is restricted to instructors and administrators")
	status, envelope := testServer.DoEnvelope(t, http.MethodGet, "/api/v1/users", studentToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("student user list status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeRoleDenied)
	if envelope.Role != entities.RoleStudent {
		t.Errorf("envelope.Role = %q, want %q", envelope.Role, entities.RoleStudent)
	}
	if len(envelope.RequiredRoles) != 2 {
		t.Errorf("requiredRoles = %v, want instructor and administrator", envelope.RequiredRoles)
	}

	for name, token := range map[string]string{"instructor": instructorToken, "admin": adminToken} {
		resp := testServer.Do(t, http.MethodGet, "/api/v1/users", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s user list status = %d, want %d", name, resp.StatusCode, http.StatusOK)
		}
		drain(t, resp)
	}
	t.Log("✓ Directory gate holds")

	t.Log("Step 2: Usage analytics require an analytics permission")
	status, envelope = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/analytics/usage", studentToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("student analytics status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodePermissionDenied)
	if len(envelope.RequiredPermissions) != 2 {
		t.Errorf("requiredPermissions = %v, want the two analytics permissions", envelope.RequiredPermissions)
	}

	resp := testServer.Do(t, http.MethodGet, "/api/v1/analytics/usage", instructorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("instructor analytics status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)
	t.Log("✓ analytics:read opens usage analytics to instructors")

	t.Log("Step 3: System status stays administrator-only")
	status, envelope = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/system/status", instructorToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("instructor system status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeRoleDenied)

	resp = testServer.Do(t, http.MethodGet, "/api/v1/system/status", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin system status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)
	t.Log("✓ system:monitor and system:config enforced together")

	t.Log("Step 4: Project creation is closed to students")
	status, envelope = testServer.DoEnvelope(t, http.MethodPost, "/api/v1/projects", studentToken, map[string]string{
		"name": "Rogue Project",
	})
	if status != http.StatusForbidden {
		t.Errorf("student create status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeRoleDenied)

	testServer.CreateProject(t, instructorToken, "Capstone Fall 2026")
	t.Log("✓ Instructors create projects, students cannot")

	t.Log("Step 5: User records allow self-access, user:manage otherwise")
	resp = testServer.Do(t, http.MethodGet, "/api/v1/users/"+student.ID, studentToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("self read status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)

	status, envelope = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/users/"+instructor.ID, studentToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("cross-user read status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeResourceAccessDenied)
	if envelope.ResourceType != entities.ResourceKindUser {
		t.Errorf("resourceType = %q, want %q", envelope.ResourceType, entities.ResourceKindUser)
	}

	// Instructors hold user:read but not user:manage, so other users'
	// records stay closed to them as well.
	status, _ = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/users/"+student.ID, instructorToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("instructor cross-user read status = %d, want %d", status, http.StatusForbidden)
	}

	resp = testServer.Do(t, http.MethodGet, "/api/v1/users/"+student.ID, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin cross-user read status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)
	t.Log("✓ Self-access and administrator bypass on user records")
}
