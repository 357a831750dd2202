package e2e

import (
	"net/http"
	"testing"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
)

// TestScenario_AccessControl walks the enforcement pipeline through the
// canonical allow and deny outcomes: missing authentication, coarse
// permission denial, membership-scoped denial, and the administrator
// bypass.
func TestScenario_AccessControl(t *testing.T) {
	testServer := SetupE2ETest(t)
	defer testServer.Teardown(t)

	t.Log("Step 1: Seeding a student, an instructor, and an administrator")
	student := testServer.SeedUser(t, "Sakura", entities.RoleStudent)
	instructor := testServer.SeedUser(t, "Tanaka", entities.RoleInstructor)
	admin := testServer.SeedUser(t, "Root", entities.RoleAdministrator)

	studentToken := testServer.Token(t, student.ID)
	instructorToken := testServer.Token(t, instructor.ID)
	adminToken := testServer.Token(t, admin.ID)

	t.Log("Step 2: Unauthenticated requests are rejected with AUTH_REQUIRED")
	status, envelope := testServer.DoEnvelope(t, http.MethodGet, "/api/v1/projects", "", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("unauthenticated list status = %d, want %d", status, http.StatusUnauthorized)
	}
	requireDenial(t, envelope, httpapi.CodeAuthRequired)
	t.Log("✓ Anonymous request denied")

	t.Log("Step 3: Instructor creates a project and becomes its first member")
	projectID := testServer.CreateProject(t, instructorToken, "Virtual Client Simulation")

	t.Log("Step 4: Students may list projects but not delete them")
	resp := testServer.Do(t, http.MethodGet, "/api/v1/projects", studentToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("student list status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)

	status, envelope = testServer.DoEnvelope(t, http.MethodDelete, "/api/v1/projects/"+projectID, studentToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("student delete status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodePermissionDenied)
	if envelope.RequiredPermission != entities.PermissionProjectDelete {
		t.Errorf("requiredPermission = %q, want %q", envelope.RequiredPermission, entities.PermissionProjectDelete)
	}
	t.Log("✓ Coarse permission denial carries the missing permission")

	t.Log("Step 5: Non-members are denied instance access with resource context")
	status, envelope = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/projects/"+projectID, studentToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("outsider read status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeResourceAccessDenied)
	if envelope.ResourceType != entities.ResourceKindProject {
		t.Errorf("resourceType = %q, want %q", envelope.ResourceType, entities.ResourceKindProject)
	}
	if envelope.ResourceID != projectID {
		t.Errorf("resourceId = %q, want %q", envelope.ResourceID, projectID)
	}
	if envelope.RequiredAction != entities.PermissionProjectRead {
		t.Errorf("requiredAction = %q, want %q", envelope.RequiredAction, entities.PermissionProjectRead)
	}
	t.Log("✓ Scoped denial names the resource and the attempted action")

	t.Log("Step 6: Project members read and write the project")
	status, _ = testServer.DoEnvelope(t, http.MethodPost, "/api/v1/projects/"+projectID+"/members", instructorToken, map[string]string{
		"userId": student.ID,
	})
	if status != http.StatusCreated {
		t.Fatalf("add member status = %d, want %d", status, http.StatusCreated)
	}

	resp = testServer.Do(t, http.MethodGet, "/api/v1/projects/"+projectID, studentToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("member read status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)

	resp = testServer.Do(t, http.MethodPut, "/api/v1/projects/"+projectID, studentToken, map[string]string{
		"description": "Week 3: persona interviews",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("member update status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)
	t.Log("✓ Membership unlocks instance-scoped reads and writes")

	t.Log("Step 7: Administrators access any project without membership")
	resp = testServer.Do(t, http.MethodGet, "/api/v1/projects/"+projectID, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin read status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)
	t.Log("✓ Administrator bypass in effect")
}

// TestScenario_OracleFault verifies that a failing membership backend
// surfaces as RESOURCE_CHECK_ERROR rather than a silent allow or deny.
func TestScenario_OracleFault(t *testing.T) {
	testServer := setupE2ETest(t, e2eOptions{checker: faultyChecker{}})
	defer testServer.Teardown(t)

	student := testServer.SeedUser(t, "Sakura", entities.RoleStudent)
	token := testServer.Token(t, student.ID)

	status, envelope := testServer.DoEnvelope(t, http.MethodGet, "/api/v1/projects/p1", token, nil)
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", status, http.StatusInternalServerError)
	}
	requireDenial(t, envelope, httpapi.CodeResourceCheckError)
}
