package e2e

import (
	"net/http"
	"testing"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
)

// TestScenario_ProjectLifecycle runs a project from creation through
// member churn to deletion, checking the enforcement outcomes at every
// stage transition.
func TestScenario_ProjectLifecycle(t *testing.T) {
	testServer := SetupE2ETest(t)
	defer testServer.Teardown(t)

	instructor := testServer.SeedUser(t, "Tanaka", entities.RoleInstructor)
	student := testServer.SeedUser(t, "Sakura", entities.RoleStudent)
	admin := testServer.SeedUser(t, "Root", entities.RoleAdministrator)

	instructorToken := testServer.Token(t, instructor.ID)
	studentToken := testServer.Token(t, student.ID)
	adminToken := testServer.Token(t, admin.ID)

	t.Log("Step 1: Instructor creates the project and enrolls the student")
	projectID := testServer.CreateProject(t, instructorToken, "Persona Workshop")

	status, _ := testServer.DoEnvelope(t, http.MethodPost, "/api/v1/projects/"+projectID+"/members", instructorToken, map[string]string{
		"userId": student.ID,
	})
	if status != http.StatusCreated {
		t.Fatalf("enroll status = %d, want %d", status, http.StatusCreated)
	}

	status, envelope := testServer.DoEnvelope(t, http.MethodGet, "/api/v1/projects/"+projectID+"/members", instructorToken, nil)
	if status != http.StatusOK {
		t.Fatalf("member list status = %d, want %d", status, http.StatusOK)
	}
	members, ok := envelope.Data.([]any)
	if !ok || len(members) != 2 {
		t.Errorf("member list = %v, want 2 members", envelope.Data)
	}
	t.Log("✓ Project has instructor and student")

	t.Log("Step 2: The enrolled student works inside the project")
	resp := testServer.Do(t, http.MethodPut, "/api/v1/projects/"+projectID, studentToken, map[string]string{
		"description": "Sprint 1: requirements gathering",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("student update status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	drain(t, resp)

	t.Log("Step 3: Students cannot manage membership")
	status, envelope = testServer.DoEnvelope(t, http.MethodDelete, "/api/v1/projects/"+projectID+"/members/"+instructor.ID, studentToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("student remove-member status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeResourceAccessDenied)
	if envelope.RequiredAction != entities.PermissionProjectManage {
		t.Errorf("requiredAction = %q, want %q", envelope.RequiredAction, entities.PermissionProjectManage)
	}
	t.Log("✓ Membership management requires project:manage")

	t.Log("Step 4: Instructor withdraws the student")
	status, _ = testServer.DoEnvelope(t, http.MethodDelete, "/api/v1/projects/"+projectID+"/members/"+student.ID, instructorToken, nil)
	if status != http.StatusOK {
		t.Fatalf("withdraw status = %d, want %d", status, http.StatusOK)
	}

	status, envelope = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/projects/"+projectID, studentToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("withdrawn student read status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeResourceAccessDenied)
	t.Log("✓ Withdrawn student loses instance access")

	t.Log("Step 5: Instructor deletes the project")
	status, _ = testServer.DoEnvelope(t, http.MethodDelete, "/api/v1/projects/"+projectID, instructorToken, nil)
	if status != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", status, http.StatusOK)
	}

	// Membership went with the project, so the former owner is now an
	// outsider and never reaches the handler's 404.
	status, envelope = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/projects/"+projectID, instructorToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("post-delete instructor read status = %d, want %d", status, http.StatusForbidden)
	}
	requireDenial(t, envelope, httpapi.CodeResourceAccessDenied)

	// The administrator bypasses the oracle and sees the true state.
	status, envelope = testServer.DoEnvelope(t, http.MethodGet, "/api/v1/projects/"+projectID, adminToken, nil)
	if status != http.StatusNotFound {
		t.Errorf("post-delete admin read status = %d, want %d", status, http.StatusNotFound)
	}
	requireDenial(t, envelope, httpapi.CodeNotFound)
	t.Log("✓ Deletion cascades membership and the project is gone")
}
