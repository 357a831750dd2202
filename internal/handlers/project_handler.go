package handlers

import (
	"net/http"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/middleware"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

// ListProjects returns the projects visible to the caller: administrators
// see every project, everyone else only the projects they belong to.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	var (
		projects []*entities.Project
		err      error
	)
	if principal.IsAdministrator() {
		projects, err = h.projects.List(r.Context())
	} else {
		projects, err = h.projects.ListForUser(r.Context(), principal.ID)
	}
	if err != nil {
		h.writeRepositoryError(w, err, "projects")
		return
	}

	httpapi.WriteData(w, http.StatusOK, projects)
}

// CreateProject creates a project owned by the caller. The owner becomes the
// first member so instance-level checks pass for them immediately.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	var req createProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidRequest, "Project name is required")
		return
	}

	project := &entities.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     principal.ID,
	}
	if err := h.projects.Create(r.Context(), project); err != nil {
		h.writeRepositoryError(w, err, "project")
		return
	}
	if err := h.memberships.AddMember(r.Context(), project.ID, principal.ID); err != nil {
		h.writeRepositoryError(w, err, "project membership")
		return
	}

	httpapi.WriteData(w, http.StatusCreated, project)
}

// GetProject returns one project by ID.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeRepositoryError(w, err, "project")
		return
	}
	httpapi.WriteData(w, http.StatusOK, project)
}

// UpdateProject applies partial changes to a project.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeRepositoryError(w, err, "project")
		return
	}

	var req updateProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = entities.ProjectStatus(*req.Status)
	}
	if err := project.Validate(); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error())
		return
	}

	if err := h.projects.Update(r.Context(), project); err != nil {
		h.writeRepositoryError(w, err, "project")
		return
	}
	httpapi.WriteData(w, http.StatusOK, project)
}

// DeleteProject removes a project and its memberships.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeRepositoryError(w, err, "project")
		return
	}
	httpapi.Write(w, http.StatusOK, &httpapi.Response{Success: true, Message: "Project deleted"})
}

// ListProjectMembers returns the members of a project ordered by name.
func (h *Handler) ListProjectMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberships.ListMembers(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeRepositoryError(w, err, "project members")
		return
	}
	httpapi.WriteData(w, http.StatusOK, members)
}

// AddProjectMember adds a user to a project. Adding an existing member is a
// no-op that still reports success.
func (h *Handler) AddProjectMember(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var req addMemberRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidRequest, "User ID is required")
		return
	}

	if _, err := h.users.GetByID(r.Context(), req.UserID); err != nil {
		h.writeRepositoryError(w, err, "user")
		return
	}
	if _, err := h.projects.GetByID(r.Context(), projectID); err != nil {
		h.writeRepositoryError(w, err, "project")
		return
	}

	if err := h.memberships.AddMember(r.Context(), projectID, req.UserID); err != nil {
		h.writeRepositoryError(w, err, "project membership")
		return
	}
	httpapi.Write(w, http.StatusCreated, &httpapi.Response{Success: true, Message: "Member added"})
}

// RemoveProjectMember removes a user from a project.
func (h *Handler) RemoveProjectMember(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	userID := r.PathValue("userId")

	if err := h.memberships.RemoveMember(r.Context(), projectID, userID); err != nil {
		h.writeRepositoryError(w, err, "project membership")
		return
	}
	httpapi.Write(w, http.StatusOK, &httpapi.Response{Success: true, Message: "Member removed"})
}
