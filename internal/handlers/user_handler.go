package handlers

import (
	"net/http"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/middleware"
)

// Me returns the caller's identity and effective permission list.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	httpapi.WriteData(w, http.StatusOK, map[string]any{
		"user":        principal,
		"permissions": h.evaluator.Permissions(principal),
	})
}

// ListUsers returns all users ordered by name.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeRepositoryError(w, err, "users")
		return
	}
	httpapi.WriteData(w, http.StatusOK, users)
}

// GetUser returns one user by ID.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), r.PathValue("userId"))
	if err != nil {
		h.writeRepositoryError(w, err, "user")
		return
	}
	httpapi.WriteData(w, http.StatusOK, user)
}
