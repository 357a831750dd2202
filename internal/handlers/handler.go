package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/metrics"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/services/authorization"
)

// HealthChecker reports whether the backing database is reachable.
type HealthChecker interface {
	HealthCheck() error
}

// Handler serves the platform's HTTP API. Authorization is enforced by the
// middleware chain in front of each route; handlers only read the principal
// for scoping and ownership.
type Handler struct {
	users       repositories.UserRepository
	projects    repositories.ProjectRepository
	memberships repositories.MembershipRepository
	evaluator   authorization.EvaluatorInterface
	health      HealthChecker
	collector   *metrics.Collector
	logger      *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(
	users repositories.UserRepository,
	projects repositories.ProjectRepository,
	memberships repositories.MembershipRepository,
	evaluator authorization.EvaluatorInterface,
	health HealthChecker,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		users:       users,
		projects:    projects,
		memberships: memberships,
		evaluator:   evaluator,
		health:      health,
		collector:   collector,
		logger:      logger,
	}
}

// decodeJSON parses the request body into dst, answering 400 on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidRequest, "Invalid request body")
		return false
	}
	return true
}

// writeRepositoryError maps repository failures onto the envelope: missing
// records become 404, everything else a logged 500.
func (h *Handler) writeRepositoryError(w http.ResponseWriter, err error, subject string) {
	if errors.Is(err, repositories.ErrNotFound) {
		httpapi.WriteError(w, http.StatusNotFound, httpapi.CodeNotFound, subject+" not found")
		return
	}
	h.logger.Error("repository operation failed",
		"subject", subject,
		"error", err.Error(),
	)
	httpapi.WriteError(w, http.StatusInternalServerError, httpapi.CodeInternalError, "Internal server error")
}
