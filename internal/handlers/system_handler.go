package handlers

import (
	"net/http"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
)

// Healthz reports service liveness, including database reachability.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.health.HealthCheck(); err != nil {
		h.logger.Error("health check failed", "error", err.Error())
		httpapi.Write(w, http.StatusServiceUnavailable, &httpapi.Response{
			Success: false,
			Code:    httpapi.CodeInternalError,
			Message: "Database unreachable",
		})
		return
	}
	httpapi.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UsageAnalytics returns aggregate platform usage numbers.
func (h *Handler) UsageAnalytics(w http.ResponseWriter, r *http.Request) {
	usersByRole, err := h.users.CountByRole(r.Context())
	if err != nil {
		h.writeRepositoryError(w, err, "user counts")
		return
	}
	projectCount, err := h.projects.Count(r.Context())
	if err != nil {
		h.writeRepositoryError(w, err, "project count")
		return
	}

	httpapi.WriteData(w, http.StatusOK, map[string]any{
		"usersByRole":  usersByRole,
		"projectCount": projectCount,
	})
}

// SystemStatus returns operational state for administrators: database
// health, per-route API metrics, and authorization decision counts.
func (h *Handler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := h.health.HealthCheck(); err != nil {
		dbStatus = "unreachable"
	}

	payload := map[string]any{
		"database": dbStatus,
	}
	if h.collector != nil {
		payload["api"] = h.collector.GetAPIMetrics()
		payload["decisions"] = h.collector.GetDecisionMetrics()
	}

	httpapi.WriteData(w, http.StatusOK, payload)
}
