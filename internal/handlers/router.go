package handlers

import (
	"net/http"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/metrics"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/middleware"
)

// NewRouter assembles the HTTP surface. Every route past /healthz sits
// behind RequireAuth plus the enforcement middleware the operation needs;
// the outer chain adds request IDs, logging, panic recovery, metrics, and
// rate limiting.
func NewRouter(h *Handler, mw *middleware.Middleware, collector *metrics.Collector, exporter *metrics.PrometheusExporter) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)

	mux.Handle("GET /api/v1/me", mw.RequireAuth(
		mw.RequireAnyRole(http.HandlerFunc(h.Me))))

	mux.Handle("GET /api/v1/projects", mw.RequireAuth(
		mw.RequirePermission(entities.PermissionProjectRead)(
			http.HandlerFunc(h.ListProjects))))
	mux.Handle("POST /api/v1/projects", mw.RequireAuth(
		mw.RequireInstructorOrAdmin(
			mw.RequirePermission(entities.PermissionProjectWrite)(
				http.HandlerFunc(h.CreateProject)))))
	mux.Handle("GET /api/v1/projects/{id}", mw.RequireAuth(
		mw.RequireResourceAccess(entities.ResourceKindProject, entities.PermissionProjectRead)(
			http.HandlerFunc(h.GetProject))))
	mux.Handle("PUT /api/v1/projects/{id}", mw.RequireAuth(
		mw.RequireResourceAccess(entities.ResourceKindProject, entities.PermissionProjectWrite)(
			http.HandlerFunc(h.UpdateProject))))
	mux.Handle("DELETE /api/v1/projects/{id}", mw.RequireAuth(
		mw.RequirePermission(entities.PermissionProjectDelete)(
			mw.RequireResourceAccess(entities.ResourceKindProject, entities.PermissionProjectDelete)(
				http.HandlerFunc(h.DeleteProject)))))

	mux.Handle("GET /api/v1/projects/{id}/members", mw.RequireAuth(
		mw.RequireResourceAccess(entities.ResourceKindProject, entities.PermissionProjectRead)(
			http.HandlerFunc(h.ListProjectMembers))))
	mux.Handle("POST /api/v1/projects/{id}/members", mw.RequireAuth(
		mw.RequireResourceAccess(entities.ResourceKindProject, entities.PermissionProjectManage)(
			http.HandlerFunc(h.AddProjectMember))))
	mux.Handle("DELETE /api/v1/projects/{id}/members/{userId}", mw.RequireAuth(
		mw.RequireResourceAccess(entities.ResourceKindProject, entities.PermissionProjectManage)(
			http.HandlerFunc(h.RemoveProjectMember))))

	mux.Handle("GET /api/v1/users", mw.RequireAuth(
		mw.RequireInstructorOrAdmin(http.HandlerFunc(h.ListUsers))))
	mux.Handle("GET /api/v1/users/{userId}", mw.RequireAuth(
		mw.RequireResourceAccess(entities.ResourceKindUser, entities.PermissionUserRead)(
			http.HandlerFunc(h.GetUser))))

	mux.Handle("GET /api/v1/analytics/usage", mw.RequireAuth(
		mw.RequireAnyPermission(entities.PermissionAnalyticsRead, entities.PermissionAnalyticsAdmin)(
			http.HandlerFunc(h.UsageAnalytics))))

	mux.Handle("GET /api/v1/system/status", mw.RequireAuth(
		mw.RequireAdmin(
			mw.RequireAllPermissions(entities.PermissionSystemMonitor, entities.PermissionSystemConfig)(
				http.HandlerFunc(h.SystemStatus)))))

	var root http.Handler = mux
	root = mw.RateLimit(root)
	root = mw.Recover(root)
	root = metrics.HTTPMiddleware(collector, exporter)(root)
	root = mw.LogRequests(root)
	root = mw.RequestID(root)
	return root
}
