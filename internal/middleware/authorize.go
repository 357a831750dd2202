package middleware

import (
	"net/http"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
)

// resourceIDPathValues are the path parameters consulted, in order, when a
// resource-scoped middleware needs the target resource ID.
var resourceIDPathValues = []string{"id", "projectId", "userId"}

// RequirePermission returns a middleware that allows the request through only
// when the principal holds the given permission.
func (m *Middleware) RequirePermission(permission entities.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := m.requirePrincipal(w, r)
			if !ok {
				return
			}
			if !m.evaluator.HasPermission(principal, permission) {
				m.denyPermission(w, r, principal, permission)
				return
			}
			m.recordDecision("allow")
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission returns a middleware that allows the request through
// when the principal holds at least one of the given permissions. An empty
// list never matches, so the middleware denies everyone.
func (m *Middleware) RequireAnyPermission(permissions ...entities.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := m.requirePrincipal(w, r)
			if !ok {
				return
			}
			if !m.evaluator.HasAnyPermission(principal, permissions) {
				m.denyPermissions(w, r, principal, permissions)
				return
			}
			m.recordDecision("allow")
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAllPermissions returns a middleware that allows the request through
// only when the principal holds every one of the given permissions. An empty
// list is vacuously satisfied.
func (m *Middleware) RequireAllPermissions(permissions ...entities.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := m.requirePrincipal(w, r)
			if !ok {
				return
			}
			if !m.evaluator.HasAllPermissions(principal, permissions) {
				m.denyPermissions(w, r, principal, permissions)
				return
			}
			m.recordDecision("allow")
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole returns a middleware that allows the request through only when
// the principal's role is one of the given roles.
func (m *Middleware) RequireRole(roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := m.requirePrincipal(w, r)
			if !ok {
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					m.recordDecision("allow")
					next.ServeHTTP(w, r)
					return
				}
			}
			m.denyRole(w, r, principal, roles)
		})
	}
}

// RequireAdmin allows administrators only.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(entities.RoleAdministrator)(next)
}

// RequireInstructorOrAdmin allows instructors and administrators.
func (m *Middleware) RequireInstructorOrAdmin(next http.Handler) http.Handler {
	return m.RequireRole(entities.RoleInstructor, entities.RoleAdministrator)(next)
}

// RequireAnyRole allows any authenticated principal with a recognized role.
func (m *Middleware) RequireAnyRole(next http.Handler) http.Handler {
	return m.RequireRole(entities.RoleStudent, entities.RoleInstructor, entities.RoleAdministrator)(next)
}

// RequireResourceAccess returns a middleware that enforces instance-level
// access to a resource of the given kind. The resource ID is taken from the
// request path, trying each known parameter name in order. The action is the
// permission the principal must hold before the ownership check runs.
func (m *Middleware) RequireResourceAccess(kind entities.ResourceKind, action entities.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := m.requirePrincipal(w, r)
			if !ok {
				return
			}

			resourceID := resourceIDFromRequest(r)
			if resourceID == "" {
				m.logger.Warn("resource access rejected without resource ID",
					"userId", principal.ID,
					"role", principal.Role,
					"resourceType", kind,
					"requiredAction", action,
					"path", r.URL.Path,
				)
				m.recordDecision(httpapi.CodeResourceIDMissing)
				httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeResourceIDMissing, "Resource ID is required")
				return
			}

			allowed, err := m.checker.CanAccessResource(r.Context(), principal, kind, resourceID, action)
			if err != nil {
				m.logger.Error("resource access check failed",
					"userId", principal.ID,
					"role", principal.Role,
					"resourceType", kind,
					"resourceId", resourceID,
					"requiredAction", action,
					"error", err.Error(),
				)
				m.recordDecision(httpapi.CodeResourceCheckError)
				httpapi.WriteError(w, http.StatusInternalServerError, httpapi.CodeResourceCheckError, "Failed to verify resource access")
				return
			}
			if !allowed {
				m.logger.Warn("resource access denied",
					"userId", principal.ID,
					"role", principal.Role,
					"resourceType", kind,
					"resourceId", resourceID,
					"requiredAction", action,
					"path", r.URL.Path,
				)
				m.recordDecision(httpapi.CodeResourceAccessDenied)
				httpapi.Write(w, http.StatusForbidden, &httpapi.Response{
					Message:        "Access to this resource is denied",
					Code:           httpapi.CodeResourceAccessDenied,
					ResourceType:   kind,
					ResourceID:     resourceID,
					RequiredAction: action,
				})
				return
			}

			m.recordDecision("allow")
			next.ServeHTTP(w, r)
		})
	}
}

// requirePrincipal extracts the authenticated principal or terminates the
// request with 401 AUTH_REQUIRED. Every enforcement middleware runs this
// before any permission logic.
func (m *Middleware) requirePrincipal(w http.ResponseWriter, r *http.Request) (*entities.Principal, bool) {
	principal := PrincipalFromContext(r.Context())
	if principal == nil {
		m.logger.Warn("authorization rejected unauthenticated request",
			"method", r.Method,
			"path", r.URL.Path,
		)
		m.recordDecision(httpapi.CodeAuthRequired)
		httpapi.WriteError(w, http.StatusUnauthorized, httpapi.CodeAuthRequired, "Authentication required")
		return nil, false
	}
	return principal, true
}

// denyPermission terminates the request with 403 PERMISSION_DENIED for a
// single missing permission.
func (m *Middleware) denyPermission(w http.ResponseWriter, r *http.Request, principal *entities.Principal, permission entities.Permission) {
	m.logger.Warn("permission denied",
		"userId", principal.ID,
		"role", principal.Role,
		"requiredPermission", permission,
		"method", r.Method,
		"path", r.URL.Path,
	)
	m.recordDecision(httpapi.CodePermissionDenied)
	httpapi.Write(w, http.StatusForbidden, &httpapi.Response{
		Message:            "Insufficient permissions",
		Code:               httpapi.CodePermissionDenied,
		RequiredPermission: permission,
	})
}

// denyPermissions terminates the request with 403 PERMISSION_DENIED carrying
// the full list the check ran against.
func (m *Middleware) denyPermissions(w http.ResponseWriter, r *http.Request, principal *entities.Principal, permissions []entities.Permission) {
	m.logger.Warn("permission denied",
		"userId", principal.ID,
		"role", principal.Role,
		"requiredPermissions", permissions,
		"method", r.Method,
		"path", r.URL.Path,
	)
	m.recordDecision(httpapi.CodePermissionDenied)
	httpapi.Write(w, http.StatusForbidden, &httpapi.Response{
		Message:             "Insufficient permissions",
		Code:                httpapi.CodePermissionDenied,
		RequiredPermissions: permissions,
	})
}

// denyRole terminates the request with 403 ROLE_DENIED.
func (m *Middleware) denyRole(w http.ResponseWriter, r *http.Request, principal *entities.Principal, roles []entities.Role) {
	m.logger.Warn("role denied",
		"userId", principal.ID,
		"role", principal.Role,
		"requiredRoles", roles,
		"method", r.Method,
		"path", r.URL.Path,
	)
	m.recordDecision(httpapi.CodeRoleDenied)
	httpapi.Write(w, http.StatusForbidden, &httpapi.Response{
		Message:       "Access restricted to authorized roles",
		Code:          httpapi.CodeRoleDenied,
		RequiredRoles: roles,
		Role:          principal.Role,
	})
}

// resourceIDFromRequest pulls the target resource ID out of the request path,
// trying each known parameter name in order.
func resourceIDFromRequest(r *http.Request) string {
	for _, name := range resourceIDPathValues {
		if v := r.PathValue(name); v != "" {
			return v
		}
	}
	return ""
}
