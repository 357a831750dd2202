package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
)

// Stable machine-readable codes carried in the error envelope. Clients
// branch on these, so they never change even when messages do.
const (
	CodeAuthRequired         = "AUTH_REQUIRED"
	CodePermissionDenied     = "PERMISSION_DENIED"
	CodeRoleDenied           = "ROLE_DENIED"
	CodeResourceIDMissing    = "RESOURCE_ID_MISSING"
	CodeResourceAccessDenied = "RESOURCE_ACCESS_DENIED"
	CodeResourceCheckError   = "RESOURCE_CHECK_ERROR"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeNotFound             = "NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Response is the JSON envelope shared by every endpoint. Denials carry
// a message, a stable code, and whichever context fields apply; data
// responses carry the payload under data. Field names are part of the
// client contract.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`

	RequiredPermission  entities.Permission   `json:"requiredPermission,omitempty"`
	RequiredPermissions []entities.Permission `json:"requiredPermissions,omitempty"`
	RequiredRoles       []entities.Role       `json:"requiredRoles,omitempty"`
	Role                entities.Role         `json:"role,omitempty"`
	ResourceType        entities.ResourceKind `json:"resourceType,omitempty"`
	ResourceID          string                `json:"resourceId,omitempty"`
	RequiredAction      entities.Permission   `json:"requiredAction,omitempty"`
}

// Write writes the envelope as JSON with the given status code.
func Write(w http.ResponseWriter, status int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteData writes a successful envelope wrapping the payload.
func WriteData(w http.ResponseWriter, status int, data any) {
	Write(w, status, &Response{Success: true, Data: data})
}

// WriteError writes a failure envelope with a code and message.
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	Write(w, status, &Response{Success: false, Code: code, Message: message})
}
