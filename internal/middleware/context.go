package middleware

import (
	"context"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
)

type contextKey int

const (
	contextKeyPrincipal contextKey = iota
	contextKeyRequestID
)

// WithPrincipal returns a new context with the authenticated principal attached.
func WithPrincipal(ctx context.Context, p *entities.Principal) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal, p)
}

// PrincipalFromContext extracts the authenticated principal from context, or nil.
func PrincipalFromContext(ctx context.Context) *entities.Principal {
	p, _ := ctx.Value(contextKeyPrincipal).(*entities.Principal)
	return p
}

// WithRequestID returns a new context with the request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, id)
}

// RequestIDFromContext extracts the request ID from context, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}
