package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/config"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/metrics"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/services/authorization"
)

// Middleware bundles authentication and authorization enforcement for the HTTP API.
// Each factory method returns a standard func(http.Handler) http.Handler wrapper
// so handlers can stack them in any order.
type Middleware struct {
	jwtSecret []byte
	users     repositories.UserRepository
	evaluator authorization.EvaluatorInterface
	checker   authorization.CheckerInterface
	logger    *slog.Logger
	collector *metrics.Collector
	exporter  *metrics.PrometheusExporter
	limiters  *rateLimiterStore
}

// New creates a new Middleware with the given dependencies.
// The collector and exporter may be nil when metrics are not wired.
func New(
	cfg *config.AuthConfig,
	users repositories.UserRepository,
	evaluator authorization.EvaluatorInterface,
	checker authorization.CheckerInterface,
	logger *slog.Logger,
	collector *metrics.Collector,
	exporter *metrics.PrometheusExporter,
) *Middleware {
	return &Middleware{
		jwtSecret: []byte(cfg.JWTSecret),
		users:     users,
		evaluator: evaluator,
		checker:   checker,
		logger:    logger,
		collector: collector,
		exporter:  exporter,
		limiters:  newRateLimiterStore(cfg.RateLimitPerMinute),
	}
}

// Close releases background resources held by the middleware.
func (m *Middleware) Close() {
	if m.limiters != nil {
		m.limiters.Stop()
	}
}

// RequireAuth authenticates the request from its Bearer token and attaches the
// resolved principal to the request context. Requests without a valid token for
// an active account receive 401 AUTH_REQUIRED.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.authenticate(r)
		if err != nil {
			m.logger.Warn("authentication failed",
				"path", r.URL.Path,
				"error", err.Error(),
			)
			m.recordDecision(httpapi.CodeAuthRequired)
			httpapi.WriteError(w, http.StatusUnauthorized, httpapi.CodeAuthRequired, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// authenticate validates the Bearer token and resolves it to an active principal.
func (m *Middleware) authenticate(r *http.Request) (*entities.Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.New("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("malformed authorization header")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token missing subject claim")
	}

	principal, err := m.users.GetByID(r.Context(), sub)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal %s: %w", sub, err)
	}
	if !principal.Active {
		return nil, fmt.Errorf("account %s is inactive", sub)
	}

	return principal, nil
}

// recordDecision feeds an authorization outcome to the metrics pipeline.
func (m *Middleware) recordDecision(outcome string) {
	if m.collector != nil {
		m.collector.RecordDecision(outcome)
	}
	if m.exporter != nil {
		m.exporter.RecordDecision(outcome)
	}
}
