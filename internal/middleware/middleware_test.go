package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/config"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/metrics"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/services/authorization"
)

const testJWTSecret = "middleware-test-secret"

// capturingHandler is a slog.Handler that records every log entry so tests
// can assert on levels and counts.
type capturingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *capturingHandler) countAtLevel(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

// mockUserRepository is an in-memory UserRepository for middleware tests.
type mockUserRepository struct {
	users map[string]*entities.Principal
	err   error
}

func newMockUserRepository(users ...*entities.Principal) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]*entities.Principal)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.Principal) error {
	if m.err != nil {
		return m.err
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*entities.Principal, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.Principal, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entities.Principal, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*entities.Principal, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.Principal) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) CountByRole(ctx context.Context) (map[entities.Role]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	counts := make(map[entities.Role]int)
	for _, u := range m.users {
		counts[u.Role]++
	}
	return counts, nil
}

// mockChecker is a configurable CheckerInterface recording its calls.
type mockChecker struct {
	allowed bool
	err     error

	calls          int
	lastKind       entities.ResourceKind
	lastResourceID string
	lastAction     entities.Permission
}

func (m *mockChecker) CanAccessResource(ctx context.Context, principal *entities.Principal, kind entities.ResourceKind, resourceID string, action entities.Permission) (bool, error) {
	m.calls++
	m.lastKind = kind
	m.lastResourceID = resourceID
	m.lastAction = action
	if m.err != nil {
		return false, m.err
	}
	return m.allowed, nil
}

func (m *mockChecker) CanPerformAction(ctx context.Context, principal *entities.Principal, action entities.Permission, kind entities.ResourceKind, resourceID string) (bool, error) {
	return m.CanAccessResource(ctx, principal, kind, resourceID, action)
}

// testEnv bundles a Middleware with the fakes behind it.
type testEnv struct {
	mw        *Middleware
	logs      *capturingHandler
	users     *mockUserRepository
	checker   *mockChecker
	collector *metrics.Collector
}

func newTestEnv(t *testing.T, users ...*entities.Principal) *testEnv {
	t.Helper()

	logs := &capturingHandler{}
	repo := newMockUserRepository(users...)
	checker := &mockChecker{allowed: true}
	collector := metrics.NewCollector()

	mw := New(
		&config.AuthConfig{JWTSecret: testJWTSecret, TokenTTLMinutes: 60},
		repo,
		authorization.NewDefaultEvaluator(),
		checker,
		slog.New(logs),
		collector,
		nil,
	)
	t.Cleanup(mw.Close)

	return &testEnv{mw: mw, logs: logs, users: repo, checker: checker, collector: collector}
}

func studentPrincipal() *entities.Principal {
	return &entities.Principal{ID: "student-1", Email: "student@example.edu", Name: "Student One", Role: entities.RoleStudent, Active: true}
}

func instructorPrincipal() *entities.Principal {
	return &entities.Principal{ID: "instructor-1", Email: "instructor@example.edu", Name: "Instructor One", Role: entities.RoleInstructor, Active: true}
}

func adminPrincipal() *entities.Principal {
	return &entities.Principal{ID: "admin-1", Email: "admin@example.edu", Name: "Admin One", Role: entities.RoleAdministrator, Active: true}
}

// signToken signs an HS256 token for the given subject with the test secret.
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// nextRecorder is a terminal handler that records whether it was reached and
// with which principal.
type nextRecorder struct {
	called    bool
	principal *entities.Principal
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

// serveWithPrincipal runs the wrapped handler with the principal already in
// the request context, as RequireAuth would leave it.
func serveWithPrincipal(h http.Handler, principal *entities.Principal, r *http.Request) *httptest.ResponseRecorder {
	if principal != nil {
		r = r.WithContext(WithPrincipal(r.Context(), principal))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// decodeEnvelope parses the JSON denial envelope from a recorded response.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *httpapi.Response {
	t.Helper()
	var resp httpapi.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return &resp
}
