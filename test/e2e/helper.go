package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/handlers"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/config"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/metrics"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/middleware"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories/memory"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/services/authorization"
)

const e2eJWTSecret = "e2e-test-secret"

// E2ETestServer hosts the full HTTP pipeline (auth, enforcement,
// handlers) over in-memory stores for scenario tests.
type E2ETestServer struct {
	Server      *httptest.Server
	Users       *memory.UserRepository
	Projects    *memory.ProjectRepository
	Memberships *memory.MembershipRepository
	Collector   *metrics.Collector

	mw *middleware.Middleware
}

// e2eOptions tweaks the default server wiring for individual scenarios.
type e2eOptions struct {
	rateLimitPerMinute int
	checker            authorization.CheckerInterface
}

// SetupE2ETest sets up an E2E test server with the default wiring:
// membership-backed checker and rate limiting disabled.
func SetupE2ETest(t *testing.T) *E2ETestServer {
	t.Helper()
	return setupE2ETest(t, e2eOptions{})
}

func setupE2ETest(t *testing.T, opts e2eOptions) *E2ETestServer {
	t.Helper()

	users := memory.NewUserRepository()
	memberships := memory.NewMembershipRepository(users)
	projects := memory.NewProjectRepository(memberships)

	evaluator := authorization.NewDefaultEvaluator()
	var checker authorization.CheckerInterface = authorization.NewChecker(
		evaluator,
		authorization.NewMembershipOracle(memberships),
	)
	if opts.checker != nil {
		checker = opts.checker
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	collector := metrics.NewCollector()

	cfg := &config.AuthConfig{
		JWTSecret:          e2eJWTSecret,
		RateLimitPerMinute: opts.rateLimitPerMinute,
	}
	mw := middleware.New(cfg, users, evaluator, checker, logger, collector, nil)

	handler := handlers.NewHandler(users, projects, memberships, evaluator, healthOK{}, collector, logger)
	router := handlers.NewRouter(handler, mw, collector, nil)

	server := httptest.NewServer(router)

	return &E2ETestServer{
		Server:      server,
		Users:       users,
		Projects:    projects,
		Memberships: memberships,
		Collector:   collector,
		mw:          mw,
	}
}

// Teardown shuts down the test server.
func (s *E2ETestServer) Teardown(t *testing.T) {
	t.Helper()
	s.Server.Close()
	s.mw.Close()
}

// healthOK reports the backing store as always healthy.
type healthOK struct{}

func (healthOK) HealthCheck() error { return nil }

// SeedUser creates an active user with the given role directly in the store.
func (s *E2ETestServer) SeedUser(t *testing.T, name string, role entities.Role) *entities.Principal {
	t.Helper()

	user := &entities.Principal{
		Name:   name,
		Email:  strings.ToLower(name) + "@example.edu",
		Role:   role,
		Active: true,
	}
	if err := s.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return user
}

// Token issues a signed bearer token for the given user ID.
func (s *E2ETestServer) Token(t *testing.T, userID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e2eJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// Do performs an HTTP request against the test server. An empty token
// sends the request unauthenticated.
func (s *E2ETestServer) Do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// DoEnvelope performs a request and decodes the JSON envelope from the
// response body.
func (s *E2ETestServer) DoEnvelope(t *testing.T, method, path, token string, body any) (int, *httpapi.Response) {
	t.Helper()

	resp := s.Do(t, method, path, token, body)
	defer resp.Body.Close()

	var envelope httpapi.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp.StatusCode, &envelope
}

// CreateProject creates a project through the API as the given user and
// returns the new project ID.
func (s *E2ETestServer) CreateProject(t *testing.T, token, name string) string {
	t.Helper()

	status, envelope := s.DoEnvelope(t, http.MethodPost, "/api/v1/projects", token, map[string]string{
		"name": name,
	})
	if status != http.StatusCreated {
		t.Fatalf("CreateProject(%s) status = %d, want %d", name, status, http.StatusCreated)
	}

	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("CreateProject(%s) data = %T, want object", name, envelope.Data)
	}
	id, ok := data["id"].(string)
	if !ok || id == "" {
		t.Fatalf("CreateProject(%s) returned no project ID", name)
	}
	return id
}

// requireDenial asserts the standard denial envelope shape: success
// false, the expected machine code, and a human message.
func requireDenial(t *testing.T, envelope *httpapi.Response, code string) {
	t.Helper()

	if envelope.Success {
		t.Errorf("envelope.Success = true, want false")
	}
	if envelope.Code != code {
		t.Errorf("envelope.Code = %q, want %q", envelope.Code, code)
	}
	if envelope.Message == "" {
		t.Errorf("envelope.Message is empty, want a human-readable reason")
	}
}

// drain closes a response body after reading it, keeping connections
// reusable between scenario steps.
func drain(t *testing.T, resp *http.Response) {
	t.Helper()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		t.Fatalf("failed to drain response body: %v", err)
	}
	resp.Body.Close()
}

// faultyChecker fails every resource decision with a backend error.
type faultyChecker struct{}

func (faultyChecker) CanAccessResource(ctx context.Context, principal *entities.Principal, kind entities.ResourceKind, resourceID string, action entities.Permission) (bool, error) {
	return false, fmt.Errorf("membership lookup: connection refused")
}

func (faultyChecker) CanPerformAction(ctx context.Context, principal *entities.Principal, action entities.Permission, kind entities.ResourceKind, resourceID string) (bool, error) {
	return false, fmt.Errorf("membership lookup: connection refused")
}
