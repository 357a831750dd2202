package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
)

func TestRateLimiterStore_BlocksAfterBurst(t *testing.T) {
	store := newRateLimiterStore(2)
	defer store.Stop()

	limiter := store.get("192.0.2.1")
	if !limiter.Allow() {
		t.Fatal("first request should be allowed")
	}
	if !limiter.Allow() {
		t.Fatal("second request should be allowed within the burst")
	}
	if limiter.Allow() {
		t.Error("third immediate request should be throttled")
	}
}

func TestRateLimiterStore_SeparateIPs(t *testing.T) {
	store := newRateLimiterStore(1)
	defer store.Stop()

	if !store.get("192.0.2.1").Allow() {
		t.Fatal("first IP should be allowed")
	}
	if !store.get("192.0.2.2").Allow() {
		t.Error("second IP should have its own budget")
	}
}

func TestRateLimiterStore_Disabled(t *testing.T) {
	store := newRateLimiterStore(0)
	defer store.Stop()

	limiter := store.get("192.0.2.1")
	for i := 0; i < 100; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d throttled with limiting disabled", i)
		}
	}
}

func TestRateLimiterStore_StopIsIdempotent(t *testing.T) {
	store := newRateLimiterStore(1)
	store.Stop()
	store.Stop()
}

func TestRateLimit_TooManyRequests(t *testing.T) {
	env := newTestEnv(t)
	// Replace the default store with a tight budget.
	env.mw.limiters.Stop()
	env.mw.limiters = newRateLimiterStore(1)
	t.Cleanup(env.mw.limiters.Stop)

	h := env.mw.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	first.RemoteAddr = "192.0.2.1:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", rec.Code, http.StatusOK)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	second.RemoteAddr = "192.0.2.1:4001"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, second)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header on a throttled response")
	}
	resp := decodeEnvelope(t, rec)
	if resp.Code != httpapi.CodeRateLimited {
		t.Errorf("code = %s, want %s", resp.Code, httpapi.CodeRateLimited)
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "X-Real-IP takes priority",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.9"},
			want:       "203.0.113.7",
		},
		{
			name:       "first X-Forwarded-For entry",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.9, 10.0.0.2, 10.0.0.3"},
			want:       "198.51.100.9",
		},
		{
			name:       "single X-Forwarded-For entry",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.9"},
			want:       "198.51.100.9",
		},
		{
			name:       "remote address host",
			remoteAddr: "192.0.2.5:5000",
			want:       "192.0.2.5",
		},
		{
			name:       "remote address without port",
			remoteAddr: "192.0.2.5",
			want:       "192.0.2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := realIP(r); got != tt.want {
				t.Errorf("realIP() = %s, want %s", got, tt.want)
			}
		})
	}
}
