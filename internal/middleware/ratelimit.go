package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/httpapi"
)

// ipLimiter pairs a token bucket with the time it was last used so stale
// entries can be evicted.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore hands out one token bucket per client IP and evicts
// buckets that have been idle for a while.
type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	r        rate.Limit
	b        int
	stopCh   chan struct{}
	stopOnce sync.Once
}

// newRateLimiterStore creates a store allowing perMinute requests per client
// IP. A non-positive perMinute disables limiting.
func newRateLimiterStore(perMinute int) *rateLimiterStore {
	r := rate.Inf
	b := 1
	if perMinute > 0 {
		r = rate.Limit(float64(perMinute) / 60.0)
		b = perMinute
	}
	s := &rateLimiterStore{
		limiters: make(map[string]*ipLimiter),
		r:        r,
		b:        b,
		stopCh:   make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// get returns the limiter for the given IP, creating one on first sight.
func (s *rateLimiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(s.r, s.b)}
		s.limiters[ip] = l
	}
	l.lastSeen = time.Now()
	return l.limiter
}

// cleanup periodically drops limiters that have not been used recently.
func (s *rateLimiterStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for ip, l := range s.limiters {
				if time.Since(l.lastSeen) > 10*time.Minute {
					delete(s.limiters, ip)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

// Stop terminates the cleanup goroutine. Safe to call multiple times.
func (s *rateLimiterStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// RateLimit throttles requests per client IP. Rejected requests receive
// 429 RATE_LIMITED with a Retry-After header.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := m.limiters.get(realIP(r))

		reservation := limiter.Reserve()
		if !reservation.OK() || reservation.Delay() > 0 {
			if reservation.OK() {
				reservation.Cancel()
			}
			retryAfter := int(reservation.Delay().Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httpapi.WriteError(w, http.StatusTooManyRequests, httpapi.CodeRateLimited, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// realIP extracts the client IP, honoring reverse-proxy headers before
// falling back to the connection address.
func realIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
