package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	idleTimeout     = 10 * time.Minute
	cleanupInterval = 5 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages one token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter allows perMinute requests per client with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()
	return v.limiter.AllowN(v.lastSeen, 1)
}

// Cleanup drops visitors idle for longer than idleTimeout.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idleTimeout {
			delete(rl.visitors, key)
		}
	}
}

// Run cleans up until done is closed.
func (rl *RateLimiter) Run(done <-chan struct{}) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

// ClientIP is the host part of RemoteAddr. Forwarding headers are only
// honoured when the router runs chi's RealIP behind a trusted proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware rejects clients over their budget with 429.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(ClientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Te veel verzoeken. Probeer het over een minuut opnieuw.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
