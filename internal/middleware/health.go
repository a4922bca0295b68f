package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

const checkTimeout = 2 * time.Second

// HealthChecker probes one dependency. The MinIO and local object stores
// implement it directly.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a plain function, such as the memory store's Ping.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DatabaseChecker pings the project database.
type DatabaseChecker struct {
	DB Pinger
}

func (d DatabaseChecker) Check(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

type checkResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

type healthReport struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]checkResult `json:"checks"`
}

// runChecks probes all dependencies in parallel, each with its own timeout.
func runChecks(ctx context.Context, checkers map[string]HealthChecker) (map[string]checkResult, bool) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		healthy = true
		out     = make(map[string]checkResult, len(checkers))
	)
	for name, c := range checkers {
		if c == nil {
			continue
		}
		wg.Add(1)
		go func(name string, c HealthChecker) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			start := time.Now()
			err := c.Check(cctx)
			res := checkResult{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				res.Status, res.Error = "down", err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			out[name] = res
			if err != nil {
				healthy = false
			}
		}(name, c)
	}
	wg.Wait()
	return out, healthy
}

// HealthHandler serves /healthz: 200 when every dependency answers, else 503.
func HealthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks, healthy := runChecks(r.Context(), checkers)
		rep := healthReport{Status: "ok", Timestamp: time.Now().UTC(), Checks: checks}
		status := http.StatusOK
		if !healthy {
			rep.Status, status = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(rep)
	}
}

// ReadinessHandler serves /readyz without the per-check detail, for load
// balancers.
func ReadinessHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, healthy := runChecks(r.Context(), checkers)
		status, body := http.StatusOK, "ready"
		if !healthy {
			status, body = http.StatusServiceUnavailable, "not ready"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": body})
	}
}

// LivenessHandler only tells the process is up.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
