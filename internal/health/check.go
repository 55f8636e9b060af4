// Package health reports whether the market data upstream is usable.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

const defaultCheckTimeout = 2 * time.Second

// CheckFunc performs one health check.
type CheckFunc func(ctx context.Context) (healthy bool, message string)

// Check is the outcome of one CheckFunc.
type Check struct {
	Healthy  bool   `json:"healthy"`
	Message  string `json:"message,omitempty"`
	Duration string `json:"duration"`
}

// Report aggregates every registered check.
type Report struct {
	Status    string           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Version   string           `json:"version,omitempty"`
	Timestamp string           `json:"timestamp"`
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool {
	return r.Status == "ok"
}

// Checker runs named checks concurrently, each under its own timeout.
type Checker struct {
	version string
	timeout time.Duration
	mu      sync.RWMutex
	checks  map[string]CheckFunc
}

// NewChecker creates a Checker stamping reports with version.
func NewChecker(version string) *Checker {
	return &Checker{
		version: version,
		timeout: defaultCheckTimeout,
		checks:  make(map[string]CheckFunc),
	}
}

// Register adds or replaces a named check.
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Run executes all checks and waits for them.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for k, v := range c.checks {
		checks[k] = v
	}
	c.mu.RUnlock()

	report := Report{
		Status:    "ok",
		Checks:    make(map[string]Check, len(checks)),
		Version:   c.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, check := range checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			start := time.Now()
			healthy, msg := check(checkCtx)
			result := Check{Healthy: healthy, Message: msg, Duration: time.Since(start).String()}

			mu.Lock()
			report.Checks[name] = result
			if !healthy {
				report.Status = "degraded"
			}
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()

	return report
}

// BreakerState is satisfied by circuit breakers exposing their state.
type BreakerState interface {
	State() gobreaker.State
}

// BreakerCheck reports unhealthy while the breaker is open.
// Half-open counts as healthy since probes are being let through.
func BreakerCheck(b BreakerState) CheckFunc {
	return func(ctx context.Context) (bool, string) {
		state := b.State()
		return state != gobreaker.StateOpen, "circuit " + state.String()
	}
}
