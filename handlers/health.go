package handlers

import (
	"cfb-trends-go/interfaces"
	"cfb-trends-go/logging"
	"cfb-trends-go/middleware"
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// HealthStatus is the body of a health response
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler probes the service's dependencies
type HealthHandler struct {
	checks map[string]interfaces.Pinger
	logger *logging.Logger
}

// NewHealthHandler creates a health handler; checks may be empty
func NewHealthHandler(checks map[string]interfaces.Pinger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logging.WithPrefix("HealthHandler"),
	}
}

// Health handles GET /health. Any failing dependency reports 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, p interfaces.Pinger) {
			defer wg.Done()
			results[i] = p.Ping(ctx)
		}(i, h.checks[name])
	}
	wg.Wait()

	status := HealthStatus{Status: "ok", Checks: make(map[string]string, len(names))}
	code := http.StatusOK
	for i, name := range names {
		if err := results[i]; err != nil {
			h.logger.Warnf("Health check %s failed: %v", name, err)
			status.Checks[name] = "error: " + err.Error()
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}

	middleware.WriteJSON(w, r, start, code, status)
}
