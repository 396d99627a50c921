package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"academic-service/internal/httputil"
	"academic-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

type Handler struct {
	checks  map[string]Check
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewHandler(checks map[string]Check, metrics *metrics.Metrics) *Handler {
	return &Handler{
		checks:  checks,
		timeout: 2 * time.Second,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready runs every dependency check and answers 503 if any fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	results, ok := h.Run(r.Context())
	if !ok {
		httputil.RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Checks: results})
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ready", Checks: results})
}

// Run executes the checks in name order.
func (h *Handler) Run(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
		start := time.Now()
		err := h.checks[name](checkCtx)
		cancel()

		h.metrics.RecordDependencyCheck(ctx, name, time.Since(start), err)
		if err != nil {
			results[name] = err.Error()
			healthy = false
			continue
		}
		results[name] = "ok"
	}
	return results, healthy
}
