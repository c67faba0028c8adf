package handlers

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 5 * time.Second

type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports dependency status. Postgres is a hard
// dependency; Redis only backs the rate limiters, which fail open, so
// its loss degrades the service without taking it down.
type HealthHandler struct {
	db    HealthChecker
	redis HealthChecker
}

func NewHealthHandler(db, redis HealthChecker) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string                 `json:"status"`
	Service string                 `json:"service"`
	Checks  map[string]CheckResult `json:"checks"`
	Time    string                 `json:"time"`
}

func runCheck(ctx context.Context, checker HealthChecker) CheckResult {
	if err := checker.Health(ctx); err != nil {
		return CheckResult{Status: "failed", Error: err.Error()}
	}
	return CheckResult{Status: "ok"}
}

// Health returns 200 while entries can be served: "ok" when everything
// passes, "degraded" when only Redis is down. A Postgres failure means
// no journaling at all and reports 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	postgres := runCheck(ctx, h.db)
	redis := runCheck(ctx, h.redis)

	response := HealthResponse{
		Status:  "ok",
		Service: "daybook",
		Checks: map[string]CheckResult{
			"postgres": postgres,
			"redis":    redis,
		},
		Time: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	switch {
	case postgres.Status != "ok":
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	case redis.Status != "ok":
		response.Status = "degraded"
	}

	writeJSON(w, status, response)
}

// Ready gates traffic on Postgres alone; the limiters tolerate a Redis
// outage.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}
