package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

type healthStatus string

const (
	statusHealthy   healthStatus = "healthy"
	statusUnhealthy healthStatus = "unhealthy"
)

type componentCheck struct {
	Status     healthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	DurationMs int64        `json:"duration_ms"`
}

type healthResponse struct {
	Status     healthStatus              `json:"status"`
	CheckedAt  time.Time                 `json:"checked_at"`
	Components map[string]componentCheck `json:"components"`
}

// HealthHandler serves liveness and readiness. Readiness pings the
// database; the registry is useless without its store.
type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)

	check := componentCheck{
		Status:     statusHealthy,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Status = statusUnhealthy
		check.Message = err.Error()
	}

	resp := healthResponse{
		Status:     check.Status,
		CheckedAt:  time.Now(),
		Components: map[string]componentCheck{"postgres": check},
	}

	code := http.StatusOK
	if check.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
