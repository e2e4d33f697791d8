package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MHmolesini/alphavantage-sub000/internal/api/response"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/health"
)

// HealthChecker is implemented by the PostgreSQL pool and the BigQuery client
type HealthChecker interface {
	Health(ctx context.Context) *health.Status
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	warehouse HealthChecker
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(warehouse HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		warehouse: warehouse,
		startTime: time.Now(),
		version:   version,
	}
}

// SimpleHealthResponse represents a simple health check response
type SimpleHealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// DetailedHealthResponse represents detailed health information
type DetailedHealthResponse struct {
	Status        string         `json:"status"`
	Version       string         `json:"version"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Timestamp     time.Time      `json:"timestamp"`
	Warehouse     *health.Status `json:"warehouse"`
}

// Live returns simple liveness check
// GET /health/live
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, SimpleHealthResponse{
		Status:    health.StatusHealthy,
		Timestamp: time.Now(),
	})
}

// Health returns warehouse health; 503 when the warehouse is unreachable
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.warehouse.Health(r.Context())

	code := http.StatusOK
	if status.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	response.JSON(w, code, DetailedHealthResponse{
		Status:        status.Status,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now(),
		Warehouse:     status,
	})
}
