package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/calebh/storyspace/internal/adapters/api"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthHandler struct {
	*BaseHandler
	version string
	pool    *pgxpool.Pool // For readiness check
}

func NewHealthHandler(base *BaseHandler, version string, pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     version,
		pool:        pool,
	}
}

// GetLiveness implements the liveness probe endpoint.
// This is a lightweight check with no external dependencies.
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	response := api.HealthStatus{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Version:   &h.version,
	}

	h.WriteJSONResponse(w, r, response, http.StatusOK)
}

// GetReadiness implements the readiness probe endpoint.
// This checks all critical dependencies.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	timestamp := time.Now()
	status := api.Healthy
	httpStatus := http.StatusOK

	var checks *api.HealthStatusChecks

	if h.pool != nil {
		checks = &api.HealthStatusChecks{}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.Ping(ctx); err != nil {
			dbStatus := api.Down
			checks.Database = &dbStatus
			status = api.Unhealthy
			httpStatus = http.StatusServiceUnavailable
		} else {
			dbStatus := api.Up
			checks.Database = &dbStatus
		}
	} else {
		status = api.Degraded
	}

	response := api.HealthStatus{
		Status:    status,
		Timestamp: timestamp,
		Version:   &h.version,
		Checks:    checks,
	}

	h.WriteJSONResponse(w, r, response, httpStatus)
}
