package handler

import (
	"net/http"
	"runtime"
	"time"

	"t1d-manager-api/internal/cache"
	"t1d-manager-api/pkg/response"
)

// StartTime tracks when the server started for uptime calculation
var StartTime = time.Now()

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	appName    string
	appVersion string
	cache      *cache.Client
}

// New creates a new handler.
func New(appName, appVersion string, cacheClient *cache.Client) *Handler {
	return &Handler{
		appName:    appName,
		appVersion: appVersion,
		cache:      cacheClient,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.appVersion,
	}
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /api/v1/ready. A disabled cache does not block
// readiness: the service degrades to uncached operation.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "ok"
	if h.cache == nil || !h.cache.Enabled() {
		cacheStatus = "disabled"
	}

	checks := []Check{
		{Name: "api", Status: "ok"},
		{Name: "cache", Status: cacheStatus},
	}

	resp := ReadyResponse{
		Ready:     true,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	response.OK(w, resp)
}

// StatusChecks represents the checks in status response
type StatusChecks struct {
	Cache    string  `json:"cache"`
	MemoryMB float64 `json:"memory_mb"`
}

// StatusResponse represents the unified status response for uptime monitoring
type StatusResponse struct {
	Service       string       `json:"service"`
	Status        string       `json:"status"`
	Timestamp     string       `json:"timestamp"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Checks        StatusChecks `json:"checks"`
}

// Status handles GET /api/status - unified health check for uptime monitoring
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	cacheStatus := "disabled"
	if h.cache != nil && h.cache.Enabled() {
		cacheStatus = "ok"
	}

	resp := StatusResponse{
		Service:       h.appName,
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(StartTime).Seconds()),
		Checks: StatusChecks{
			Cache:    cacheStatus,
			MemoryMB: float64(int(memoryMB*100)) / 100,
		},
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, resp)
}
