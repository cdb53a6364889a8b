package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/daap14/crewdesk/internal/api/middleware"
	"github.com/daap14/crewdesk/internal/api/response"
)

// DBPinger reports whether the storage backend is reachable.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	pinger  DBPinger
	driver  string
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pinger DBPinger, driver, version string) *HealthHandler {
	return &HealthHandler{
		pinger:  pinger,
		driver:  driver,
		version: version,
	}
}

type databaseStatus struct {
	Connected bool   `json:"connected"`
	Driver    string `json:"driver"`
}

type healthData struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Database databaseStatus `json:"database"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status, code := "healthy", http.StatusOK
	connected := true
	if err := h.pinger.Ping(r.Context()); err != nil {
		slog.Warn("database ping failed", "error", err)
		status, code = "degraded", http.StatusServiceUnavailable
		connected = false
	}

	response.Success(w, code, healthData{
		Status:  status,
		Version: h.version,
		Database: databaseStatus{
			Connected: connected,
			Driver:    h.driver,
		},
	}, requestID)
}
