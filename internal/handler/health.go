package handler

import (
	"net/http"

	"github.com/shoppiq/list-gateway/internal/events"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	publisher *events.Publisher
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(publisher *events.Publisher) *HealthHandler {
	return &HealthHandler{
		publisher: publisher,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	// Events are optional; only a configured-but-dead connection makes
	// the instance not ready.
	if h.publisher != nil && !h.publisher.IsConnected() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
