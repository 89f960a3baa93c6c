package handler

import (
	"net/http"

	"github.com/placehub/placehub/internal/metrics"
)

// MetricsHandler exposes an operational counter snapshot.
type MetricsHandler struct {
	snap metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snap metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snap: snap}
}

// Snapshot handles GET /debug/metrics.
func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snap.Snapshot())
}
