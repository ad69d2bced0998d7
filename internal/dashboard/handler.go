package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// Handler provides HTTP endpoints for the clinic dashboard.
type Handler struct {
	source StatsSource
	logger *logging.Logger
}

// NewHandler creates a new dashboard HTTP handler.
func NewHandler(source StatsSource, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		source: source,
		logger: logger,
	}
}

// Routes mounts the dashboard endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/stats", h.GetStats)
	return r
}

// GetStats returns aggregated clinic metrics.
// GET /dashboard/stats
// Query params:
//   - start: RFC3339 timestamp for period start (optional)
//   - end: RFC3339 timestamp for period end (optional)
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	var start, end *time.Time
	if s := r.URL.Query().Get("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			http.Error(w, `{"error": "invalid start time, use RFC3339 format"}`, http.StatusBadRequest)
			return
		}
		start = &t
	}
	if e := r.URL.Query().Get("end"); e != "" {
		t, err := time.Parse(time.RFC3339, e)
		if err != nil {
			http.Error(w, `{"error": "invalid end time, use RFC3339 format"}`, http.StatusBadRequest)
			return
		}
		end = &t
	}

	// If only one is provided, require both
	if (start == nil) != (end == nil) {
		http.Error(w, `{"error": "both start and end must be provided, or neither"}`, http.StatusBadRequest)
		return
	}

	stats, err := h.source.GetStats(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to get dashboard stats", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.logger.Error("failed to encode dashboard stats", "error", err)
	}
}
