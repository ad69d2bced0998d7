package treatments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// Handler handles HTTP requests for the treatment catalog
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new treatments handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Routes mounts the catalog endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{name}", h.Delete)
	return r
}

// Create handles POST /treatments requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var treatment Treatment
	if err := json.NewDecoder(r.Body).Decode(&treatment); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), treatment)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrDuplicateName) {
			status = http.StatusConflict
		} else if !errors.Is(err, ErrMissingName) && !errors.Is(err, ErrNegativePrice) {
			h.logger.Error("failed to create treatment", "error", err)
			status = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.logger.Info("treatment added to catalog", "name", created.Name, "price_net", created.PriceNet)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ListTreatmentsResponse is the response for listing the catalog
type ListTreatmentsResponse struct {
	Treatments []Treatment `json:"treatments"`
	Count      int         `json:"count"`
}

// List handles GET /treatments requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list treatments", "error", err)
		http.Error(w, "failed to list treatments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListTreatmentsResponse{Treatments: treatments, Count: len(treatments)})
}

// Delete handles DELETE /treatments/{name} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteByName(r.Context(), name); err != nil {
		if errors.Is(err, ErrTreatmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete treatment", "error", err, "name", name)
		http.Error(w, "failed to delete treatment", http.StatusInternalServerError)
		return
	}

	h.logger.Info("treatment removed from catalog", "name", name)
	w.WriteHeader(http.StatusNoContent)
}
