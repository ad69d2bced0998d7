package owners

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// Handler handles HTTP requests for owners
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new owners handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Routes mounts the owner endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{dni}", h.Get)
	r.Delete("/{dni}", h.Delete)
	return r
}

// Create handles POST /owners requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var owner Owner
	if err := json.NewDecoder(r.Body).Decode(&owner); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), owner)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrDuplicateDNI) {
			status = http.StatusConflict
		} else if !isValidationError(err) {
			h.logger.Error("failed to create owner", "error", err)
			status = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.logger.Info("owner registered", "dni", created.DNI, "name", created.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ListOwnersResponse is the response for listing owners
type ListOwnersResponse struct {
	Owners []Owner `json:"owners"`
	Count  int     `json:"count"`
}

// List handles GET /owners requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owners, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list owners", "error", err)
		http.Error(w, "failed to list owners", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListOwnersResponse{Owners: owners, Count: len(owners)})
}

// Get handles GET /owners/{dni} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	dni := chi.URLParam(r, "dni")
	if dni == "" {
		http.Error(w, "missing dni", http.StatusBadRequest)
		return
	}

	owner, err := h.repo.GetByDNI(r.Context(), dni)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch owner", "error", err, "dni", dni)
		http.Error(w, "failed to fetch owner", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(owner)
}

// Delete handles DELETE /owners/{dni} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	dni := chi.URLParam(r, "dni")
	if dni == "" {
		http.Error(w, "missing dni", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteByDNI(r.Context(), dni); err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete owner", "error", err, "dni", dni)
		http.Error(w, "failed to delete owner", http.StatusInternalServerError)
		return
	}

	h.logger.Info("owner removed", "dni", dni)
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrMissingDNI) ||
		errors.Is(err, ErrMissingAddress)
}
