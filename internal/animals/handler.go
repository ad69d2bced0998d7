package animals

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// Handler handles HTTP requests for animals
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new animals handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Routes mounts the animal endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{chip}", h.Get)
	r.Delete("/{chip}", h.Delete)
	return r
}

// Create handles POST /animals requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var animal Animal
	if err := json.NewDecoder(r.Body).Decode(&animal); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), animal)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrDuplicateChip) {
			status = http.StatusConflict
		} else if !isValidationError(err) {
			h.logger.Error("failed to create animal", "error", err)
			status = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.logger.Info("animal registered", "chip", created.Chip, "name", created.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ListAnimalsResponse is the response for listing animals
type ListAnimalsResponse struct {
	Animals []Animal `json:"animals"`
	Count   int      `json:"count"`
}

// List handles GET /animals requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	animals, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list animals", "error", err)
		http.Error(w, "failed to list animals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListAnimalsResponse{Animals: animals, Count: len(animals)})
}

// Get handles GET /animals/{chip} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	chip := chi.URLParam(r, "chip")
	if chip == "" {
		http.Error(w, "missing chip", http.StatusBadRequest)
		return
	}

	animal, err := h.repo.GetByChip(r.Context(), chip)
	if err != nil {
		if errors.Is(err, ErrAnimalNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch animal", "error", err, "chip", chip)
		http.Error(w, "failed to fetch animal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(animal)
}

// Delete handles DELETE /animals/{chip} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	chip := chi.URLParam(r, "chip")
	if chip == "" {
		http.Error(w, "missing chip", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteByChip(r.Context(), chip); err != nil {
		if errors.Is(err, ErrAnimalNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete animal", "error", err, "chip", chip)
		http.Error(w, "failed to delete animal", http.StatusInternalServerError)
		return
	}

	h.logger.Info("animal removed", "chip", chip)
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingChip) ||
		errors.Is(err, ErrMissingSpecies) ||
		errors.Is(err, ErrMissingOwnerDNI)
}
