package invoices

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// Handler handles HTTP requests for invoices
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new invoices handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Routes mounts the billing endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	return r
}

// Create handles POST /invoices requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var invoice Invoice
	if err := json.NewDecoder(r.Body).Decode(&invoice); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), invoice)
	if err != nil {
		status := http.StatusBadRequest
		if !isValidationError(err) {
			h.logger.Error("failed to issue invoice", "error", err)
			status = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.logger.Info("invoice issued",
		"id", created.ID,
		"owner_dni", created.OwnerDNI,
		"price_gross", created.PriceGross,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ListInvoicesResponse is the response for listing invoices
type ListInvoicesResponse struct {
	Invoices []Invoice `json:"invoices"`
	Count    int       `json:"count"`
}

// List handles GET /invoices requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list invoices", "error", err)
		http.Error(w, "failed to list invoices", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListInvoicesResponse{Invoices: invoices, Count: len(invoices)})
}

// Get handles GET /invoices/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	invoice, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch invoice", "error", err, "id", id)
		http.Error(w, "failed to fetch invoice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// Delete handles DELETE /invoices/{id} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to void invoice", "error", err, "id", id)
		http.Error(w, "failed to void invoice", http.StatusInternalServerError)
		return
	}

	h.logger.Info("invoice voided", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func invoiceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid invoice id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingOwnerDNI) ||
		errors.Is(err, ErrMissingAnimalChip) ||
		errors.Is(err, ErrMissingTreatment) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrNegativePrice)
}
