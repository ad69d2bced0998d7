package scheduling

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vetnova/vetclinic-platform/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	engine *Engine
	logger *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(engine *Engine, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Routes mounts the appointment endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/rooms", h.Rooms)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// Create handles POST /appointments requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.engine.CreateAppointment(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /appointments/{id} requests
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.engine.UpdateAppointment(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /appointments/{id} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	if err := h.engine.CancelAppointment(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /appointments/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	appt, err := h.engine.GetAppointment(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

// ListAppointmentsResponse is the response for listing appointments
type ListAppointmentsResponse struct {
	Appointments []Appointment `json:"appointments"`
	Count        int           `json:"count"`
}

// List handles GET /appointments requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.engine.ListAppointments(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListAppointmentsResponse{
		Appointments: appointments,
		Count:        len(appointments),
	})
}

// Rooms handles GET /appointments/rooms requests, feeding the calendar's
// resource column configuration.
func (h *Handler) Rooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Rooms())
}

func (h *Handler) appointmentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeError maps engine error kinds to stable HTTP statuses so clients can
// branch on kind, never on message text.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	var sErr *StorageError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation"})
	case errors.Is(err, ErrAppointmentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: "not_found"})
	case errors.Is(err, ErrNoRoomAvailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "no_room_available"})
	case errors.As(err, &sErr):
		h.logger.Error("appointment storage failure", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage failure", Kind: "storage"})
	default:
		h.logger.Error("unexpected scheduling error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: "internal"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
