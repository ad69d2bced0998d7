package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vetnova/vetclinic-platform/internal/animals"
	"github.com/vetnova/vetclinic-platform/internal/dashboard"
	"github.com/vetnova/vetclinic-platform/internal/invoices"
	"github.com/vetnova/vetclinic-platform/internal/owners"
	"github.com/vetnova/vetclinic-platform/internal/scheduling"
	"github.com/vetnova/vetclinic-platform/internal/treatments"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ownerRepo := owners.NewInMemoryRepository()
	animalRepo := animals.NewInMemoryRepository()
	invoiceRepo := invoices.NewInMemoryRepository()
	treatmentRepo := treatments.NewDefaultCatalog()

	store := scheduling.NewMemoryStore(nil)
	policy := scheduling.NewFirstFitPolicy([]scheduling.Room{
		{ID: "A", Label: "Consulta A"},
		{ID: "B", Label: "Consulta B"},
	})
	engine := scheduling.NewEngine(store, policy, ownerRepo, animalRepo, scheduling.EngineConfig{
		Hours: scheduling.BusinessHours{
			Opening:  8 * time.Hour,
			Closing:  18 * time.Hour,
			Weekdays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		},
	}, nil, nil)

	return New(&Config{
		AppointmentsHandler: scheduling.NewHandler(engine, nil),
		OwnersHandler:       owners.NewHandler(ownerRepo, nil),
		AnimalsHandler:      animals.NewHandler(animalRepo, nil),
		InvoicesHandler:     invoices.NewHandler(invoiceRepo, nil),
		TreatmentsHandler:   treatments.NewHandler(treatmentRepo, nil),
		DashboardHandler: dashboard.NewHandler(
			dashboard.NewLocalStatsSource(ownerRepo, animalRepo, invoiceRepo, engine), nil),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestFrontDeskFlowAcrossMountedRoutes(t *testing.T) {
	router := newTestRouter(t)

	post := func(path string, payload any) *httptest.ResponseRecorder {
		t.Helper()
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post("/owners", owners.Owner{
		Name:    "Maria Lopez",
		Email:   "maria@example.com",
		DNI:     "12345678Z",
		Address: "Calle Mayor 1, Madrid",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create owner: status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	rec = post("/animals", animals.Animal{
		Name:     "Rocky",
		Chip:     "941000012345678",
		Species:  "Perro",
		OwnerDNI: "12345678Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create animal: status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	start := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	rec = post("/appointments", scheduling.CreateAppointmentRequest{
		Owner:     "Maria Lopez",
		Animal:    "Rocky",
		Treatment: "Consulta general",
		Start:     start,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create appointment: status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var appt scheduling.Appointment
	if err := json.NewDecoder(rec.Body).Decode(&appt); err != nil {
		t.Fatalf("failed to decode appointment: %v", err)
	}
	if appt.Room != "A" {
		t.Errorf("room = %q, want A", appt.Room)
	}

	rec = post("/invoices", invoices.Invoice{
		OwnerDNI:   "12345678Z",
		AnimalChip: "941000012345678",
		Treatment:  "Consulta general",
		Date:       "2026-08-31",
		PriceNet:   30,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create invoice: status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: status = %d, want %d", w.Code, http.StatusOK)
	}
	var stats dashboard.Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.OwnersRegistered != 1 || stats.AnimalsRegistered != 1 {
		t.Errorf("stats = %+v, want one owner and one animal", stats)
	}
	if stats.AppointmentsTotal != 1 || stats.InvoicesIssued != 1 {
		t.Errorf("stats = %+v, want one appointment and one invoice", stats)
	}

	req = httptest.NewRequest(http.MethodGet, "/treatments", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("treatments: status = %d, want %d", w.Code, http.StatusOK)
	}
	var catalog treatments.ListTreatmentsResponse
	if err := json.NewDecoder(w.Body).Decode(&catalog); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if catalog.Count != 5 {
		t.Errorf("catalog count = %d, want 5", catalog.Count)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
