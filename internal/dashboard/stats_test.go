package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"github.com/vetnova/vetclinic-platform/internal/animals"
	"github.com/vetnova/vetclinic-platform/internal/invoices"
	"github.com/vetnova/vetclinic-platform/internal/owners"
	"github.com/vetnova/vetclinic-platform/internal/scheduling"
)

func TestStatsRepository_GetStats_AllTime(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM owners`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM animals`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(18)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(40)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM invoices`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(35)))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(price_gross\), 0\) FROM invoices`).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(float64(1512.5)))

	repo := NewStatsRepositoryWithDB(mock)
	stats, err := repo.GetStats(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.OwnersRegistered != 12 {
		t.Errorf("OwnersRegistered = %d, want 12", stats.OwnersRegistered)
	}
	if stats.AnimalsRegistered != 18 {
		t.Errorf("AnimalsRegistered = %d, want 18", stats.AnimalsRegistered)
	}
	if stats.AppointmentsTotal != 40 {
		t.Errorf("AppointmentsTotal = %d, want 40", stats.AppointmentsTotal)
	}
	if stats.InvoicesIssued != 35 {
		t.Errorf("InvoicesIssued = %d, want 35", stats.InvoicesIssued)
	}
	if stats.RevenueGrossTotal != 1512.5 {
		t.Errorf("RevenueGrossTotal = %v, want 1512.5", stats.RevenueGrossTotal)
	}
	if stats.PeriodStart != "all-time" {
		t.Errorf("PeriodStart = %q, want 'all-time'", stats.PeriodStart)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStatsRepository_GetStats_WithTimeRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM owners`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM animals`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(18)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE start_at >= \$1 AND start_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(9)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM invoices WHERE created_at >= \$1 AND created_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(price_gross\), 0\) FROM invoices WHERE created_at >= \$1 AND created_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(float64(254.1)))

	repo := NewStatsRepositoryWithDB(mock)
	stats, err := repo.GetStats(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.AppointmentsTotal != 9 {
		t.Errorf("AppointmentsTotal = %d, want 9", stats.AppointmentsTotal)
	}
	if stats.RevenueGrossTotal != 254.1 {
		t.Errorf("RevenueGrossTotal = %v, want 254.1", stats.RevenueGrossTotal)
	}
	if stats.PeriodStart != start.Format(time.RFC3339) {
		t.Errorf("PeriodStart = %q, want %q", stats.PeriodStart, start.Format(time.RFC3339))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

type staticAppointments struct {
	appts []scheduling.Appointment
}

func (s staticAppointments) ListAppointments(ctx context.Context) ([]scheduling.Appointment, error) {
	return s.appts, nil
}

func seededLocalSource(t *testing.T) *LocalStatsSource {
	t.Helper()
	ctx := context.Background()

	ownerRepo := owners.NewInMemoryRepository()
	if _, err := ownerRepo.Create(ctx, owners.Owner{
		Name:    "Maria Lopez",
		Email:   "maria@example.com",
		DNI:     "12345678Z",
		Address: "Calle Mayor 1, Madrid",
	}); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}

	animalRepo := animals.NewInMemoryRepository()
	if _, err := animalRepo.Create(ctx, animals.Animal{
		Name:     "Rocky",
		Chip:     "941000012345678",
		Species:  "Perro",
		OwnerDNI: "12345678Z",
	}); err != nil {
		t.Fatalf("failed to seed animal: %v", err)
	}

	invoiceRepo := invoices.NewInMemoryRepository()
	for _, net := range []float64{30, 25} {
		if _, err := invoiceRepo.Create(ctx, invoices.Invoice{
			OwnerDNI:   "12345678Z",
			AnimalChip: "941000012345678",
			Treatment:  "Consulta general",
			Date:       "2026-08-20",
			PriceNet:   net,
		}); err != nil {
			t.Fatalf("failed to seed invoice: %v", err)
		}
	}

	appts := staticAppointments{appts: []scheduling.Appointment{
		{ID: 1, Owner: "Maria Lopez", Animal: "Rocky", Treatment: "Consulta general",
			Start: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
			Room:  "A"},
		{ID: 2, Owner: "Maria Lopez", Animal: "Rocky", Treatment: "Control",
			Start: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC),
			Room:  "A"},
	}}

	return NewLocalStatsSource(ownerRepo, animalRepo, invoiceRepo, appts)
}

func TestLocalStatsSource_AllTime(t *testing.T) {
	source := seededLocalSource(t)

	stats, err := source.GetStats(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.OwnersRegistered != 1 {
		t.Errorf("OwnersRegistered = %d, want 1", stats.OwnersRegistered)
	}
	if stats.AnimalsRegistered != 1 {
		t.Errorf("AnimalsRegistered = %d, want 1", stats.AnimalsRegistered)
	}
	if stats.AppointmentsTotal != 2 {
		t.Errorf("AppointmentsTotal = %d, want 2", stats.AppointmentsTotal)
	}
	if stats.InvoicesIssued != 2 {
		t.Errorf("InvoicesIssued = %d, want 2", stats.InvoicesIssued)
	}
	want := invoices.GrossFromNet(30) + invoices.GrossFromNet(25)
	if stats.RevenueGrossTotal != want {
		t.Errorf("RevenueGrossTotal = %v, want %v", stats.RevenueGrossTotal, want)
	}
}

func TestLocalStatsSource_PeriodFiltersAppointments(t *testing.T) {
	source := seededLocalSource(t)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	stats, err := source.GetStats(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.AppointmentsTotal != 1 {
		t.Errorf("AppointmentsTotal = %d, want 1", stats.AppointmentsTotal)
	}
	// owner/animal counts are not filtered
	if stats.OwnersRegistered != 1 {
		t.Errorf("OwnersRegistered = %d, want 1", stats.OwnersRegistered)
	}
}

func TestHandler_GetStats(t *testing.T) {
	handler := NewHandler(seededLocalSource(t), nil)
	router := handler.Routes()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.AppointmentsTotal != 2 {
		t.Errorf("AppointmentsTotal = %d, want 2", stats.AppointmentsTotal)
	}
	if stats.PeriodStart != "all-time" {
		t.Errorf("PeriodStart = %q, want 'all-time'", stats.PeriodStart)
	}
}

func TestHandler_RequiresBothStartAndEnd(t *testing.T) {
	handler := NewHandler(seededLocalSource(t), nil)
	router := handler.Routes()

	req := httptest.NewRequest(http.MethodGet, "/stats?start=2026-08-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/stats?end=2026-09-01T00:00:00Z", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
