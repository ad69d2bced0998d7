package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats is the front-desk summary shown on the clinic dashboard.
type Stats struct {
	OwnersRegistered  int64   `json:"owners_registered"`
	AnimalsRegistered int64   `json:"animals_registered"`
	AppointmentsTotal int64   `json:"appointments_total"`
	InvoicesIssued    int64   `json:"invoices_issued"`
	RevenueGrossTotal float64 `json:"revenue_gross_total"`
	PeriodStart       string  `json:"period_start"`
	PeriodEnd         string  `json:"period_end"`
}

// StatsSource produces dashboard stats, optionally filtered to a period.
type StatsSource interface {
	GetStats(ctx context.Context, start, end *time.Time) (*Stats, error)
}

// statsDB defines the database interface needed by StatsRepository
type statsDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatsRepository queries dashboard metrics from the database.
type StatsRepository struct {
	db statsDB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	if pool == nil {
		panic("dashboard: pgx pool required for stats")
	}
	return &StatsRepository{db: pool}
}

// NewStatsRepositoryWithDB allows injecting a mock database for testing.
func NewStatsRepositoryWithDB(db statsDB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats retrieves aggregated clinic metrics. Optional start/end times
// filter appointments by visit time and invoices by issue time; owner and
// animal counts are always all-time. If nil, returns all-time stats.
func (r *StatsRepository) GetStats(ctx context.Context, start, end *time.Time) (*Stats, error) {
	stats := &Stats{}

	var apptFilter, invoiceFilter string
	var args []interface{}
	if start != nil && end != nil {
		apptFilter = " WHERE start_at >= $1 AND start_at < $2"
		invoiceFilter = " WHERE created_at >= $1 AND created_at < $2"
		args = append(args, *start, *end)
		stats.PeriodStart = start.Format(time.RFC3339)
		stats.PeriodEnd = end.Format(time.RFC3339)
	} else {
		stats.PeriodStart = "all-time"
		stats.PeriodEnd = "now"
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM owners`).Scan(&stats.OwnersRegistered); err != nil {
		return nil, fmt.Errorf("dashboard stats: count owners: %w", err)
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM animals`).Scan(&stats.AnimalsRegistered); err != nil {
		return nil, fmt.Errorf("dashboard stats: count animals: %w", err)
	}

	appointmentsQuery := `SELECT COUNT(*) FROM appointments` + apptFilter
	if err := r.db.QueryRow(ctx, appointmentsQuery, args...).Scan(&stats.AppointmentsTotal); err != nil {
		return nil, fmt.Errorf("dashboard stats: count appointments: %w", err)
	}

	invoicesQuery := `SELECT COUNT(*) FROM invoices` + invoiceFilter
	if err := r.db.QueryRow(ctx, invoicesQuery, args...).Scan(&stats.InvoicesIssued); err != nil {
		return nil, fmt.Errorf("dashboard stats: count invoices: %w", err)
	}

	revenueQuery := `SELECT COALESCE(SUM(price_gross), 0) FROM invoices` + invoiceFilter
	if err := r.db.QueryRow(ctx, revenueQuery, args...).Scan(&stats.RevenueGrossTotal); err != nil {
		return nil, fmt.Errorf("dashboard stats: sum revenue: %w", err)
	}

	return stats, nil
}
