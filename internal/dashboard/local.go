package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/vetnova/vetclinic-platform/internal/animals"
	"github.com/vetnova/vetclinic-platform/internal/invoices"
	"github.com/vetnova/vetclinic-platform/internal/owners"
	"github.com/vetnova/vetclinic-platform/internal/scheduling"
)

type appointmentLister interface {
	ListAppointments(ctx context.Context) ([]scheduling.Appointment, error)
}

// LocalStatsSource computes dashboard stats directly from the repositories.
// Used when the service runs without a database.
type LocalStatsSource struct {
	owners       owners.Repository
	animals      animals.Repository
	invoices     invoices.Repository
	appointments appointmentLister
}

// NewLocalStatsSource wires a stats source over the in-process repositories.
func NewLocalStatsSource(o owners.Repository, a animals.Repository, i invoices.Repository, appts appointmentLister) *LocalStatsSource {
	return &LocalStatsSource{
		owners:       o,
		animals:      a,
		invoices:     i,
		appointments: appts,
	}
}

// GetStats aggregates counts across the repositories. The period filter
// applies to appointments by visit time and to invoices by issue date.
func (s *LocalStatsSource) GetStats(ctx context.Context, start, end *time.Time) (*Stats, error) {
	stats := &Stats{}

	filtered := start != nil && end != nil
	if filtered {
		stats.PeriodStart = start.Format(time.RFC3339)
		stats.PeriodEnd = end.Format(time.RFC3339)
	} else {
		stats.PeriodStart = "all-time"
		stats.PeriodEnd = "now"
	}

	ownerList, err := s.owners.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: list owners: %w", err)
	}
	stats.OwnersRegistered = int64(len(ownerList))

	animalList, err := s.animals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: list animals: %w", err)
	}
	stats.AnimalsRegistered = int64(len(animalList))

	appts, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: list appointments: %w", err)
	}
	for _, appt := range appts {
		if filtered && (appt.Start.Before(*start) || !appt.Start.Before(*end)) {
			continue
		}
		stats.AppointmentsTotal++
	}

	invoiceList, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: list invoices: %w", err)
	}
	for _, invoice := range invoiceList {
		if filtered && (invoice.CreatedAt.Before(*start) || !invoice.CreatedAt.Before(*end)) {
			continue
		}
		stats.InvoicesIssued++
		stats.RevenueGrossTotal += invoice.PriceGross
	}

	return stats, nil
}
