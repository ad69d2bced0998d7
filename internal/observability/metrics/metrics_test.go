package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSchedulingMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulingMetrics(reg)

	m.ObserveScheduled("A")
	m.ObserveScheduled("A")
	m.ObserveScheduled("B")
	m.ObserveRescheduled("B")
	m.ObserveCancelled()
	m.ObserveConflict()
	m.ObserveConflict()

	if got := testutil.ToFloat64(m.scheduledTotal.WithLabelValues("A")); got != 2 {
		t.Errorf("scheduled A = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.scheduledTotal.WithLabelValues("B")); got != 1 {
		t.Errorf("scheduled B = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rescheduledTotal.WithLabelValues("B")); got != 1 {
		t.Errorf("rescheduled B = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cancelledTotal); got != 1 {
		t.Errorf("cancelled = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.conflictsTotal); got != 2 {
		t.Errorf("conflicts = %v, want 2", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *SchedulingMetrics
	m.ObserveScheduled("A")
	m.ObserveRescheduled("A")
	m.ObserveCancelled()
	m.ObserveConflict()
}
