package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters for the appointment scheduling flow.
type SchedulingMetrics struct {
	scheduledTotal   *prometheus.CounterVec
	rescheduledTotal *prometheus.CounterVec
	cancelledTotal   prometheus.Counter
	conflictsTotal   prometheus.Counter
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		scheduledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "scheduling",
			Name:      "appointments_scheduled_total",
			Help:      "Total appointments successfully scheduled",
		}, []string{"room"}),
		rescheduledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "scheduling",
			Name:      "appointments_rescheduled_total",
			Help:      "Total appointments successfully rescheduled",
		}, []string{"room"}),
		cancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "scheduling",
			Name:      "appointments_cancelled_total",
			Help:      "Total appointments cancelled",
		}),
		conflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "scheduling",
			Name:      "room_conflicts_total",
			Help:      "Total requests rejected because every room was booked",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.scheduledTotal, m.rescheduledTotal, m.cancelledTotal, m.conflictsTotal)
	return m
}

func (m *SchedulingMetrics) ObserveScheduled(room string) {
	if m == nil {
		return
	}
	m.scheduledTotal.WithLabelValues(room).Inc()
}

func (m *SchedulingMetrics) ObserveRescheduled(room string) {
	if m == nil {
		return
	}
	m.rescheduledTotal.WithLabelValues(room).Inc()
}

func (m *SchedulingMetrics) ObserveCancelled() {
	if m == nil {
		return
	}
	m.cancelledTotal.Inc()
}

func (m *SchedulingMetrics) ObserveConflict() {
	if m == nil {
		return
	}
	m.conflictsTotal.Inc()
}
