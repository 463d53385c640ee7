package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "supplychain"

// WizardMetrics exposes counters for lead wizard navigation.
type WizardMetrics struct {
	transitionsTotal   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	blockedTotal       *prometheus.CounterVec
}

func NewWizardMetrics(reg prometheus.Registerer) *WizardMetrics {
	m := &WizardMetrics{
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Wizard state transitions",
		}, []string{"from", "to"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "validation_failures_total",
			Help:      "Step validation failures by field",
		}, []string{"field"}),
		blockedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "blocked_actions_total",
			Help:      "Wizard actions rejected because the control was disabled",
		}, []string{"action", "reason"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitionsTotal, m.validationFailures, m.blockedTotal)
	return m
}

func (m *WizardMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *WizardMetrics) ObserveValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *WizardMetrics) ObserveBlocked(action, reason string) {
	if m == nil {
		return
	}
	m.blockedTotal.WithLabelValues(action, reason).Inc()
}

// LeadMetrics exposes counters/histograms for the lead sink.
type LeadMetrics struct {
	insertsTotal    *prometheus.CounterVec
	insertLatency   *prometheus.HistogramVec
	sideEffectFails *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		insertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "inserts_total",
			Help:      "Lead inserts by backing store and outcome",
		}, []string{"store", "status"}),
		insertLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "insert_latency_seconds",
			Help:      "Latency of lead inserts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"store"}),
		sideEffectFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "hook_failures_total",
			Help:      "Post-insert hook failures (email, events)",
		}, []string{"hook"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.insertsTotal, m.insertLatency, m.sideEffectFails)
	return m
}

func (m *LeadMetrics) ObserveInsert(store string, ok bool, seconds float64) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failure"
	}
	m.insertsTotal.WithLabelValues(store, status).Inc()
	m.insertLatency.WithLabelValues(store).Observe(seconds)
}

func (m *LeadMetrics) ObserveHookFailure(hook string) {
	if m == nil {
		return
	}
	m.sideEffectFails.WithLabelValues(hook).Inc()
}
