package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelsMatch(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}

func TestWizardMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWizardMetrics(reg)
	m.ObserveTransition("step1", "step2")
	m.ObserveTransition("step1", "step2")
	m.ObserveValidationFailure("email")
	m.ObserveBlocked("next", "submitting")

	if got := counterValue(t, reg, "supplychain_wizard_transitions_total", map[string]string{"from": "step1", "to": "step2"}); got != 2 {
		t.Fatalf("expected 2 transitions, got %v", got)
	}
	if got := counterValue(t, reg, "supplychain_wizard_validation_failures_total", map[string]string{"field": "email"}); got != 1 {
		t.Fatalf("expected 1 validation failure, got %v", got)
	}
	if got := counterValue(t, reg, "supplychain_wizard_blocked_actions_total", map[string]string{"action": "next", "reason": "submitting"}); got != 1 {
		t.Fatalf("expected 1 blocked action, got %v", got)
	}
}

func TestLeadMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveInsert("postgres", true, 0.02)
	m.ObserveInsert("postgres", false, 0.5)
	m.ObserveHookFailure("email")

	if got := counterValue(t, reg, "supplychain_leads_inserts_total", map[string]string{"store": "postgres", "status": "failure"}); got != 1 {
		t.Fatalf("expected 1 failed insert, got %v", got)
	}
	if got := counterValue(t, reg, "supplychain_leads_hook_failures_total", map[string]string{"hook": "email"}); got != 1 {
		t.Fatalf("expected 1 hook failure, got %v", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var w *WizardMetrics
	w.ObserveTransition("a", "b")
	w.ObserveValidationFailure("name")
	w.ObserveBlocked("back", "step1")

	var l *LeadMetrics
	l.ObserveInsert("memory", true, 0.1)
	l.ObserveHookFailure("sqs")
}
