package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPersonalizationMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPersonalizationMetrics(reg)

	m.ObserveMessage("ok")
	m.ObserveMessage("ok")
	m.ObserveMessage("store_error")
	m.ObserveFacts("name", 1)
	m.ObserveFacts("interest", 3)
	m.ObserveFacts("age", 0) // zero counts are skipped
	m.ObserveStoreError("put")
	m.ObserveMergeLatency(0.004)
	m.ObserveContextLength(240)
	m.ObserveAnalyzerRun("ok")

	if got := testutil.ToFloat64(m.messagesTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("messages ok = %v", got)
	}
	if got := testutil.ToFloat64(m.messagesTotal.WithLabelValues("store_error")); got != 1 {
		t.Errorf("messages store_error = %v", got)
	}
	if got := testutil.ToFloat64(m.factsTotal.WithLabelValues("interest")); got != 3 {
		t.Errorf("facts interest = %v", got)
	}
	if got := testutil.ToFloat64(m.factsTotal.WithLabelValues("age")); got != 0 {
		t.Errorf("facts age = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.storeErrors.WithLabelValues("put")); got != 1 {
		t.Errorf("store errors = %v", got)
	}
	if got := testutil.ToFloat64(m.analyzerRuns.WithLabelValues("ok")); got != 1 {
		t.Errorf("analyzer runs = %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *PersonalizationMetrics
	// None of these may panic when metrics are disabled.
	m.ObserveMessage("ok")
	m.ObserveFacts("name", 1)
	m.ObserveStoreError("get")
	m.ObserveMergeLatency(0.1)
	m.ObserveContextLength(100)
	m.ObserveAnalyzerRun("invalid")
}
