package metrics

import "github.com/prometheus/client_golang/prometheus"

// PersonalizationMetrics exposes counters/histograms for the fast path and
// the batch analyzer.
type PersonalizationMetrics struct {
	messagesTotal *prometheus.CounterVec
	factsTotal    *prometheus.CounterVec
	storeErrors   *prometheus.CounterVec
	mergeLatency  prometheus.Histogram
	contextLength prometheus.Histogram
	analyzerRuns  *prometheus.CounterVec
}

func NewPersonalizationMetrics(reg prometheus.Registerer) *PersonalizationMetrics {
	m := &PersonalizationMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "personalization",
			Name:      "messages_total",
			Help:      "Messages processed by the fast path",
		}, []string{"outcome"}),
		factsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "personalization",
			Name:      "facts_extracted_total",
			Help:      "Facts extracted, by fact type",
		}, []string{"fact_type"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "personalization",
			Name:      "store_errors_total",
			Help:      "Profile store failures, by operation",
		}, []string{"op"}),
		mergeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wellness",
			Subsystem: "personalization",
			Name:      "merge_latency_seconds",
			Help:      "Latency of the read-merge-write cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		contextLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wellness",
			Subsystem: "personalization",
			Name:      "context_block_chars",
			Help:      "Length of synthesized context blocks",
			Buckets:   prometheus.ExponentialBuckets(64, 2, 8),
		}),
		analyzerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellness",
			Subsystem: "personalization",
			Name:      "analyzer_runs_total",
			Help:      "Batch analyzer runs",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.factsTotal, m.storeErrors,
		m.mergeLatency, m.contextLength, m.analyzerRuns)
	return m
}

func (m *PersonalizationMetrics) ObserveMessage(outcome string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(outcome).Inc()
}

func (m *PersonalizationMetrics) ObserveFacts(factType string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.factsTotal.WithLabelValues(factType).Add(float64(n))
}

func (m *PersonalizationMetrics) ObserveStoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

func (m *PersonalizationMetrics) ObserveMergeLatency(seconds float64) {
	if m == nil {
		return
	}
	m.mergeLatency.Observe(seconds)
}

func (m *PersonalizationMetrics) ObserveContextLength(chars int) {
	if m == nil {
		return
	}
	m.contextLength.Observe(float64(chars))
}

func (m *PersonalizationMetrics) ObserveAnalyzerRun(outcome string) {
	if m == nil {
		return
	}
	m.analyzerRuns.WithLabelValues(outcome).Inc()
}
