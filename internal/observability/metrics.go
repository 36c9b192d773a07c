package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jam"

// Metrics holds the scoring engine's prometheus instruments. A nil *Metrics is
// valid and turns every observation into a no-op, so tests and tools can run
// without a registry.
type Metrics struct {
	registry *prometheus.Registry

	answerSubmissions *prometheus.CounterVec
	clueOpens         *prometheus.CounterVec
	lockFailures      prometheus.Counter
	txRetries         prometheus.Counter
	opDuration        *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		answerSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answer_submissions_total",
			Help:      "Answer submissions by outcome.",
		}, []string{"outcome"}),
		clueOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clue_opens_total",
			Help:      "Clue reveal requests by outcome.",
		}, []string{"outcome"}),
		lockFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lock_acquire_failures_total",
			Help:      "Scoring lock acquisitions that timed out or failed.",
		}),
		txRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_serialization_retries_total",
			Help:      "Serializable transactions retried after a conflict abort.",
		}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_op_duration_seconds",
			Help:      "End-to-end duration of scoring operations, lock wait included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(m.answerSubmissions, m.clueOpens, m.lockFailures, m.txRetries, m.opDuration)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.answerSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveClueOpen(outcome string) {
	if m == nil {
		return
	}
	m.clueOpens.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncLockFailure() {
	if m == nil {
		return
	}
	m.lockFailures.Inc()
}

func (m *Metrics) IncTxRetry() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}

func (m *Metrics) ObserveOpDuration(op string, seconds float64) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(op).Observe(seconds)
}
