// Package metrics provides Prometheus metrics for the results pipeline.
//
// The pipeline runs as one-shot stages, so nothing here starts an
// exposition endpoint; counters are recorded on the package registry and
// can be scraped or read by an embedding process (tests read them with
// the client testutil helpers).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the pipeline.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	// Ingest metrics.
	extractions        *prometheus.CounterVec
	extractionFailures prometheus.Counter
	syntaxFailures     prometheus.Counter

	// Validation metrics.
	recordsValidated prometheus.Counter
	recordsRejected  prometheus.Counter
	defects          *prometheus.CounterVec

	// Store metrics.
	recordsStored     prometheus.Counter
	duplicatesRemoved prometheus.Counter
	staleRejections   prometheus.Counter
	writeLatency      prometheus.Histogram
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "pawmate",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.extractions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "extractions_total",
		Help:      "Payload extractions by method (code_block, direct, line_scan).",
	}, []string{"method"})
	m.extractionFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "extraction_failures_total",
		Help:      "Bodies from which no payload could be extracted.",
	})
	m.syntaxFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "syntax_failures_total",
		Help:      "Extracted payloads that failed to parse.",
	})
	m.recordsValidated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "records_validated_total",
		Help:      "Records that passed all validation categories.",
	})
	m.recordsRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "records_rejected_total",
		Help:      "Records rejected with one or more defects.",
	})
	m.defects = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "validation_defects_total",
		Help:      "Validation defects by category.",
	}, []string{"category"})
	m.recordsStored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "records_stored_total",
		Help:      "Records written to the partitioned store.",
	})
	m.duplicatesRemoved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "duplicates_removed_total",
		Help:      "Stale duplicate files removed before a write.",
	})
	m.staleRejections = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "stale_rejections_total",
		Help:      "Incoming records rejected because a newer file exists.",
	})
	m.writeLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "store_write_latency_ms",
		Help:      "Latency of store writes in milliseconds.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	return m
}

// Registry returns the manager's registry for exposition or testing.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

var defaultManager = NewManager()

// Default returns the package-level manager.
func Default() *Manager { return defaultManager }

// RecordExtraction counts a successful extraction by method.
func RecordExtraction(method string) {
	defaultManager.extractions.WithLabelValues(method).Inc()
}

// RecordExtractionFailure counts a body with no extractable payload.
func RecordExtractionFailure() { defaultManager.extractionFailures.Inc() }

// RecordSyntaxFailure counts an unparseable extracted payload.
func RecordSyntaxFailure() { defaultManager.syntaxFailures.Inc() }

// RecordValidated counts a record that passed all categories.
func RecordValidated() { defaultManager.recordsValidated.Inc() }

// RecordRejected counts a record with at least one defect.
func RecordRejected() { defaultManager.recordsRejected.Inc() }

// RecordDefects counts n defects for a category.
func RecordDefects(category string, n int) {
	defaultManager.defects.WithLabelValues(category).Add(float64(n))
}

// RecordStored counts a record written to the store.
func RecordStored() { defaultManager.recordsStored.Inc() }

// RecordDuplicatesRemoved counts stale duplicate files removed.
func RecordDuplicatesRemoved(n int) {
	defaultManager.duplicatesRemoved.Add(float64(n))
}

// RecordStaleRejection counts a write rejected as stale.
func RecordStaleRejection() { defaultManager.staleRejections.Inc() }

// RecordWriteLatency observes a store write latency in milliseconds.
func RecordWriteLatency(ms float64) { defaultManager.writeLatency.Observe(ms) }
