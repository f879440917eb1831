// Package metrics exposes Prometheus counters for the storage layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "producttracker"

// Metrics holds the counters updated by the storage layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	StorageWrites      *prometheus.CounterVec
	StorageWriteErrors *prometheus.CounterVec
	CorruptReads       *prometheus.CounterVec
	RecordsAdded       prometheus.Counter
}

// New creates the counters and registers them with reg. A nil reg skips
// registration, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StorageWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "writes_total",
			Help:      "Collections written to the backend, by key.",
		}, []string{"key"}),
		StorageWriteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "write_errors_total",
			Help:      "Backend writes that failed, by key.",
		}, []string{"key"}),
		CorruptReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "corrupt_reads_total",
			Help:      "Collections that could not be decoded and were read as empty, by key.",
		}, []string{"key"}),
		RecordsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_added_total",
			Help:      "Production records added.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.StorageWrites, m.StorageWriteErrors, m.CorruptReads, m.RecordsAdded)
	}
	return m
}

// ObserveWrite counts a backend write of key and whether it failed.
func (m *Metrics) ObserveWrite(key string, err error) {
	if m == nil {
		return
	}
	m.StorageWrites.WithLabelValues(key).Inc()
	if err != nil {
		m.StorageWriteErrors.WithLabelValues(key).Inc()
	}
}

// ObserveCorruptRead counts a collection under key that failed to decode.
func (m *Metrics) ObserveCorruptRead(key string) {
	if m == nil {
		return
	}
	m.CorruptReads.WithLabelValues(key).Inc()
}

// ObserveRecordAdded counts a new record.
func (m *Metrics) ObserveRecordAdded() {
	if m == nil {
		return
	}
	m.RecordsAdded.Inc()
}
