// Package metrics provides Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Ingestion outcomes used as label values.
const (
	OutcomeSaved  = "saved"
	OutcomeFailed = "failed"
)

// Digest tick outcomes used as label values.
const (
	OutcomeOK       = "ok"
	OutcomeQueryErr = "query_error"
	OutcomeSendErr  = "send_error"
)

// Metrics bundles Prometheus collectors for ingestion and the digest
// scheduler.
type Metrics struct {
	Registry             *prometheus.Registry
	RecordsIngestedTotal *prometheus.CounterVec
	IngestBatchesTotal   prometheus.Counter
	DigestTicksTotal     *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	records := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goharvest_records_ingested_total",
			Help: "Total scraped records processed by the ingestion pipeline.",
		},
		[]string{"outcome"},
	)
	batches := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "goharvest_ingest_batches_total",
			Help: "Total ingestion batches processed.",
		},
	)
	digestTicks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goharvest_digest_ticks_total",
			Help: "Total digest scheduler ticks by outcome.",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(records, batches, digestTicks)

	return &Metrics{
		Registry:             registry,
		RecordsIngestedTotal: records,
		IngestBatchesTotal:   batches,
		DigestTicksTotal:     digestTicks,
	}
}

// IncRecord increments the ingested records counter for an outcome.
func (m *Metrics) IncRecord(outcome string) {
	m.RecordsIngestedTotal.WithLabelValues(outcome).Inc()
}

// IncBatch increments the batches counter.
func (m *Metrics) IncBatch() {
	m.IngestBatchesTotal.Inc()
}

// IncDigestTick increments the digest ticks counter for an outcome.
func (m *Metrics) IncDigestTick(outcome string) {
	m.DigestTicksTotal.WithLabelValues(outcome).Inc()
}
