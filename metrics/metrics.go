// Package metrics carries the ambient observability layer for a simulation
// run: per-run prometheus counters and histograms, snapshotted to a text
// file next to the result stream once the run completes. There is no live
// scrape target — a batch simulator has no uptime to export metrics
// during — so the registry is private to the run and written out, not
// served.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds every counter/histogram a simulation run reports.
type Metrics struct {
	registry *prometheus.Registry

	paymentsTotal   *prometheus.CounterVec
	attemptsTotal   *prometheus.CounterVec
	feeMsat         prometheus.Histogram
	pathLengthHops  prometheus.Histogram
	shardsPerPayment prometheus.Histogram
}

// New registers a fresh set of collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lnsim",
			Name:      "payments_total",
			Help:      "Payments attempted, labeled by terminal verdict.",
		}, []string{"verdict"}),
		attemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lnsim",
			Name:      "attempts_total",
			Help:      "Path-finding attempts, labeled by success.",
		}, []string{"success"}),
		feeMsat: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lnsim",
			Name:      "fee_msat",
			Help:      "Total fee paid per successful payment, in millisatoshi.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 10),
		}),
		pathLengthHops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lnsim",
			Name:      "path_length_hops",
			Help:      "Hop count of paths found during the run.",
			Buckets:   prometheus.LinearBuckets(1, 1, 20),
		}),
		shardsPerPayment: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lnsim",
			Name:      "shards_per_payment",
			Help:      "Number of MPP shards a payment was split into.",
			Buckets:   prometheus.LinearBuckets(1, 1, 16),
		}),
	}

	registry.MustRegister(
		m.paymentsTotal, m.attemptsTotal, m.feeMsat, m.pathLengthHops,
		m.shardsPerPayment,
	)

	return m
}

// RecordPayment counts one payment's terminal verdict.
func (m *Metrics) RecordPayment(verdict string) {
	m.paymentsTotal.WithLabelValues(verdict).Inc()
}

// RecordAttempt counts one path-finding attempt.
func (m *Metrics) RecordAttempt(success bool) {
	m.attemptsTotal.WithLabelValues(boolLabel(success)).Inc()
}

// ObserveFee records the total fee paid by a successful payment.
func (m *Metrics) ObserveFee(feeMsat float64) {
	m.feeMsat.Observe(feeMsat)
}

// ObservePathLength records the hop count of a found path.
func (m *Metrics) ObservePathLength(hops int) {
	m.pathLengthHops.Observe(float64(hops))
}

// ObserveShardCount records how many shards a payment was split into.
func (m *Metrics) ObserveShardCount(shards int) {
	m.shardsPerPayment.Observe(float64(shards))
}

// WriteSnapshot renders every registered metric as text exposition format,
// the same format a scrape endpoint would serve.
func (m *Metrics) WriteSnapshot(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("encoding metric family %s: %w", family.GetName(), err)
		}
	}

	return nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
