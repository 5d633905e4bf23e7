// Package metrics holds the Prometheus metrics of a single tool run.
// Each run owns a registry; batch runs export it as a node_exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "menutools"

// Run is the metric set for one invocation. A nil *Run records nothing.
type Run struct {
	ItemsEnriched    *prometheus.CounterVec
	FieldsBackfilled *prometheus.CounterVec
	TagsAdded        *prometheus.CounterVec
	Documents        *prometheus.CounterVec
	DocumentDuration *prometheus.HistogramVec
	CacheMirror      *prometheus.CounterVec
	ItemsAdded       *prometheus.CounterVec
	LastSuccess      *prometheus.GaugeVec
}

// New creates the metric set and registers it on reg.
func New(reg prometheus.Registerer) *Run {
	m := &Run{
		ItemsEnriched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_enriched_total",
			Help:      "Menu items passed through enrichment",
		}, []string{"domain"}),

		FieldsBackfilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_backfilled_total",
			Help:      "Absent item fields filled with a default",
		}, []string{"domain", "field"}),

		TagsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tags_added_total",
			Help:      "Tags added to items by category merge or inference",
		}, []string{"domain", "tag"}),

		Documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Menu documents processed",
		}, []string{"domain", "status"}), // "ok" / "failed"

		DocumentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time to read, enrich and write one menu document",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"domain"}),

		CacheMirror: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_mirror_total",
			Help:      "Enriched documents mirrored to the cache",
		}, []string{"result"}), // "ok" / "error"

		ItemsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_added_total",
			Help:      "Drafted items appended to a menu",
		}, []string{"category"}),

		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}, []string{"tool"}),
	}

	reg.MustRegister(
		m.ItemsEnriched, m.FieldsBackfilled, m.TagsAdded,
		m.Documents, m.DocumentDuration, m.CacheMirror,
		m.ItemsAdded, m.LastSuccess,
	)

	return m
}

// ObserveDocument records the outcome and duration of one document.
func (m *Run) ObserveDocument(domain string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.Documents.WithLabelValues(domain, status).Inc()
	m.DocumentDuration.WithLabelValues(domain).Observe(d.Seconds())
}

// RecordEnrichment adds the per-document counters.
func (m *Run) RecordEnrichment(domain string, items int, fields, tags map[string]int) {
	if m == nil {
		return
	}
	m.ItemsEnriched.WithLabelValues(domain).Add(float64(items))
	for f, n := range fields {
		m.FieldsBackfilled.WithLabelValues(domain, f).Add(float64(n))
	}
	for t, n := range tags {
		m.TagsAdded.WithLabelValues(domain, t).Add(float64(n))
	}
}

// ItemAdded counts one appended item.
func (m *Run) ItemAdded(category string) {
	if m == nil {
		return
	}
	m.ItemsAdded.WithLabelValues(category).Inc()
}

// MarkSuccess stamps the completion time for tool.
func (m *Run) MarkSuccess(tool string, now time.Time) {
	if m == nil {
		return
	}
	m.LastSuccess.WithLabelValues(tool).Set(float64(now.Unix()))
}

// WriteTextfile exports everything gathered by g to path. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
