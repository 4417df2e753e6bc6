// Package metrics defines the Prometheus metric collectors recorded during a
// summarization run and pushes them to a Pushgateway when the run ends.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds all Prometheus collectors for one process.
type Metrics struct {
	Registry          *prometheus.Registry
	RunsTotal         *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	DocumentsLoaded   prometheus.Counter
	SentencesIndexed  prometheus.Gauge
	VocabularySize    prometheus.Gauge
	SummarySentences  prometheus.Gauge
	SummaryCharacters prometheus.Gauge
	CacheHitsTotal    prometheus.Counter
	CacheMissesTotal  prometheus.Counter
	SinkWritesTotal   *prometheus.CounterVec
}

// New creates all collectors and registers them on a private registry, so
// several instances can coexist in one process (tests, benchmarks).
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_runs_total",
				Help: "Total summarization runs by status (ok, cached, error).",
			},
			[]string{"status"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summarizer_stage_duration_seconds",
				Help:    "Duration of each pipeline stage in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		DocumentsLoaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "summarizer_documents_loaded_total",
				Help: "Total documents read from the document store.",
			},
		),
		SentencesIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "summarizer_sentences_indexed",
				Help: "Number of sentences in the last corpus.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "summarizer_vocabulary_size",
				Help: "Number of distinct normalized words in the last corpus.",
			},
		),
		SummarySentences: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "summarizer_summary_sentences",
				Help: "Number of sentences in the last summary.",
			},
		),
		SummaryCharacters: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "summarizer_summary_characters",
				Help: "Character length of the last summary.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "summarizer_cache_hits_total",
				Help: "Total memo cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "summarizer_cache_misses_total",
				Help: "Total memo cache misses.",
			},
		),
		SinkWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_sink_writes_total",
				Help: "Summary sink writes by sink and status.",
			},
			[]string{"sink", "status"},
		),
	}

	m.Registry.MustRegister(
		m.RunsTotal,
		m.StageDuration,
		m.DocumentsLoaded,
		m.SentencesIndexed,
		m.VocabularySize,
		m.SummarySentences,
		m.SummaryCharacters,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.SinkWritesTotal,
	)

	return m
}

// Push sends every collector to the Pushgateway at url under the given job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
