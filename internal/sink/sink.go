// Package sink delivers finished summaries: to a ROUGE system file on disk
// and, optionally, as an event on a Kafka topic.
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/metrics"
)

// Summary is one finished summary, sentences in selection order.
type Summary struct {
	RunID       string    `json:"run_id"`
	Dataset     string    `json:"dataset"`
	Tag         string    `json:"tag"`
	Fingerprint string    `json:"fingerprint"`
	Sentences   []string  `json:"sentences"`
	Ranks       []int     `json:"ranks"`
	Cached      bool      `json:"cached"`
	CreatedAt   time.Time `json:"created_at"`
}

type Sink interface {
	Name() string
	Write(ctx context.Context, s Summary) error
}

// Multi writes to each sink in order and stops at the first failure.
type Multi struct {
	sinks   []Sink
	metrics *metrics.Metrics
}

func NewMulti(m *metrics.Metrics, sinks ...Sink) *Multi {
	return &Multi{sinks: sinks, metrics: m}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Write(ctx context.Context, s Summary) error {
	for _, sk := range m.sinks {
		err := sk.Write(ctx, s)
		m.record(sk.Name(), err)
		if err != nil {
			return fmt.Errorf("sink %s: %w", sk.Name(), err)
		}
	}
	return nil
}

func (m *Multi) record(name string, err error) {
	if m.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.metrics.SinkWritesTotal.WithLabelValues(name, status).Inc()
}
