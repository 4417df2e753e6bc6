package sink

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/resilience"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
	Close() error
}

// KafkaSink publishes each summary as a JSON event keyed by dataset.
type KafkaSink struct {
	publisher Publisher
	retry     resilience.RetryConfig
}

func NewKafkaSink(p Publisher, retry resilience.RetryConfig) *KafkaSink {
	return &KafkaSink{publisher: p, retry: retry}
}

func (k *KafkaSink) Name() string { return "kafka" }

func (k *KafkaSink) Write(ctx context.Context, s Summary) error {
	event := kafka.Event{Key: s.Dataset, Value: s}
	return resilience.Retry(ctx, "publish summary", k.retry, func() error {
		return k.publisher.Publish(ctx, event)
	})
}

func (k *KafkaSink) Close() error {
	return k.publisher.Close()
}
