// Package memo memoizes finished summaries by content fingerprint. The memo
// is optional: a failing backend degrades to a miss and the summary is
// recomputed.
package memo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/resilience"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	backend Backend
	timeout time.Duration
	metrics *metrics.Metrics
	group   singleflight.Group
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// New wraps backend. A nil backend disables memoization; a nil m skips
// metric recording.
func New(backend Backend, timeout time.Duration, m *metrics.Metrics) *Cache {
	if backend == nil {
		backend = Noop{}
	}
	return &Cache{
		backend: backend,
		timeout: timeout,
		metrics: m,
		logger:  slog.Default().With("component", "memo"),
	}
}

// Get decodes the value stored under key into dst.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if !c.lookup(ctx, key, dst) {
		c.miss()
		return false
	}
	c.hit()
	c.logger.Debug("memo hit", "key", key)
	return true
}

func (c *Cache) lookup(ctx context.Context, key string, dst any) bool {
	var (
		data  []byte
		found bool
	)
	err := resilience.WithTimeout(ctx, c.timeout, "memo get", func(ctx context.Context) error {
		var err error
		data, found, err = c.backend.Get(ctx, key)
		return err
	})
	if err != nil {
		c.logger.Warn("memo get failed", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("memo unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("memo marshal failed", "key", key, "error", err)
		return
	}
	err = resilience.WithTimeout(ctx, c.timeout, "memo set", func(ctx context.Context) error {
		return c.backend.Set(ctx, key, data)
	})
	if err != nil {
		c.logger.Warn("memo set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the memoized value for key, or runs compute once per
// key across concurrent callers and stores its result. cached reports
// whether the value came from the backend.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, compute func() (T, error)) (value T, cached bool, err error) {
	if c.Get(ctx, key, &value) {
		return value, true, nil
	}
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		var v T
		if c.lookup(ctx, key, &v) {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return v, err
		}
		c.Set(ctx, key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return val.(T), false, nil
}

// Invalidate drops every memo entry when the backend supports it.
func (c *Cache) Invalidate(ctx context.Context) error {
	f, ok := c.backend.(Flusher)
	if !ok {
		return nil
	}
	deleted, err := f.Flush(ctx)
	if err != nil {
		return fmt.Errorf("invalidating memo: %w", err)
	}
	c.logger.Info("memo invalidated", "entries_deleted", deleted)
	return nil
}

func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Close() error {
	return c.backend.Close()
}

func (c *Cache) hit() {
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *Cache) miss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}
