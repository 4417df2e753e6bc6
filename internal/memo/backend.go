package memo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgredis "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/sqlstore"
)

const keyPrefix = "summary:"

// Backend stores opaque memo payloads. Get reports ok == false for an absent
// key; an error means the backend itself failed.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Flusher is implemented by backends that can drop every memo entry.
type Flusher interface {
	Flush(ctx context.Context) (int64, error)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte) error         { return nil }
func (Noop) Close() error                                      { return nil }

type RedisBackend struct {
	client *pkgredis.Client
	ttl    time.Duration
}

func NewRedis(client *pkgredis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return b.client.Get(ctx, keyPrefix+key)
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.client.Set(ctx, keyPrefix+key, value, b.ttl)
}

func (b *RedisBackend) Flush(ctx context.Context) (int64, error) {
	return b.client.FlushByPattern(ctx, keyPrefix+"*")
}

func (b *RedisBackend) Close() error { return b.client.Close() }

// SQLBackend keeps memo rows in the summary_memo table. Rows older than the
// TTL are pruned when the backend is opened.
type SQLBackend struct {
	client *sqlstore.Client
}

func NewSQL(ctx context.Context, client *sqlstore.Client, ttl time.Duration) (*SQLBackend, error) {
	if ttl > 0 {
		pruned, err := client.DeleteOlderThan(ctx, time.Now().Add(-ttl))
		if err != nil {
			return nil, fmt.Errorf("pruning expired memo rows: %w", err)
		}
		slog.Default().With("component", "memo").Debug("expired memo rows pruned",
			"driver", client.Driver(),
			"rows", pruned,
		)
	}
	return &SQLBackend{client: client}, nil
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return b.client.Get(ctx, key)
}

func (b *SQLBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.client.Put(ctx, key, value)
}

func (b *SQLBackend) Flush(ctx context.Context) (int64, error) {
	return b.client.DeleteAll(ctx)
}

func (b *SQLBackend) Close() error { return b.client.Close() }
