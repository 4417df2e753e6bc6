// Package sqlstore opens the SQL database backing the summary memo table.
// PostgreSQL goes through lib/pq, SQLite through mattn/go-sqlite3; both accept
// the same schema and $n placeholders.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/config"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS summary_memo (
	memo_key   TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	created_at BIGINT NOT NULL
)`

type Client struct {
	DB     *sql.DB
	driver string
}

// OpenPostgres connects to PostgreSQL and ensures the memo table exists.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*Client, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return initialize(ctx, db, "postgres")
}

// OpenSQLite opens (creating if needed) the SQLite file at cfg.Path.
func OpenSQLite(ctx context.Context, cfg config.SQLiteConfig) (*Client, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)
	return initialize(ctx, db, "sqlite3")
}

func initialize(ctx context.Context, db *sql.DB, driver string) (*Client, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating memo table: %w", err)
	}
	return &Client{DB: db, driver: driver}, nil
}

// Driver reports the database/sql driver name in use.
func (c *Client) Driver() string {
	return c.driver
}

// Get returns the payload stored under key. ok is false when absent.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	err := c.DB.QueryRowContext(ctx,
		`SELECT payload FROM summary_memo WHERE memo_key = $1`, key,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("selecting memo %s: %w", key, err)
	}
	return []byte(payload), true, nil
}

// Put upserts payload under key inside a transaction.
func (c *Client) Put(ctx context.Context, key string, payload []byte) error {
	return c.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO summary_memo (memo_key, payload, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (memo_key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
			key, string(payload), time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("upserting memo %s: %w", key, err)
		}
		return nil
	})
}

// DeleteOlderThan removes memo rows created before cutoff.
func (c *Client) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.DB.ExecContext(ctx, `DELETE FROM summary_memo WHERE created_at < $1`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("pruning memo table: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAll empties the memo table.
func (c *Client) DeleteAll(ctx context.Context) (int64, error) {
	res, err := c.DB.ExecContext(ctx, `DELETE FROM summary_memo`)
	if err != nil {
		return 0, fmt.Errorf("clearing memo table: %w", err)
	}
	return res.RowsAffected()
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func (c *Client) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back transaction after error %v: %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
