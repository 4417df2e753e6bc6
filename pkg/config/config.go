// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Summarizer, Cache, Redis, Postgres, SQLite, Kafka, Logging, etc.).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Cache      CacheConfig      `yaml:"cache"`
	Redis      RedisConfig      `yaml:"redis"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	SQLite     SQLiteConfig     `yaml:"sqlite"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Logging    LoggingConfig    `yaml:"logging"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// SummarizerConfig describes one document cluster and how it is summarized.
type SummarizerConfig struct {
	DocDir              string   `yaml:"docDir"`
	Documents           []string `yaml:"documents"`
	Dataset             string   `yaml:"dataset"`
	Tag                 string   `yaml:"tag"`
	OutputDir           string   `yaml:"outputDir"`
	StopWordsPath       string   `yaml:"stopWordsPath"`
	DumpDir             string   `yaml:"dumpDir"`
	MaxDocumentLines    int      `yaml:"maxDocumentLines"`
	RedundancyThreshold float64  `yaml:"redundancyThreshold"`
	LengthBudget        int      `yaml:"lengthBudget"`
}

// CacheConfig selects the optional memoization backend.
type CacheConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"poolSize"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// SQLiteConfig holds the path of the SQLite memo database.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// KafkaConfig holds Kafka broker and topic settings. An empty broker list
// disables the Kafka summary sink.
type KafkaConfig struct {
	Brokers []string    `yaml:"brokers"`
	Topics  KafkaTopics `yaml:"topics"`
}

// KafkaTopics maps logical topic names to their Kafka topic strings.
type KafkaTopics struct {
	SummaryComplete string `yaml:"summaryComplete"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig toggles span logging for pipeline stages.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig controls pushing run metrics to a Prometheus Pushgateway.
type MetricsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	PushgatewayURL string `yaml:"pushgatewayUrl"`
	Job            string `yaml:"job"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Validate checks the fields a summarization run cannot do without.
func (c *Config) Validate() error {
	s := c.Summarizer
	if s.DocDir == "" {
		return fmt.Errorf("summarizer.docDir is required")
	}
	if len(s.Documents) == 0 {
		return fmt.Errorf("summarizer.documents must list at least one document")
	}
	if s.StopWordsPath == "" {
		return fmt.Errorf("summarizer.stopWordsPath is required")
	}
	if s.Dataset == "" {
		return fmt.Errorf("summarizer.dataset is required")
	}
	if s.LengthBudget <= 0 {
		return fmt.Errorf("summarizer.lengthBudget must be positive, got %d", s.LengthBudget)
	}
	if s.RedundancyThreshold <= 0 || s.RedundancyThreshold > 1 {
		return fmt.Errorf("summarizer.redundancyThreshold must be in (0, 1], got %v", s.RedundancyThreshold)
	}
	if s.MaxDocumentLines <= 0 {
		return fmt.Errorf("summarizer.maxDocumentLines must be positive, got %d", s.MaxDocumentLines)
	}
	switch c.Cache.Backend {
	case "", "none", "redis", "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// defaultConfig returns a Config with defaults for local development.
func defaultConfig() *Config {
	return &Config{
		Summarizer: SummarizerConfig{
			DocDir:              "doc/unprocessed_data",
			Tag:                 "TT",
			OutputDir:           "doc/systems",
			StopWordsPath:       "stop-word-list.csv",
			MaxDocumentLines:    100000,
			RedundancyThreshold: 0.7,
			LengthBudget:        665,
		},
		Cache: CacheConfig{
			Backend: "none",
			TTL:     24 * time.Hour,
			Timeout: 2 * time.Second,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			DB:       0,
			PoolSize: 4,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "summarizer",
			User:            "summarizer",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 5 * time.Minute,
		},
		SQLite: SQLiteConfig{
			Path: "doc/cache/memo.db",
		},
		Kafka: KafkaConfig{
			Topics: KafkaTopics{
				SummaryComplete: "summary.complete",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Job: "news-summarizer",
		},
	}
}

// applyEnvOverrides reads SP_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SP_DOC_DIR"); v != "" {
		cfg.Summarizer.DocDir = v
	}
	if v := os.Getenv("SP_DOCUMENTS"); v != "" {
		cfg.Summarizer.Documents = strings.Split(v, ",")
	}
	if v := os.Getenv("SP_DATASET"); v != "" {
		cfg.Summarizer.Dataset = v
	}
	if v := os.Getenv("SP_OUTPUT_DIR"); v != "" {
		cfg.Summarizer.OutputDir = v
	}
	if v := os.Getenv("SP_STOP_WORDS"); v != "" {
		cfg.Summarizer.StopWordsPath = v
	}
	if v := os.Getenv("SP_DUMP_DIR"); v != "" {
		cfg.Summarizer.DumpDir = v
	}
	if v := os.Getenv("SP_LENGTH_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Summarizer.LengthBudget = n
		}
	}
	if v := os.Getenv("SP_REDUNDANCY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Summarizer.RedundancyThreshold = f
		}
	}
	if v := os.Getenv("SP_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("SP_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SP_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SP_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("SP_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("SP_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("SP_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("SP_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("SP_SQLITE_PATH"); v != "" {
		cfg.SQLite.Path = v
	}
	if v := os.Getenv("SP_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("SP_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SP_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SP_PUSHGATEWAY_URL"); v != "" {
		cfg.Metrics.PushgatewayURL = v
		cfg.Metrics.Enabled = true
	}
}
