package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/docstore"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/memo"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/normalizer"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/sink"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/stagecache"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/summarizer"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/resilience"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/sqlstore"
	"github.com/fatih/color"
)

const stemmerName = "snowball-english"

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	docs := flag.String("docs", "", "comma-separated document ids (overrides config)")
	dataset := flag.String("dataset", "", "dataset name used for the summary file (overrides config)")
	tag := flag.String("tag", "", "system tag used for the summary file (overrides config)")
	printSummary := flag.Bool("print", false, "print the summary to stdout")
	flushCache := flag.Bool("flush-cache", false, "drop every memoized summary before running")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(apperrors.ExitUsage)
	}
	if *docs != "" {
		cfg.Summarizer.Documents = strings.Split(*docs, ",")
	}
	if *dataset != "" {
		cfg.Summarizer.Dataset = *dataset
	}
	if *tag != "" {
		cfg.Summarizer.Tag = *tag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(apperrors.ExitUsage)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *printSummary, *flushCache)
	stop()
	if err != nil {
		slog.Error("summarizer failed", "error", err)
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(ctx context.Context, cfg *config.Config, printSummary, flushCache bool) error {
	m := metrics.New()
	if cfg.Metrics.Enabled && cfg.Metrics.PushgatewayURL != "" {
		defer pushMetrics(m, cfg.Metrics)
	}

	stop, err := normalizer.LoadStopWords(cfg.Summarizer.StopWordsPath)
	if err != nil {
		return err
	}

	cache := memo.New(openBackend(ctx, cfg), cfg.Cache.Timeout, m)
	defer cache.Close()
	if flushCache {
		if err := cache.Invalidate(ctx); err != nil {
			slog.Warn("memo invalidation failed", "error", err)
		}
	}

	sinks := []sink.Sink{sink.NewFileSink(cfg.Summarizer.OutputDir)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SummaryComplete)
		ks := sink.NewKafkaSink(producer, resilience.RetryConfig{})
		defer ks.Close()
		sinks = append(sinks, ks)
	}

	engine, err := pipeline.NewEngine(pipeline.Options{
		Store:       docstore.New(cfg.Summarizer.DocDir, cfg.Summarizer.MaxDocumentLines),
		Normalizer:  normalizer.New(stop, normalizer.SnowballStemmer{}),
		StemmerName: stemmerName,
		Selection: summarizer.Options{
			RedundancyThreshold: cfg.Summarizer.RedundancyThreshold,
			LengthBudget:        cfg.Summarizer.LengthBudget,
		},
		Dumps:   stagecache.NewWriter(cfg.Summarizer.DumpDir),
		Cache:   cache,
		Sink:    sink.NewMulti(m, sinks...),
		Metrics: m,
		Trace:   cfg.Tracing.Enabled,
	})
	if err != nil {
		return err
	}

	res, err := engine.Run(ctx, pipeline.Request{
		Dataset:   cfg.Summarizer.Dataset,
		Tag:       cfg.Summarizer.Tag,
		Documents: cfg.Summarizer.Documents,
	})
	if err != nil {
		return err
	}
	if printSummary {
		printResult(os.Stdout, res)
	}
	return nil
}

// openBackend connects the configured memo backend. The memo is optional, so
// a backend that cannot be reached is logged and skipped.
func openBackend(ctx context.Context, cfg *config.Config) memo.Backend {
	log := slog.Default().With("component", "memo", "backend", cfg.Cache.Backend)
	switch cfg.Cache.Backend {
	case "redis":
		client, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("memo backend unavailable, continuing without it", "error", err)
			return nil
		}
		return memo.NewRedis(client, cfg.Cache.TTL)
	case "postgres", "sqlite":
		var (
			client *sqlstore.Client
			err    error
		)
		if cfg.Cache.Backend == "postgres" {
			client, err = sqlstore.OpenPostgres(ctx, cfg.Postgres)
		} else {
			client, err = sqlstore.OpenSQLite(ctx, cfg.SQLite)
		}
		if err != nil {
			log.Warn("memo backend unavailable, continuing without it", "error", err)
			return nil
		}
		backend, err := memo.NewSQL(ctx, client, cfg.Cache.TTL)
		if err != nil {
			client.Close()
			log.Warn("memo backend unavailable, continuing without it", "error", err)
			return nil
		}
		return backend
	default:
		return nil
	}
}

func pushMetrics(m *metrics.Metrics, cfg config.MetricsConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Push(ctx, cfg.PushgatewayURL, cfg.Job); err != nil {
		slog.Warn("metrics push failed", "error", err)
	}
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	rankColor   = color.New(color.FgYellow)
	noteColor   = color.New(color.FgGreen)
)

func printResult(w io.Writer, res *pipeline.Result) {
	headerColor.Fprintf(w, "%s (%d of %d sentences, %d characters)\n",
		res.Dataset, len(res.Sentences), res.Stats.Sentences, res.Stats.Characters)
	for i, s := range res.Sentences {
		rankColor.Fprintf(w, "[%d] ", res.Ranks[i])
		fmt.Fprintln(w, sink.Terminate(s))
	}
	if res.Cached {
		noteColor.Fprintln(w, "(from memo)")
	}
}
