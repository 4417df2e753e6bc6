// Package pipeline runs one summarization end to end: load the documents,
// segment and normalize them, index and score the corpus, select the summary
// and hand it to the sinks. Finished summaries are memoized by content
// fingerprint, so an unchanged cluster is summarized once.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/docstore"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/memo"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/normalizer"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/scorer"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/segmenter"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/sink"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/stagecache"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/summarizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/tracing"
)

// Options wires an Engine. Store and Normalizer are required; every other
// field may be left zero.
type Options struct {
	Store      *docstore.Store
	Normalizer *normalizer.Normalizer
	// StemmerName is folded into the memo key so summaries produced with
	// different stemmers never collide.
	StemmerName string
	Selection   summarizer.Options
	Dumps       *stagecache.Writer
	Cache       *memo.Cache
	Sink        sink.Sink
	Metrics     *metrics.Metrics
	Trace       bool
}

type Engine struct {
	store       *docstore.Store
	normalizer  *normalizer.Normalizer
	stemmerName string
	selection   summarizer.Options
	dumps       *stagecache.Writer
	cache       *memo.Cache
	sink        sink.Sink
	metrics     *metrics.Metrics
	trace       bool
	logger      *slog.Logger
}

func NewEngine(opts Options) (*Engine, error) {
	if opts.Store == nil || opts.Normalizer == nil {
		return nil, fmt.Errorf("%w: pipeline needs a document store and a normalizer", apperrors.ErrInvalidInput)
	}
	if opts.Selection == (summarizer.Options{}) {
		opts.Selection = summarizer.DefaultOptions()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Cache == nil {
		opts.Cache = memo.New(nil, 0, opts.Metrics)
	}
	return &Engine{
		store:       opts.Store,
		normalizer:  opts.Normalizer,
		stemmerName: opts.StemmerName,
		selection:   opts.Selection,
		dumps:       opts.Dumps,
		cache:       opts.Cache,
		sink:        opts.Sink,
		metrics:     opts.Metrics,
		trace:       opts.Trace,
		logger:      slog.Default().With("component", "pipeline"),
	}, nil
}

// Request names the cluster to summarize.
type Request struct {
	Dataset   string
	Tag       string
	Documents []string
}

type Stats struct {
	Documents  int `json:"documents"`
	Sentences  int `json:"sentences"`
	Vocabulary int `json:"vocabulary"`
	Characters int `json:"characters"`
}

type Result struct {
	RunID       string
	Dataset     string
	Tag         string
	Fingerprint string
	Sentences   []string
	Ranks       []int
	Cached      bool
	Stats       Stats
}

// computed is the memoized part of a run.
type computed struct {
	Sentences []string `json:"sentences"`
	Ranks     []int    `json:"ranks"`
	Stats     Stats    `json:"stats"`
}

func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	runID := logger.NewRunID()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx).With("component", "pipeline", "dataset", req.Dataset)

	ctx, root := tracing.StartRun(ctx, "summarize", runID)
	root.SetAttr("dataset", req.Dataset)
	defer func() {
		root.End()
		if e.trace {
			root.Log(log)
		}
	}()

	result, err := e.run(ctx, runID, req)
	if err != nil {
		e.metrics.RunsTotal.WithLabelValues("error").Inc()
		log.Error("summarization failed", "error", err)
		return nil, err
	}
	status := "ok"
	if result.Cached {
		status = "cached"
	}
	e.metrics.RunsTotal.WithLabelValues(status).Inc()
	e.metrics.SummarySentences.Set(float64(len(result.Sentences)))
	e.metrics.SummaryCharacters.Set(float64(result.Stats.Characters))
	log.Info("summarization complete",
		"sentences", len(result.Sentences),
		"characters", result.Stats.Characters,
		"cached", result.Cached,
	)
	return result, nil
}

func (e *Engine) run(ctx context.Context, runID string, req Request) (*Result, error) {
	if req.Dataset == "" {
		return nil, fmt.Errorf("%w: dataset is required", apperrors.ErrInvalidInput)
	}
	if len(req.Documents) == 0 {
		return nil, fmt.Errorf("%w: no documents given for %s", apperrors.ErrInvalidInput, req.Dataset)
	}

	var raw []docstore.RawDocument
	err := e.stage(ctx, "load", func(ctx context.Context) error {
		var err error
		raw, err = e.store.Load(ctx, req.Documents)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.metrics.DocumentsLoaded.Add(float64(len(raw)))

	fingerprint := docstore.Fingerprint(raw,
		strconv.FormatFloat(e.selection.RedundancyThreshold, 'g', -1, 64),
		strconv.Itoa(e.selection.LengthBudget),
		e.stemmerName,
		strings.Join(e.normalizer.StopWords().Sorted(), ","),
	)

	out, cached, err := memo.GetOrCompute(ctx, e.cache, fingerprint, func() (computed, error) {
		return e.summarize(ctx, raw)
	})
	if err != nil {
		return nil, err
	}
	if cached && e.dumps.Enabled() {
		e.logger.Info("stage dumps skipped, summary served from memo",
			"fingerprint", fingerprint,
			"dump_dir", e.dumps.Dir(),
		)
	}

	result := &Result{
		RunID:       runID,
		Dataset:     req.Dataset,
		Tag:         req.Tag,
		Fingerprint: fingerprint,
		Sentences:   out.Sentences,
		Ranks:       out.Ranks,
		Cached:      cached,
		Stats:       out.Stats,
	}
	if e.sink != nil {
		err := e.stage(ctx, "sink", func(ctx context.Context) error {
			return e.sink.Write(ctx, sink.Summary{
				RunID:       runID,
				Dataset:     req.Dataset,
				Tag:         req.Tag,
				Fingerprint: fingerprint,
				Sentences:   out.Sentences,
				Ranks:       out.Ranks,
				Cached:      cached,
				CreatedAt:   time.Now().UTC(),
			})
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *Engine) summarize(ctx context.Context, raw []docstore.RawDocument) (computed, error) {
	split := make([][]string, len(raw))
	unstopped := make([][]string, len(raw))
	stemmed := make([][]string, len(raw))

	e.step(ctx, "segment", func() {
		for i, d := range raw {
			split[i] = segmenter.SplitSentences(d.Text)
		}
	})
	e.step(ctx, "normalize", func() {
		for i, sentences := range split {
			unstopped[i] = make([]string, len(sentences))
			stemmed[i] = make([]string, len(sentences))
			for j, s := range sentences {
				unstopped[i][j] = e.normalizer.RemoveStopWords(s)
				stemmed[i][j] = e.normalizer.Stem(unstopped[i][j])
			}
		}
	})
	if e.dumps.Enabled() {
		err := e.stage(ctx, "dump", func(context.Context) error {
			if err := e.dumps.Write(stagecache.Split, split); err != nil {
				return err
			}
			if err := e.dumps.Write(stagecache.DelStopWords, unstopped); err != nil {
				return err
			}
			return e.dumps.Write(stagecache.Stem, stemmed)
		})
		if err != nil {
			return computed{}, err
		}
	}

	docs := make([]corpus.Document, len(raw))
	for i, d := range raw {
		docs[i] = corpus.Document{ID: d.ID, Sentences: split[i], Normalized: stemmed[i]}
	}

	var c *corpus.Corpus
	err := e.stage(ctx, "index", func(context.Context) error {
		var err error
		c, err = corpus.Build(docs)
		return err
	})
	if err != nil {
		return computed{}, err
	}
	e.metrics.SentencesIndexed.Set(float64(c.SentenceCountTotal()))
	e.metrics.VocabularySize.Set(float64(c.VocabularySize()))

	var model *scorer.Model
	err = e.stage(ctx, "score", func(context.Context) error {
		var err error
		model, err = scorer.Score(c)
		return err
	})
	if err != nil {
		return computed{}, err
	}

	var selected []summarizer.Selection
	e.step(ctx, "select", func() {
		selected = summarizer.Select(model, c, e.selection)
	})
	if len(selected) == 0 {
		e.logger.Warn("empty summary", "sentences", c.SentenceCountTotal())
	}

	texts := summarizer.Texts(selected)
	chars := 0
	for _, t := range texts {
		chars += utf8.RuneCountInString(t)
	}
	return computed{
		Sentences: texts,
		Ranks:     summarizer.Ranks(selected),
		Stats: Stats{
			Documents:  c.DocumentCount(),
			Sentences:  c.SentenceCountTotal(),
			Vocabulary: c.VocabularySize(),
			Characters: chars,
		},
	}, nil
}

// stage runs fn as a traced, timed pipeline stage.
func (e *Engine) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartStage(ctx, name)
	err := fn(ctx)
	e.metrics.StageDuration.WithLabelValues(name).Observe(span.End().Seconds())
	if err != nil {
		span.SetAttr("error", err.Error())
	}
	return err
}

// step is stage for work that cannot fail.
func (e *Engine) step(ctx context.Context, name string, fn func()) {
	_, span := tracing.StartStage(ctx, name)
	fn()
	e.metrics.StageDuration.WithLabelValues(name).Observe(span.End().Seconds())
}
