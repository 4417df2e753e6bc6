package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/resilience"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTerminate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Storm hits coast", "Storm hits coast."},
		{"Storm hits coast.", "Storm hits coast."},
		{"Storm hits coast  ", "Storm hits coast."},
		{"", "."},
	}
	for _, tt := range tests {
		if got := Terminate(tt.input); got != tt.want {
			t.Errorf("Terminate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileSink(dir)
	s := Summary{
		Dataset:   "D30045",
		Tag:       "TT",
		Sentences: []string{"First sentence", "Second one."},
	}
	if err := fs.Write(context.Background(), s); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	path := filepath.Join(dir, "D30045.M.100.T.TT")
	if fs.Path("D30045", "TT") != path {
		t.Errorf("Path = %s, want %s", fs.Path("D30045", "TT"), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "First sentence.\nSecond one.\n"; string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

type fakePublisher struct {
	fails  int
	events []kafka.Event
}

func (p *fakePublisher) Publish(_ context.Context, e kafka.Event) error {
	if p.fails > 0 {
		p.fails--
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestKafkaSinkRetries(t *testing.T) {
	p := &fakePublisher{fails: 2}
	k := NewKafkaSink(p, fastRetry())
	if err := k.Write(context.Background(), Summary{Dataset: "D1", Sentences: []string{"x"}}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if len(p.events) != 1 || p.events[0].Key != "D1" {
		t.Errorf("events = %+v", p.events)
	}
}

func TestKafkaSinkGivesUp(t *testing.T) {
	p := &fakePublisher{fails: 5}
	k := NewKafkaSink(p, fastRetry())
	if err := k.Write(context.Background(), Summary{Dataset: "D1"}); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

type failingSink struct{ calls int }

func (f *failingSink) Name() string { return "failing" }

func (f *failingSink) Write(context.Context, Summary) error {
	f.calls++
	return errors.New("disk full")
}

type countingSink struct{ calls int }

func (c *countingSink) Name() string { return "counting" }

func (c *countingSink) Write(context.Context, Summary) error {
	c.calls++
	return nil
}

func TestMultiStopsAtFirstError(t *testing.T) {
	m := metrics.New()
	first, failing, last := &countingSink{}, &failingSink{}, &countingSink{}
	err := NewMulti(m, first, failing, last).Write(context.Background(), Summary{})
	if err == nil {
		t.Fatal("expected error")
	}
	if first.calls != 1 || failing.calls != 1 || last.calls != 0 {
		t.Errorf("calls = %d, %d, %d; want 1, 1, 0", first.calls, failing.calls, last.calls)
	}
	if got := testutil.ToFloat64(m.SinkWritesTotal.WithLabelValues("failing", "error")); got != 1 {
		t.Errorf("failing error count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SinkWritesTotal.WithLabelValues("counting", "ok")); got != 1 {
		t.Errorf("counting ok count = %v, want 1", got)
	}
}
