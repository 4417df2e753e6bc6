package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/fileutil"
)

// FileSink writes summaries as ROUGE system files.
type FileSink struct {
	dir    string
	logger *slog.Logger
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{
		dir:    dir,
		logger: slog.Default().With("component", "file-sink"),
	}
}

func (f *FileSink) Name() string { return "file" }

// Path returns <dir>/<dataset>.M.100.T.<tag>.
func (f *FileSink) Path(dataset, tag string) string {
	return filepath.Join(f.dir, SystemFileName(dataset, tag))
}

func SystemFileName(dataset, tag string) string {
	return fmt.Sprintf("%s.M.100.T.%s", dataset, tag)
}

func (f *FileSink) Write(ctx context.Context, s Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := f.Path(s.Dataset, s.Tag)
	err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		for _, sentence := range s.Sentences {
			if _, err := fmt.Fprintln(w, Terminate(sentence)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing summary file: %w", err)
	}
	f.logger.Info("summary written", "path", path, "sentences", len(s.Sentences))
	return nil
}

// Terminate trims trailing whitespace and ends the sentence with exactly one
// period.
func Terminate(sentence string) string {
	sentence = strings.TrimRight(sentence, " \t")
	if strings.HasSuffix(sentence, ".") {
		return sentence
	}
	return sentence + "."
}
