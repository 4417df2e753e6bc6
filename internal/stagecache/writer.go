// Package stagecache dumps the intermediate sentence lists of a run so each
// preprocessing stage can be inspected by hand.
package stagecache

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/fileutil"
)

// Stage names a dump file.
type Stage string

const (
	Split        Stage = "split.cache"
	DelStopWords Stage = "del_stop_word.cache"
	Stem         Stage = "stem.cache"
)

// Writer writes stage dumps into a directory. A Writer with an empty
// directory is disabled and writes nothing.
type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string) *Writer {
	return &Writer{
		dir:    dir,
		logger: slog.Default().With("component", "stagecache"),
	}
}

func (w *Writer) Enabled() bool { return w != nil && w.dir != "" }

func (w *Writer) Dir() string { return w.dir }

// Path is where stage is dumped.
func (w *Writer) Path(stage Stage) string {
	return filepath.Join(w.dir, string(stage))
}

// Write dumps docs, one block per document:
//
//	<i>
//	sentence
//	...
//	</i>
//
// followed by a blank line.
func (w *Writer) Write(stage Stage, docs [][]string) error {
	if !w.Enabled() {
		return nil
	}
	path := w.Path(stage)
	err := fileutil.WriteAtomic(path, func(out io.Writer) error {
		return Encode(out, docs)
	})
	if err != nil {
		return fmt.Errorf("writing %s dump: %w", stage, err)
	}
	w.logger.Debug("stage dumped", "stage", string(stage), "path", path, "documents", len(docs))
	return nil
}

func Encode(out io.Writer, docs [][]string) error {
	for i, sentences := range docs {
		if _, err := fmt.Fprintf(out, "<%d>\n", i); err != nil {
			return err
		}
		for _, s := range sentences {
			if _, err := fmt.Fprintln(out, s); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "</%d>\n\n", i); err != nil {
			return err
		}
	}
	return nil
}
