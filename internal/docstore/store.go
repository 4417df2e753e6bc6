// Package docstore reads the raw documents of a cluster from a directory.
package docstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/segmenter"
	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
)

// RawDocument is the marker-delimited body of one document.
type RawDocument struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Store struct {
	dir      string
	maxLines int
	logger   *slog.Logger
}

func New(dir string, maxLines int) *Store {
	return &Store{
		dir:      dir,
		maxLines: maxLines,
		logger:   slog.Default().With("component", "docstore"),
	}
}

// Load reads <dir>/<id> for every id, in list order.
func (s *Store) Load(ctx context.Context, ids []string) ([]RawDocument, error) {
	docs := make([]RawDocument, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := s.read(id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, RawDocument{ID: id, Text: text})
		s.logger.Debug("document loaded", "doc_id", id, "bytes", len(text))
	}
	return docs, nil
}

func (s *Store) read(id string) (string, error) {
	if id == "" || filepath.Base(id) != id {
		return "", fmt.Errorf("%w: document id %q", apperrors.ErrInvalidInput, id)
	}
	path := filepath.Join(s.dir, id)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s (%s)", apperrors.ErrDocumentNotFound, id, path)
		}
		return "", fmt.Errorf("opening document %s: %w", id, err)
	}
	defer f.Close()

	text, err := segmenter.ExtractText(f, s.maxLines)
	if err != nil {
		return "", fmt.Errorf("document %s: %w", id, err)
	}
	return text, nil
}

// Fingerprint hashes the document set and any extra parameters that change
// the summary. Equal fingerprints mean equal summaries.
func Fingerprint(docs []RawDocument, extra ...string) string {
	h := sha256.New()
	for _, d := range docs {
		fmt.Fprintf(h, "%d:%s%d:%s", len(d.ID), d.ID, len(d.Text), d.Text)
	}
	for _, e := range extra {
		fmt.Fprintf(h, "%d:%s", len(e), e)
	}
	return hex.EncodeToString(h.Sum(nil))
}
