package normalizer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
)

// StopWords is a case-folded set of tokens removed before stemming.
type StopWords map[string]struct{}

// NewStopWords builds a set from the given words, lower-casing each.
func NewStopWords(words ...string) StopWords {
	set := make(StopWords, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Contains reports whether token is a stop word. token must already be
// lower-case.
func (s StopWords) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the stop words in ascending order.
func (s StopWords) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// ParseStopWords reads a comma-space separated list ("a, about, above").
func ParseStopWords(r io.Reader) (StopWords, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading stop-word list: %w", err)
	}
	return NewStopWords(strings.Split(string(data), ", ")...), nil
}

// LoadStopWords reads the stop-word list at path. A missing file is reported
// as ErrStopWordsNotFound naming the path.
func LoadStopWords(path string) (StopWords, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrStopWordsNotFound, path)
		}
		return nil, fmt.Errorf("opening stop-word list %s: %w", path, err)
	}
	defer f.Close()
	return ParseStopWords(f)
}

// RemoveStopWords lower-cases sentence, splits it on whitespace and drops
// every token that exactly matches a stop word. Survivors are joined with
// single spaces.
func RemoveStopWords(sentence string, stop StopWords) string {
	fields := strings.Fields(strings.ToLower(sentence))
	kept := fields[:0]
	for _, f := range fields {
		if !stop.Contains(f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
