// Package scorer weights every sentence of a corpus by TF-IDF. Term
// frequency is taken within the sentence and inverse frequency across the
// sentences of its own document; the reference vector weights each word by
// its corpus-wide share.
package scorer

import (
	"fmt"
	"math"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/corpus"
	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
)

// cosineEpsilon keeps Cosine defined for zero vectors.
const cosineEpsilon = 1e-12

// referenceFactor is ln(1/2), the idf of a word against a single pseudo
// document that contains it.
var referenceFactor = math.Log(0.5)

// Model is the sentence-by-word TF-IDF matrix of a corpus. Row i belongs to
// the sentence at flattened rank i; column j to Vocabulary[j].
type Model struct {
	Vocabulary []string    `json:"vocabulary"`
	Matrix     [][]float64 `json:"matrix"`
	Reference  []float64   `json:"reference"`
}

// Rows is the number of sentences scored.
func (m *Model) Rows() int { return len(m.Matrix) }

// Score builds the model for c. A non-positive logarithm argument is reported
// as ErrDegenerateScore.
func Score(c *corpus.Corpus) (*Model, error) {
	vocab := c.Vocabulary()
	m := &Model{
		Vocabulary: vocab,
		Matrix:     make([][]float64, 0, c.SentenceCountTotal()),
		Reference:  make([]float64, len(vocab)),
	}

	for d := 0; d < c.DocumentCount(); d++ {
		idf := make([]float64, len(vocab))
		for j, w := range vocab {
			v, err := computeIDF(c, w, d)
			if err != nil {
				return nil, err
			}
			idf[j] = v
		}
		for s := 0; s < c.SentenceCount(d); s++ {
			row := make([]float64, len(vocab))
			length := c.SentenceWordCount(d, s)
			for j, w := range vocab {
				count, _ := c.CountInSentence(w, d, s)
				if count == 0 {
					continue
				}
				row[j] = float64(count) / float64(length) * idf[j]
			}
			m.Matrix = append(m.Matrix, row)
		}
	}

	total := c.WordCountTotal()
	for j, w := range vocab {
		count, _ := c.CountTotal(w)
		m.Reference[j] = float64(count) / float64(total) * referenceFactor
	}
	return m, nil
}

func computeIDF(c *corpus.Corpus, w string, d int) (float64, error) {
	containing, ok := c.SentencesContaining(w, d)
	if !ok {
		return 0, fmt.Errorf("%w: word %q missing from vocabulary", apperrors.ErrInternal, w)
	}
	arg := float64(c.SentenceCount(d)) / float64(containing+1)
	if !(arg > 0) {
		return 0, fmt.Errorf("%w: idf argument %v for %q in document %d",
			apperrors.ErrDegenerateScore, arg, w, d)
	}
	return math.Log(arg), nil
}

// Cosine is the cosine similarity of two equal-length vectors.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + cosineEpsilon)
}
