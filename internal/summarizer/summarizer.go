// Package summarizer picks the summary sentences from a scored corpus: the
// sentences closest to the corpus reference vector, skipping near duplicates
// of the previously accepted sentence, until a length budget is spent.
package summarizer

import (
	"sort"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/news-summarizer/internal/scorer"
)

const (
	DefaultRedundancyThreshold = 0.7
	DefaultLengthBudget        = 665

	// maxSimilarityTolerance marks rows that coincide with the reference
	// vector; such rows are skipped before the seed is chosen.
	maxSimilarityTolerance = 1e-9
)

type Options struct {
	RedundancyThreshold float64
	LengthBudget        int
}

func DefaultOptions() Options {
	return Options{
		RedundancyThreshold: DefaultRedundancyThreshold,
		LengthBudget:        DefaultLengthBudget,
	}
}

// Ranked is one sentence and its similarity to the reference vector.
type Ranked struct {
	Rank       int     `json:"rank"`
	Similarity float64 `json:"similarity"`
}

type Selection struct {
	Rank       int     `json:"rank"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// Rank orders every row of m by descending similarity to the reference
// vector. Equal similarities keep ascending rank order.
func Rank(m *scorer.Model) []Ranked {
	ranked := make([]Ranked, m.Rows())
	for i, row := range m.Matrix {
		ranked[i] = Ranked{Rank: i, Similarity: scorer.Cosine(row, m.Reference)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	return ranked
}

func Select(m *scorer.Model, c *corpus.Corpus, opts Options) []Selection {
	ranked := Rank(m)

	start := 0
	for start < len(ranked) && degenerate(m, ranked[start]) {
		start++
	}
	if start == len(ranked) {
		return nil
	}

	var (
		selected []Selection
		length   int
		last     int
	)
	accept := func(r Ranked) bool {
		text, _ := c.Sentence(r.Rank)
		selected = append(selected, Selection{Rank: r.Rank, Text: text, Similarity: r.Similarity})
		last = r.Rank
		length += utf8.RuneCountInString(text)
		return length >= opts.LengthBudget
	}

	if accept(ranked[start]) {
		return selected
	}
	for _, r := range ranked[start+1:] {
		if isZero(m.Matrix[r.Rank]) {
			continue
		}
		if scorer.Cosine(m.Matrix[r.Rank], m.Matrix[last]) >= opts.RedundancyThreshold {
			continue
		}
		if accept(r) {
			break
		}
	}
	return selected
}

// degenerate reports whether r cannot seed a summary: its row is all zeros
// (nothing but stop words and single letters) or it coincides with the
// reference vector.
func degenerate(m *scorer.Model, r Ranked) bool {
	return isZero(m.Matrix[r.Rank]) || r.Similarity >= 1-maxSimilarityTolerance
}

func isZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// Texts returns the sentence texts of a selection in order.
func Texts(selected []Selection) []string {
	out := make([]string, len(selected))
	for i, s := range selected {
		out[i] = s.Text
	}
	return out
}

// Ranks returns the flattened ranks of a selection in order.
func Ranks(selected []Selection) []int {
	out := make([]int, len(selected))
	for i, s := range selected {
		out[i] = s.Rank
	}
	return out
}
