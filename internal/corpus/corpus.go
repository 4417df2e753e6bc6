// Package corpus holds a fixed cluster of documents together with the
// per-word occurrence tables the scorer reads. A Corpus is built once by a
// single counting pass and is read-only afterwards.
//
// Every word of the vocabulary owns a dense table indexed [doc][sentence]
// spanning the whole corpus shape, so a count lookup for a known word is
// always defined. Lookups for words never seen anywhere report ok == false,
// which callers must not confuse with a zero count.
package corpus

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
)

// MinTokenLength is the shortest letter run counted as a word.
const MinTokenLength = 2

// Document is one source document: its original sentences and, index for
// index, their normalized forms.
type Document struct {
	ID         string
	Sentences  []string
	Normalized []string
}

// Corpus is the immutable document set plus vocabulary tables.
type Corpus struct {
	docs    []Document
	offsets []int
	vocab   []string
	counts  map[string][][]int
}

// Build counts every token of every normalized sentence. Documents keep the
// given order; the vocabulary keeps first-seen order.
func Build(docs []Document) (*Corpus, error) {
	offsets := make([]int, len(docs)+1)
	for d, doc := range docs {
		if len(doc.Sentences) != len(doc.Normalized) {
			return nil, fmt.Errorf("%w: document %q has %d sentences but %d normalized sentences",
				apperrors.ErrInvalidInput, doc.ID, len(doc.Sentences), len(doc.Normalized))
		}
		offsets[d+1] = offsets[d] + len(doc.Sentences)
	}

	c := &Corpus{
		docs:    docs,
		offsets: offsets,
		counts:  make(map[string][][]int),
	}
	for d, doc := range docs {
		for s, sentence := range doc.Normalized {
			for _, w := range Tokens(sentence) {
				table, ok := c.counts[w]
				if !ok {
					table = c.newTable()
					c.counts[w] = table
					c.vocab = append(c.vocab, w)
				}
				table[d][s]++
			}
		}
	}
	return c, nil
}

// newTable allocates a zeroed [doc][sentence] table over one backing array.
func (c *Corpus) newTable() [][]int {
	backing := make([]int, c.offsets[len(c.docs)])
	table := make([][]int, len(c.docs))
	for d := range c.docs {
		table[d] = backing[c.offsets[d]:c.offsets[d+1]:c.offsets[d+1]]
	}
	return table
}

// Tokens returns the lower-cased letter runs of sentence that are at least
// MinTokenLength runes long, in order of appearance.
func Tokens(sentence string) []string {
	var tokens []string
	start := -1
	emit := func(end int) {
		if start >= 0 && utf8.RuneCountInString(sentence[start:end]) >= MinTokenLength {
			tokens = append(tokens, strings.ToLower(sentence[start:end]))
		}
		start = -1
	}
	for i, r := range sentence {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		emit(i)
	}
	emit(len(sentence))
	return tokens
}

// DocumentCount is the number of documents.
func (c *Corpus) DocumentCount() int { return len(c.docs) }

// SentenceCount is the number of sentences in document d.
func (c *Corpus) SentenceCount(d int) int { return len(c.docs[d].Sentences) }

// SentenceCountTotal is the number of sentences in the corpus.
func (c *Corpus) SentenceCountTotal() int { return c.offsets[len(c.docs)] }

// Document returns document d.
func (c *Corpus) Document(d int) Document { return c.docs[d] }

// Documents returns the documents in corpus order. The slice must not be
// modified.
func (c *Corpus) Documents() []Document { return c.docs }

// Vocabulary returns a copy of the vocabulary in first-seen order.
func (c *Corpus) Vocabulary() []string {
	out := make([]string, len(c.vocab))
	copy(out, c.vocab)
	return out
}

// VocabularySize is the number of distinct words.
func (c *Corpus) VocabularySize() int { return len(c.vocab) }

// CountInSentence is the number of times w occurs in sentence s of document d.
func (c *Corpus) CountInSentence(w string, d, s int) (int, bool) {
	table, ok := c.counts[w]
	if !ok {
		return 0, false
	}
	return table[d][s], true
}

// CountInDocument is the number of times w occurs in document d.
func (c *Corpus) CountInDocument(w string, d int) (int, bool) {
	table, ok := c.counts[w]
	if !ok {
		return 0, false
	}
	return sum(table[d]), true
}

// CountTotal is the number of times w occurs in the corpus.
func (c *Corpus) CountTotal(w string) (int, bool) {
	table, ok := c.counts[w]
	if !ok {
		return 0, false
	}
	total := 0
	for _, row := range table {
		total += sum(row)
	}
	return total, true
}

// DocumentsContaining is the number of documents where w occurs at least once.
func (c *Corpus) DocumentsContaining(w string) (int, bool) {
	table, ok := c.counts[w]
	if !ok {
		return 0, false
	}
	n := 0
	for _, row := range table {
		if sum(row) > 0 {
			n++
		}
	}
	return n, true
}

// SentencesContaining is the number of sentences of document d where w
// occurs at least once.
func (c *Corpus) SentencesContaining(w string, d int) (int, bool) {
	table, ok := c.counts[w]
	if !ok {
		return 0, false
	}
	n := 0
	for _, count := range table[d] {
		if count > 0 {
			n++
		}
	}
	return n, true
}

// SentenceWordCount is the total number of word occurrences in sentence s of
// document d.
func (c *Corpus) SentenceWordCount(d, s int) int {
	total := 0
	for _, w := range c.vocab {
		total += c.counts[w][d][s]
	}
	return total
}

// WordCount is the total number of word occurrences in document d.
func (c *Corpus) WordCount(d int) int {
	total := 0
	for _, w := range c.vocab {
		total += sum(c.counts[w][d])
	}
	return total
}

// WordCountTotal is the total number of word occurrences in the corpus.
func (c *Corpus) WordCountTotal() int {
	total := 0
	for d := range c.docs {
		total += c.WordCount(d)
	}
	return total
}

// Rank is the flattened position of sentence s of document d.
func (c *Corpus) Rank(d, s int) int { return c.offsets[d] + s }

// Locate maps a flattened rank back to its document and sentence index.
func (c *Corpus) Locate(rank int) (d, s int, ok bool) {
	if rank < 0 || rank >= c.SentenceCountTotal() {
		return 0, 0, false
	}
	d = sort.Search(len(c.docs), func(i int) bool { return c.offsets[i+1] > rank })
	return d, rank - c.offsets[d], true
}

// Sentence returns the original text of the sentence at a flattened rank.
func (c *Corpus) Sentence(rank int) (string, bool) {
	d, s, ok := c.Locate(rank)
	if !ok {
		return "", false
	}
	return c.docs[d].Sentences[s], true
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
