package corpus

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
)

// twoByTwo is two documents of two sentences over the words cat and dog.
func twoByTwo(t *testing.T) *Corpus {
	t.Helper()
	c, err := Build([]Document{
		{
			ID:         "d0",
			Sentences:  []string{"The cat saw a cat and a dog", "A dog"},
			Normalized: []string{"cat cat dog", "dog"},
		},
		{
			ID:         "d1",
			Sentences:  []string{"One cat", "A cat and a dog"},
			Normalized: []string{"cat", "cat dog"},
		},
	})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return c
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single letters dropped", "a b cat i", []string{"cat"}},
		{"punctuation splits", "storm's end, u.s. power", []string{"storm", "end", "power"}},
		{"trailing word kept", "dog", []string{"dog"}},
		{"digits split", "ab12cd", []string{"ab", "cd"}},
		{"lower-cased", "Cat DOG", []string{"cat", "dog"}},
		{"unicode letters", "café über", []string{"café", "über"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildRejectsMisalignedDocument(t *testing.T) {
	_, err := Build([]Document{{ID: "bad", Sentences: []string{"a", "b"}, Normalized: []string{"a"}}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("Build error = %v, want ErrInvalidInput", err)
	}
}

func TestShape(t *testing.T) {
	c := twoByTwo(t)
	if c.DocumentCount() != 2 {
		t.Errorf("DocumentCount = %d, want 2", c.DocumentCount())
	}
	if c.SentenceCount(0) != 2 || c.SentenceCount(1) != 2 {
		t.Errorf("SentenceCount = %d,%d, want 2,2", c.SentenceCount(0), c.SentenceCount(1))
	}
	if c.SentenceCountTotal() != 4 {
		t.Errorf("SentenceCountTotal = %d, want 4", c.SentenceCountTotal())
	}
	if got := c.Vocabulary(); !reflect.DeepEqual(got, []string{"cat", "dog"}) {
		t.Errorf("Vocabulary = %q, want [cat dog]", got)
	}
	if c.WordCount(0) != 4 || c.WordCount(1) != 3 {
		t.Errorf("WordCount = %d,%d, want 4,3", c.WordCount(0), c.WordCount(1))
	}
	if c.WordCountTotal() != 7 {
		t.Errorf("WordCountTotal = %d, want 7", c.WordCountTotal())
	}
	if c.SentenceWordCount(0, 0) != 3 || c.SentenceWordCount(1, 1) != 2 {
		t.Errorf("SentenceWordCount = %d,%d, want 3,2", c.SentenceWordCount(0, 0), c.SentenceWordCount(1, 1))
	}
}

func TestCounts(t *testing.T) {
	c := twoByTwo(t)
	tests := []struct {
		name string
		got  func() (int, bool)
		want int
	}{
		{"cat in d0s0", func() (int, bool) { return c.CountInSentence("cat", 0, 0) }, 2},
		{"cat in d0s1", func() (int, bool) { return c.CountInSentence("cat", 0, 1) }, 0},
		{"cat in d0", func() (int, bool) { return c.CountInDocument("cat", 0) }, 2},
		{"dog in d1", func() (int, bool) { return c.CountInDocument("dog", 1) }, 1},
		{"cat total", func() (int, bool) { return c.CountTotal("cat") }, 4},
		{"dog total", func() (int, bool) { return c.CountTotal("dog") }, 3},
		{"docs with dog", func() (int, bool) { return c.DocumentsContaining("dog") }, 2},
		{"sentences with cat in d0", func() (int, bool) { return c.SentencesContaining("cat", 0) }, 1},
		{"sentences with cat in d1", func() (int, bool) { return c.SentencesContaining("cat", 1) }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.got()
			if !ok {
				t.Fatal("known word reported unknown")
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUnknownWordIsNotZero(t *testing.T) {
	c := twoByTwo(t)
	queries := map[string]func() (int, bool){
		"CountInSentence":     func() (int, bool) { return c.CountInSentence("bird", 0, 0) },
		"CountInDocument":     func() (int, bool) { return c.CountInDocument("bird", 0) },
		"CountTotal":          func() (int, bool) { return c.CountTotal("bird") },
		"DocumentsContaining": func() (int, bool) { return c.DocumentsContaining("bird") },
		"SentencesContaining": func() (int, bool) { return c.SentencesContaining("bird", 1) },
	}
	for name, q := range queries {
		if _, ok := q(); ok {
			t.Errorf("%s(bird) reported a known word", name)
		}
	}
	// a known word absent from a sentence is a true zero
	if n, ok := c.CountInSentence("cat", 0, 1); !ok || n != 0 {
		t.Errorf("CountInSentence(cat, 0, 1) = (%d, %v), want (0, true)", n, ok)
	}
}

func TestAggregatesConsistent(t *testing.T) {
	c := twoByTwo(t)
	for _, w := range c.Vocabulary() {
		total, _ := c.CountTotal(w)
		byDoc, bySentence := 0, 0
		for d := 0; d < c.DocumentCount(); d++ {
			n, _ := c.CountInDocument(w, d)
			byDoc += n
			for s := 0; s < c.SentenceCount(d); s++ {
				n, _ := c.CountInSentence(w, d, s)
				bySentence += n
			}
		}
		if byDoc != total || bySentence != total {
			t.Errorf("%s: total %d, by document %d, by sentence %d", w, total, byDoc, bySentence)
		}
	}
}

func TestRankAndLocate(t *testing.T) {
	c, err := Build([]Document{
		{ID: "a", Sentences: []string{"a0", "a1"}, Normalized: []string{"", ""}},
		{ID: "empty"},
		{ID: "b", Sentences: []string{"b0"}, Normalized: []string{""}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.VocabularySize() != 0 {
		t.Errorf("VocabularySize = %d, want 0", c.VocabularySize())
	}
	want := []string{"a0", "a1", "b0"}
	for rank, text := range want {
		got, ok := c.Sentence(rank)
		if !ok || got != text {
			t.Errorf("Sentence(%d) = (%q, %v), want %q", rank, got, ok, text)
		}
	}
	if d, s, _ := c.Locate(2); d != 2 || s != 0 {
		t.Errorf("Locate(2) = (%d, %d), want (2, 0)", d, s)
	}
	if c.Rank(2, 0) != 2 {
		t.Errorf("Rank(2, 0) = %d, want 2", c.Rank(2, 0))
	}
	if _, ok := c.Sentence(3); ok {
		t.Error("Sentence(3) should be out of range")
	}
	if _, _, ok := c.Locate(-1); ok {
		t.Error("Locate(-1) should be out of range")
	}
}
