package normalizer

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a lower-case word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// StemmerFunc adapts a plain function to Stemmer.
type StemmerFunc func(word string) string

func (f StemmerFunc) Stem(word string) string { return f(word) }

// SnowballStemmer is the English (Porter2) snowball stemmer.
type SnowballStemmer struct{}

func (SnowballStemmer) Stem(word string) string {
	return english.Stem(word, false)
}

// IdentityStemmer leaves words unchanged.
var IdentityStemmer = StemmerFunc(func(word string) string { return word })

// StemSentence replaces every maximal run of letters in sentence by the stem
// of its lower-cased form. All other characters are copied through, lower-cased,
// so punctuation and spacing survive verbatim.
func StemSentence(sentence string, stemmer Stemmer) string {
	var out, word strings.Builder
	out.Grow(len(sentence))
	flush := func() {
		if word.Len() > 0 {
			out.WriteString(stemmer.Stem(word.String()))
			word.Reset()
		}
	}
	for _, r := range sentence {
		if unicode.IsLetter(r) {
			word.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
		out.WriteRune(unicode.ToLower(r))
	}
	flush()
	return out.String()
}
