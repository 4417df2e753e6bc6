// Package normalizer prepares sentences for counting: stop words are removed
// and the remaining words are stemmed. Normalized text is only ever used for
// scoring; summaries are built from the original sentences.
package normalizer

// Normalizer composes stop-word removal and stemming.
type Normalizer struct {
	stop    StopWords
	stemmer Stemmer
}

// New returns a Normalizer. A nil stemmer means no stemming.
func New(stop StopWords, stemmer Stemmer) *Normalizer {
	if stemmer == nil {
		stemmer = IdentityStemmer
	}
	if stop == nil {
		stop = StopWords{}
	}
	return &Normalizer{stop: stop, stemmer: stemmer}
}

func (n *Normalizer) StopWords() StopWords { return n.stop }

// RemoveStopWords is the first normalization stage on its own.
func (n *Normalizer) RemoveStopWords(sentence string) string {
	return RemoveStopWords(sentence, n.stop)
}

// Stem is the second normalization stage on its own.
func (n *Normalizer) Stem(sentence string) string {
	return StemSentence(sentence, n.stemmer)
}

// Normalize runs both stages in order.
func (n *Normalizer) Normalize(sentence string) string {
	return n.Stem(n.RemoveStopWords(sentence))
}

// NormalizeAll normalizes each sentence. The result always has the same
// length and order as the input.
func (n *Normalizer) NormalizeAll(sentences []string) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = n.Normalize(s)
	}
	return out
}
