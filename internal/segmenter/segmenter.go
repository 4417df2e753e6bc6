// Package segmenter turns a raw news document into the ordered list of its
// sentences. The document body is the text between the literal marker lines
// <TEXT> and </TEXT>; sentences end at a period followed by a space.
package segmenter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/news-summarizer/pkg/errors"
)

const (
	OpenMarker  = "<TEXT>"
	CloseMarker = "</TEXT>"

	// Boundary is the only sentence boundary recognised. Abbreviations,
	// question and exclamation marks, and closing quotes are not boundaries.
	Boundary = ". "
)

// ExtractText reads r line by line and returns the body lines joined by a
// single space. At most maxLines lines are scanned; a document that runs out
// of lines or exceeds the bound before both markers are seen is malformed.
func ExtractText(r io.Reader, maxLines int) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var body []string
	inText := false
	scanned := 0
	for scanner.Scan() {
		scanned++
		if maxLines > 0 && scanned > maxLines {
			return "", fmt.Errorf("%w: no %s within %d lines", apperrors.ErrMalformedDocument, missingMarker(inText), maxLines)
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if !inText {
			if line == OpenMarker {
				inText = true
			}
			continue
		}
		if line == CloseMarker {
			return strings.Join(body, " "), nil
		}
		body = append(body, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return "", fmt.Errorf("%w: reached end of input without %s", apperrors.ErrMalformedDocument, missingMarker(inText))
}

func missingMarker(inText bool) string {
	if inText {
		return CloseMarker
	}
	return OpenMarker
}

// SplitSentences splits text on Boundary. A trailing empty piece, produced
// when the text ends with a boundary, is dropped.
func SplitSentences(text string) []string {
	sentences := strings.Split(text, Boundary)
	if n := len(sentences); n > 0 && sentences[n-1] == "" {
		sentences = sentences[:n-1]
	}
	return sentences
}

// Segment extracts the body of a raw document and splits it into sentences.
func Segment(r io.Reader, maxLines int) ([]string, error) {
	text, err := ExtractText(r, maxLines)
	if err != nil {
		return nil, err
	}
	return SplitSentences(text), nil
}
