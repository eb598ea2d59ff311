package chunker

import (
	"regexp"
	"strings"
)

// maxRecursionDepth bounds the divide-and-conquer; at the cap a piece is
// emitted as-is, which can exceed MaxChunkSize only for pathological
// no-whitespace input.
const maxRecursionDepth = 5

var sentenceBoundary = regexp.MustCompile(`([.!?…]+)\s+`)

// splitRecursive divides text until every piece fits maxSize: first by
// paragraph, then by sentence, finally bisecting at the whitespace nearest
// the midpoint.
func splitRecursive(text string, maxSize, depth int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= maxSize || depth >= maxRecursionDepth {
		return []string{text}
	}

	if parts := splitParagraphs(text); len(parts) > 1 {
		return packPieces(parts, maxSize, depth)
	}

	if parts := splitSentences(text); len(parts) > 1 {
		return packPieces(parts, maxSize, depth)
	}

	left, right, ok := bisectAtWhitespace(text)
	if !ok {
		// No whitespace to split on; emit as-is.
		return []string{text}
	}
	return append(
		splitRecursive(left, maxSize, depth+1),
		splitRecursive(right, maxSize, depth+1)...,
	)
}

// packPieces greedily groups pieces up to maxSize, recursing into any single
// piece that is itself oversize.
func packPieces(pieces []string, maxSize, depth int) []string {
	var out []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
		}
	}

	for _, piece := range pieces {
		if len(piece) > maxSize {
			flush()
			out = append(out, splitRecursive(piece, maxSize, depth+1)...)
			continue
		}

		addition := len(piece)
		if current.Len() > 0 {
			addition += 2
		}
		if current.Len()+addition > maxSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(piece)
	}
	flush()

	return out
}

// splitSentences cuts at punctuation boundaries, keeping the punctuation with
// the preceding sentence.
func splitSentences(text string) []string {
	indices := sentenceBoundary.FindAllStringSubmatchIndex(text, -1)
	if len(indices) == 0 {
		return []string{text}
	}

	var sentences []string
	start := 0
	for _, idx := range indices {
		// idx[3] is the end of the punctuation group
		end := idx[3]
		s := strings.TrimSpace(text[start:end])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = idx[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// bisectAtWhitespace splits text at the whitespace closest to its midpoint.
func bisectAtWhitespace(text string) (string, string, bool) {
	mid := len(text) / 2

	left := strings.LastIndexAny(text[:mid], " \t\n")
	right := strings.IndexAny(text[mid:], " \t\n")
	if right >= 0 {
		right += mid
	}

	split := -1
	switch {
	case left < 0 && right < 0:
		return "", "", false
	case left < 0:
		split = right
	case right < 0:
		split = left
	case mid-left <= right-mid:
		split = left
	default:
		split = right
	}

	return text[:split], text[split+1:], true
}
