package chunker

import (
	"regexp"
	"strings"
)

var paragraphDelimiter = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs breaks text on blank lines, dropping empty entries.
func splitParagraphs(text string) []string {
	raw := paragraphDelimiter.Split(text, -1)
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitFixed greedily accumulates blank-line-delimited paragraphs into chunks
// of at most MaxChunkSize characters. When a chunk closes, the next chunk is
// pre-seeded with the trailing paragraphs of the previous one whose combined
// length fits OverlapSize, walked backward from the end. A single paragraph
// longer than MaxChunkSize is kept whole as an oversize chunk.
func splitFixed(text string, opts Options) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	return packParagraphs(paragraphs, opts)
}

// packParagraphs is the size-bounding pass shared by the fixed and semantic
// strategies.
func packParagraphs(paragraphs []string, opts Options) []string {
	var chunks []string
	var current []string
	currentLen := 0
	fresh := 0 // paragraphs in current beyond the overlap seed

	for _, p := range paragraphs {
		addition := len(p)
		if currentLen > 0 {
			addition += 2 // joining blank line
		}

		if currentLen+addition > opts.MaxChunkSize && fresh > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))

			seed, seedLen := overlapTail(current, opts.OverlapSize)
			// A seed that cannot coexist with the incoming paragraph within
			// the bound is dropped rather than emitted as its own chunk.
			if seedLen > 0 && seedLen+2+len(p) > opts.MaxChunkSize {
				seed, seedLen = nil, 0
			}
			current = seed
			currentLen = seedLen
			fresh = 0

			addition = len(p)
			if currentLen > 0 {
				addition += 2
			}
		}

		current = append(current, p)
		currentLen += addition
		fresh++
	}

	if fresh > 0 {
		chunks = append(chunks, strings.Join(current, "\n\n"))
	}

	return chunks
}

// overlapTail walks paragraphs backward from the end, collecting those whose
// combined length stays within the overlap budget.
func overlapTail(paragraphs []string, overlapSize int) ([]string, int) {
	if overlapSize <= 0 {
		return nil, 0
	}

	var tail []string
	total := 0
	for i := len(paragraphs) - 1; i >= 0; i-- {
		addition := len(paragraphs[i])
		if total > 0 {
			addition += 2
		}
		if total+addition > overlapSize {
			break
		}
		tail = append([]string{paragraphs[i]}, tail...)
		total += addition
	}
	return tail, total
}
