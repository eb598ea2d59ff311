package chunker

import (
	"regexp"
	"strings"
	"unicode"
)

// Section/heading markers: numbered headings, markdown headings, all-caps
// labels followed by a colon, and Portuguese chapter/section/part labels.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+\S`),
	regexp.MustCompile(`^#{1,6}\s+\S`),
	regexp.MustCompile(`^[A-ZÁÂÃÀÉÊÍÓÔÕÚÇ][A-ZÁÂÃÀÉÊÍÓÔÕÚÇ0-9\s\-]{2,}:\s*$`),
	regexp.MustCompile(`(?i)^(CAPÍTULO|CAPITULO|SEÇÃO|SECAO|PARTE)\b`),
}

func isHeadingLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// splitSemantic splits structured text on section/heading markers. Each
// section is independently size-bounded (recursing for oversize sections).
// When fewer than two sections are found, it falls back to paragraph grouping
// with a short-line/continuation heuristic before the size-bounding pass.
func splitSemantic(text string, opts Options) []string {
	sections := splitSections(text)
	if len(sections) >= 2 {
		var chunks []string
		for _, section := range sections {
			if len(section) <= opts.MaxChunkSize {
				chunks = append(chunks, section)
				continue
			}
			chunks = append(chunks, splitRecursive(section, opts.MaxChunkSize, 0)...)
		}
		return chunks
	}

	paragraphs := groupParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}
	return packParagraphs(paragraphs, opts)
}

// splitSections cuts text at heading lines; the heading starts its section.
func splitSections(text string) []string {
	lines := strings.Split(text, "\n")

	var sections []string
	var current []string

	flush := func() {
		section := strings.TrimSpace(strings.Join(current, "\n"))
		if section != "" {
			sections = append(sections, section)
		}
		current = current[:0]
	}

	for _, line := range lines {
		if isHeadingLine(line) && len(current) > 0 {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return sections
}

const continuationLineLength = 50

// groupParagraphs merges continuation lines into the preceding paragraph:
// bullet markers, lowercase starts, and short lines are treated as
// continuations rather than paragraph breaks.
func groupParagraphs(text string) []string {
	lines := strings.Split(text, "\n")

	var paragraphs []string
	var current []string

	flush := func() {
		p := strings.TrimSpace(strings.Join(current, "\n"))
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
		current = current[:0]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if len(current) > 0 && !isContinuationLine(trimmed) {
			flush()
		}
		current = append(current, trimmed)
	}
	flush()

	return paragraphs
}

func isContinuationLine(line string) bool {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
		return true
	}
	runes := []rune(line)
	if len(runes) > 0 && unicode.IsLower(runes[0]) {
		return true
	}
	return len(line) < continuationLineLength
}
