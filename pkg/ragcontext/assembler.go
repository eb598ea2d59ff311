// Package ragcontext assembles retrieved chunks into the bounded textual
// context block given to the generation provider.
package ragcontext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"support-chat-be/pkg/retrieval"
)

const (
	// NoDocumentsSentinel is returned for an empty candidate list. Callers
	// treat it as a retrieval-miss signal, not a formatting error.
	NoDocumentsSentinel = "Nenhum documento relevante encontrado."

	// MaxContentPerDocument bounds each candidate's rendered content.
	MaxContentPerDocument = 50000

	// DefaultTotalBudget caps the aggregate assembled context. The exhaustive
	// fallback can otherwise grow without bound on large corpora.
	DefaultTotalBudget = 200000

	truncationMarker = "\n[...conteúdo truncado...]"
)

// Assembler formats retrieval candidates for prompt construction.
type Assembler struct {
	maxPerDocument int
	totalBudget    int
}

// Option configures the assembler.
type Option func(*Assembler)

// WithMaxPerDocument overrides the per-document content bound.
func WithMaxPerDocument(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.maxPerDocument = n
		}
	}
}

// WithTotalBudget overrides the aggregate context bound.
func WithTotalBudget(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.totalBudget = n
		}
	}
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		maxPerDocument: MaxContentPerDocument,
		totalBudget:    DefaultTotalBudget,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FormatForPrompt renders candidates as delimited blocks. Priority
// (instruction) documents are partitioned into a leading section regardless
// of retrieval score, because prompt construction depends on instructions
// appearing first. Within each section candidate order is preserved.
func (a *Assembler) FormatForPrompt(candidates []retrieval.Candidate) string {
	if len(candidates) == 0 {
		return NoDocumentsSentinel
	}

	var priority, regular []retrieval.Candidate
	for _, c := range candidates {
		if c.Priority {
			priority = append(priority, c)
		} else {
			regular = append(regular, c)
		}
	}

	var sb strings.Builder
	remaining := a.totalBudget
	ordinal := 0

	if len(priority) > 0 {
		sb.WriteString("=== INSTRUÇÕES PRIORITÁRIAS ===\n\n")
		for _, c := range priority {
			ordinal++
			remaining = a.writeBlock(&sb, c, ordinal, remaining)
		}
		sb.WriteString("\n")
	}

	if len(regular) > 0 {
		sb.WriteString("=== DOCUMENTOS TÉCNICOS ===\n\n")
		for _, c := range regular {
			ordinal++
			remaining = a.writeBlock(&sb, c, ordinal, remaining)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (a *Assembler) writeBlock(sb *strings.Builder, c retrieval.Candidate, ordinal, remaining int) int {
	if remaining <= 0 {
		return 0
	}

	name := c.DocumentName
	if name == "" {
		name = fmt.Sprintf("Documento %d", ordinal)
	}

	content := c.Content
	truncated := false
	limit := a.maxPerDocument
	if remaining < limit {
		limit = remaining
	}
	if len(content) > limit {
		// Back the cut off to a rune boundary so the truncation never
		// leaves a split multi-byte sequence.
		for limit > 0 && !utf8.RuneStart(content[limit]) {
			limit--
		}
		content = content[:limit]
		truncated = true
	}

	sb.WriteString(fmt.Sprintf("--- [%d] %s", ordinal, name))
	if c.Score > 0 {
		sb.WriteString(fmt.Sprintf(" (relevância: %.2f)", c.Score))
	}
	sb.WriteString(" ---\n")
	sb.WriteString(content)
	if truncated {
		sb.WriteString(truncationMarker)
	}
	sb.WriteString("\n\n")

	return remaining - len(content)
}
