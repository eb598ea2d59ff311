package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		language string
		expected []string
	}{
		{
			name:     "removes portuguese stop words",
			query:    "qual a tensão que o regulador deve fornecer para o módulo",
			language: "pt",
			expected: []string{"tensão", "regulador", "fornecer", "módulo"},
		},
		{
			name:     "removes english stop words",
			query:    "what is the voltage for the main regulator",
			language: "en",
			expected: []string{"voltage", "main", "regulator"},
		},
		{
			name:     "strips punctuation and lowercases",
			query:    "Tensão? VS1! (medição)",
			language: "pt",
			expected: []string{"tensão", "vs1", "medição"},
		},
		{
			name:     "discards short tokens",
			query:    "vs é ok ab medição",
			language: "pt",
			expected: []string{"medição"},
		},
		{
			name:     "deduplicates preserving first-seen order",
			query:    "regulador tensão regulador tensão vs1",
			language: "pt",
			expected: []string{"regulador", "tensão", "vs1"},
		},
		{
			name:     "unknown language falls back to portuguese stops",
			query:    "qual tensão medida",
			language: "fr",
			expected: []string{"tensão", "medida"},
		},
		{
			name:     "empty query",
			query:    "",
			language: "pt",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractKeywords(tt.query, tt.language))
		})
	}
}
