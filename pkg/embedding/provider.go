// Package embedding adapts external embedding providers behind one interface.
// Providers are stateless; Generate is idempotent and safe to retry.
package embedding

import "context"

// MaxInputChars is the documented provider input limit; longer text is
// truncated before submission.
const MaxInputChars = 8000

// EmbeddingProvider converts text into a fixed-length vector.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// TruncateInput bounds text to the provider input limit.
func TruncateInput(text string) string {
	if len(text) <= MaxInputChars {
		return text
	}
	return text[:MaxInputChars]
}
