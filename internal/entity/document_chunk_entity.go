package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is a bounded slice of a document's text, the retrieval unit.
// Chunks are created in batch when a document is processed and immutable
// thereafter; ChunkIndex preserves insertion order within the document.
type DocumentChunk struct {
	Id          uuid.UUID
	DocumentId  uuid.UUID
	ChunkIndex  int
	Content     string
	ContentHash string
	SourceType  string
	Language    string
	Embedding   []float32 // nil until the embedding pipeline fills it
	CreatedAt   time.Time
}

// HasEmbedding reports whether the chunk can participate in similarity search.
func (c *DocumentChunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}
