package contract

import (
	"context"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk wraps a DocumentChunk with its similarity score
type ScoredChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindByLanguage returns all chunks for a language, embeddings included.
	// Feeds the local similarity fallback when vector search is unavailable.
	FindByLanguage(ctx context.Context, language string) ([]*entity.DocumentChunk, error)
	// SearchByKeywords runs the lexical branch of hybrid retrieval.
	SearchByKeywords(ctx context.Context, keywords []string, language string, limit int) ([]*entity.DocumentChunk, error)
	// SearchSimilarWithScore returns chunks ranked by cosine similarity to the
	// query vector, filtered by threshold. Delegated to pgvector.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, language string, threshold float64) ([]*ScoredChunk, error)
}
