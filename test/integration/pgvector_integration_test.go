package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/repository/implementation"
	"support-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the pgvector similarity query end to end. Requires a database
// with the vector extension; skipped otherwise.
func TestPgvectorSimilaritySearch(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	docRepo := implementation.NewDocumentRepository(gormDB)
	chunkRepo := implementation.NewDocumentChunkRepository(gormDB)

	doc := &entity.Document{
		Id:        uuid.New(),
		Name:      "integration-vector-doc-" + uuid.New().String(),
		Content:   "conteúdo vetorial",
		Type:      entity.DocumentTypeTechnical,
		Status:    entity.DocumentStatusIndexed,
		Language:  "pt",
		CreatedAt: time.Now(),
	}
	require.NoError(t, docRepo.Create(ctx, doc))
	defer func() {
		_ = chunkRepo.DeleteByDocumentId(ctx, doc.Id)
		_ = docRepo.Delete(ctx, doc.Id)
	}()

	// Two orthogonal unit vectors padded to the stored dimension.
	near := make([]float32, 1536)
	near[0] = 1
	far := make([]float32, 1536)
	far[1] = 1

	chunks := []*entity.DocumentChunk{
		{
			Id: uuid.New(), DocumentId: doc.Id, ChunkIndex: 0,
			Content: "chunk próximo", ContentHash: "h0",
			SourceType: "document", Language: "pt", Embedding: near,
		},
		{
			Id: uuid.New(), DocumentId: doc.Id, ChunkIndex: 1,
			Content: "chunk distante", ContentHash: "h1",
			SourceType: "document", Language: "pt", Embedding: far,
		},
	}
	require.NoError(t, chunkRepo.CreateBulk(ctx, chunks))

	query := make([]float32, 1536)
	query[0] = 1

	scored, err := chunkRepo.SearchSimilarWithScore(ctx, query, 5, "pt", 0.6)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, chunks[0].Id, scored[0].Chunk.Id)
	assert.InDelta(t, 1.0, scored[0].Similarity, 1e-3)
}
