package mapper

import (
	"testing"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentChunkToModelWithoutEmbedding(t *testing.T) {
	m := NewDocumentChunkMapper()

	chunk := &entity.DocumentChunk{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		Content:    "chunk sem embedding",
		Language:   "pt",
	}

	got := m.ToModel(chunk)

	// A missing embedding maps to NULL, never to a zero-dimension vector
	// the column type would reject.
	assert.Nil(t, got.Embedding)
	assert.Equal(t, chunk.Content, got.Content)
}

func TestDocumentChunkRoundTripWithEmbedding(t *testing.T) {
	m := NewDocumentChunkMapper()

	chunk := &entity.DocumentChunk{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		ChunkIndex: 3,
		Content:    "conteúdo indexado",
		Language:   "pt",
		Embedding:  []float32{0.1, 0.2, 0.3},
	}

	mod := m.ToModel(chunk)
	require.NotNil(t, mod.Embedding)
	assert.Equal(t, chunk.Embedding, mod.Embedding.Slice())

	back := m.ToEntity(mod)
	assert.Equal(t, chunk.Embedding, back.Embedding)
	assert.Equal(t, chunk.ChunkIndex, back.ChunkIndex)
}

func TestDocumentChunkToEntityNullEmbedding(t *testing.T) {
	m := NewDocumentChunkMapper()

	got := m.ToEntity(&model.DocumentChunk{
		Id:      uuid.New(),
		Content: "sem vetor",
	})

	assert.Nil(t, got.Embedding)
	assert.False(t, got.HasEmbedding())
}
