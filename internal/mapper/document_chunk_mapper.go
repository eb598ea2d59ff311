package mapper

import (
	"support-chat-be/internal/entity"
	"support-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(e *model.DocumentChunk) *entity.DocumentChunk {
	if e == nil {
		return nil
	}

	var embedding []float32
	if e.Embedding != nil {
		embedding = e.Embedding.Slice()
	}

	return &entity.DocumentChunk{
		Id:          e.Id,
		DocumentId:  e.DocumentId,
		ChunkIndex:  e.ChunkIndex,
		Content:     e.Content,
		ContentHash: e.ContentHash,
		SourceType:  e.SourceType,
		Language:    e.Language,
		Embedding:   embedding,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	if e == nil {
		return nil
	}

	// A zero-dimension vector literal is rejected by the column type, so a
	// chunk without an embedding is stored as NULL.
	var embedding *pgvector.Vector
	if len(e.Embedding) > 0 {
		v := pgvector.NewVector(e.Embedding)
		embedding = &v
	}

	return &model.DocumentChunk{
		Id:          e.Id,
		DocumentId:  e.DocumentId,
		ChunkIndex:  e.ChunkIndex,
		Content:     e.Content,
		ContentHash: e.ContentHash,
		SourceType:  e.SourceType,
		Language:    e.Language,
		Embedding:   embedding,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
