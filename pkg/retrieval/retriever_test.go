package retrieval

import (
	"context"
	"errors"
	"testing"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/pkg/logger"
	"support-chat-be/internal/repository/contract"
	"support-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChunkRepo struct {
	contract.DocumentChunkRepository

	keywordChunks []*entity.DocumentChunk
	keywordErr    error
	allChunks     []*entity.DocumentChunk
}

func (s *stubChunkRepo) SearchByKeywords(ctx context.Context, keywords []string, language string, limit int) ([]*entity.DocumentChunk, error) {
	if s.keywordErr != nil {
		return nil, s.keywordErr
	}
	if len(s.keywordChunks) > limit {
		return s.keywordChunks[:limit], nil
	}
	return s.keywordChunks, nil
}

func (s *stubChunkRepo) FindByLanguage(ctx context.Context, language string) ([]*entity.DocumentChunk, error) {
	return s.allChunks, nil
}

type stubDocRepo struct {
	contract.DocumentRepository

	docs []*entity.Document
	err  error
}

func (s *stubDocRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return s.docs, s.err
}

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	return s.vector, s.err
}

type stubVectorSearcher struct {
	scored []*contract.ScoredChunk
	err    error
}

func (s *stubVectorSearcher) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, language string, threshold float64) ([]*contract.ScoredChunk, error) {
	return s.scored, s.err
}

func chunk(content string, docId uuid.UUID) *entity.DocumentChunk {
	return &entity.DocumentChunk{
		Id:         uuid.New(),
		DocumentId: docId,
		Content:    content,
	}
}

func TestRetrieveMergesSemanticAndKeyword(t *testing.T) {
	docId := uuid.New()
	semanticChunk := chunk("conteúdo semântico sobre tensão", docId)
	keywordChunk := chunk("conteúdo lexical sobre tensão", docId)

	chunks := &stubChunkRepo{keywordChunks: []*entity.DocumentChunk{keywordChunk}}
	docs := &stubDocRepo{docs: []*entity.Document{{Id: docId, Name: "Manual X", Type: entity.DocumentTypeManual}}}
	vector := &stubVectorSearcher{scored: []*contract.ScoredChunk{{Chunk: semanticChunk, Similarity: 0.91}}}

	r := NewRetriever(chunks, docs, &stubEmbedder{vector: []float32{1, 0}}, vector, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "qual a tensão medida", Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, semanticChunk.Id, got[0].ChunkId)
	assert.Equal(t, SourceSemantic, got[0].Source)
	assert.InDelta(t, 0.91, got[0].Score, 1e-9)
	assert.Equal(t, "Manual X", got[0].DocumentName)

	assert.Equal(t, keywordChunk.Id, got[1].ChunkId)
	assert.Equal(t, SourceKeyword, got[1].Source)
	assert.InDelta(t, DefaultKeywordScore, got[1].Score, 1e-9)
}

func TestRetrieveDeduplicatesByChunkId(t *testing.T) {
	docId := uuid.New()
	shared := chunk("aparece nos dois ramos", docId)

	chunks := &stubChunkRepo{keywordChunks: []*entity.DocumentChunk{shared}}
	docs := &stubDocRepo{docs: []*entity.Document{{Id: docId, Name: "Doc"}}}
	vector := &stubVectorSearcher{scored: []*contract.ScoredChunk{{Chunk: shared, Similarity: 0.8}}}

	r := NewRetriever(chunks, docs, &stubEmbedder{vector: []float32{1}}, vector, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "tensão regulador", Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	// Semantic branch wins the duplicate.
	assert.Equal(t, SourceSemantic, got[0].Source)
	assert.InDelta(t, 0.8, got[0].Score, 1e-9)
}

func TestRetrieveDegradesWhenEmbeddingFails(t *testing.T) {
	docId := uuid.New()
	keywordChunk := chunk("resultado lexical", docId)

	chunks := &stubChunkRepo{keywordChunks: []*entity.DocumentChunk{keywordChunk}}
	docs := &stubDocRepo{docs: []*entity.Document{{Id: docId, Name: "Doc"}}}

	r := NewRetriever(chunks, docs, &stubEmbedder{err: errors.New("quota exceeded")}, &stubVectorSearcher{}, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "tensão regulador", Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, SourceKeyword, got[0].Source)
}

func TestRetrieveDegradesWhenVectorSearchFails(t *testing.T) {
	docId := uuid.New()
	keywordChunk := chunk("resultado lexical", docId)

	chunks := &stubChunkRepo{keywordChunks: []*entity.DocumentChunk{keywordChunk}}
	docs := &stubDocRepo{docs: []*entity.Document{{Id: docId, Name: "Doc"}}}
	vector := &stubVectorSearcher{err: errors.New("pgvector unavailable")}

	r := NewRetriever(chunks, docs, &stubEmbedder{vector: []float32{1}}, vector, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "tensão regulador", Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, SourceKeyword, got[0].Source)
}

func TestRetrieveTruncatesToLimit(t *testing.T) {
	docId := uuid.New()
	var scored []*contract.ScoredChunk
	for i := 0; i < 10; i++ {
		scored = append(scored, &contract.ScoredChunk{Chunk: chunk("conteúdo", docId), Similarity: 0.7})
	}
	var kw []*entity.DocumentChunk
	for i := 0; i < 10; i++ {
		kw = append(kw, chunk("lexical", docId))
	}

	chunks := &stubChunkRepo{keywordChunks: kw}
	docs := &stubDocRepo{docs: []*entity.Document{{Id: docId, Name: "Doc"}}}
	vector := &stubVectorSearcher{scored: scored}

	r := NewRetriever(chunks, docs, &stubEmbedder{vector: []float32{1}}, vector, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "tensão regulador", Options{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestRetrieveOrderingIsDeterministic(t *testing.T) {
	docId := uuid.New()
	c1 := chunk("primeiro", docId)
	c2 := chunk("segundo", docId)
	c3 := chunk("terceiro", docId)

	chunks := &stubChunkRepo{keywordChunks: []*entity.DocumentChunk{c3}}
	docs := &stubDocRepo{docs: []*entity.Document{{Id: docId, Name: "Doc"}}}
	vector := &stubVectorSearcher{scored: []*contract.ScoredChunk{
		{Chunk: c1, Similarity: 0.75},
		{Chunk: c2, Similarity: 0.75},
	}}

	r := NewRetriever(chunks, docs, &stubEmbedder{vector: []float32{1}}, vector, logger.NewNopLogger())

	first, err := r.Retrieve(context.Background(), "tensão regulador", Options{})
	require.NoError(t, err)
	second, err := r.Retrieve(context.Background(), "tensão regulador", Options{})
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ChunkId, second[i].ChunkId)
	}
	// Equal scores keep merge order: semantic entries before the keyword hit.
	assert.Equal(t, c1.Id, first[0].ChunkId)
	assert.Equal(t, c2.Id, first[1].ChunkId)
	assert.Equal(t, c3.Id, first[2].ChunkId)
}

func TestLocalSimilarityFallbackWithoutVectorSearcher(t *testing.T) {
	docId := uuid.New()
	match := chunk("chunk com embedding próximo", docId)
	match.Embedding = []float32{1, 0}
	far := chunk("chunk distante", docId)
	far.Embedding = []float32{0, 1}
	noVector := chunk("chunk sem embedding", docId)

	chunks := &stubChunkRepo{allChunks: []*entity.DocumentChunk{match, far, noVector}}
	docs := &stubDocRepo{docs: []*entity.Document{{Id: docId, Name: "Doc"}}}

	r := NewRetriever(chunks, docs, &stubEmbedder{vector: []float32{1, 0}}, nil, logger.NewNopLogger())

	got, err := r.Retrieve(context.Background(), "qualquer consulta relevante", Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, match.Id, got[0].ChunkId)
	assert.InDelta(t, 1.0, got[0].Score, 1e-6)
}

func TestCandidatesFromDocuments(t *testing.T) {
	docs := []*entity.Document{
		{Id: uuid.New(), Name: "Instruções", Content: "regras", Type: entity.DocumentTypeInstruction},
		{Id: uuid.New(), Name: "Manual", Content: "tensões", Type: entity.DocumentTypeManual},
	}

	got := CandidatesFromDocuments(docs, 0.8)
	require.Len(t, got, 2)
	assert.True(t, got[0].Priority)
	assert.False(t, got[1].Priority)
	for _, c := range got {
		assert.InDelta(t, 0.8, c.Score, 1e-9)
		assert.Equal(t, SourceFallback, c.Source)
	}
}
