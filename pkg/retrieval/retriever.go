// Package retrieval implements hybrid retrieval: keyword matching over the
// chunk store merged with embedding similarity search.
package retrieval

import (
	"context"
	"sort"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/pkg/logger"
	"support-chat-be/internal/repository/contract"
	"support-chat-be/internal/repository/specification"
	"support-chat-be/pkg/embedding"
	"support-chat-be/pkg/similarity"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the number of candidates returned per query.
	DefaultLimit = 7
	// SimilarityThreshold filters semantic matches; below it a chunk is
	// considered unrelated.
	SimilarityThreshold = 0.6
	// DefaultKeywordScore is assigned to keyword hits the store left unscored.
	DefaultKeywordScore = 0.5
	// semanticSharePercent of the limit goes to the semantic branch, leaving
	// headroom for keyword results in the merge.
	semanticSharePercent = 60
)

// Candidate pairs a chunk with its relevance score and originating document.
// Ephemeral: exists only for the duration of one retrieval.
type Candidate struct {
	ChunkId      uuid.UUID
	DocumentId   uuid.UUID
	DocumentName string
	Content      string
	Score        float64
	Priority     bool // instruction-type document, rendered first in context
	Source       string
}

// Candidate sources, in merge precedence order.
const (
	SourceSemantic = "semantic"
	SourceKeyword  = "keyword"
	SourceFallback = "fallback"
)

// VectorSearcher is the optional vector-search collaborator. The retriever
// works correctly with it absent by scoring stored chunks locally.
type VectorSearcher interface {
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, language string, threshold float64) ([]*contract.ScoredChunk, error)
}

// Options tunes one retrieval call.
type Options struct {
	Limit    int
	Language string
}

func (o Options) normalized() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Language == "" {
		o.Language = "pt"
	}
	return o
}

// Retriever combines keyword and embedding search into one ranked candidate
// list per query.
type Retriever struct {
	chunks   contract.DocumentChunkRepository
	docs     contract.DocumentRepository
	embedder embedding.EmbeddingProvider
	vector   VectorSearcher // nil enables the local scoring fallback
	logger   logger.ILogger
}

func NewRetriever(
	chunks contract.DocumentChunkRepository,
	docs contract.DocumentRepository,
	embedder embedding.EmbeddingProvider,
	vector VectorSearcher,
	log logger.ILogger,
) *Retriever {
	return &Retriever{
		chunks:   chunks,
		docs:     docs,
		embedder: embedder,
		vector:   vector,
		logger:   log,
	}
}

// Retrieve returns candidates ordered by descending score. Ties preserve
// merge order (semantic before keyword, each internally stable), so identical
// store state and query always yield identical ordering. Failures in the
// semantic branch degrade to keyword-only retrieval.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts Options) ([]Candidate, error) {
	opts = opts.normalized()

	keywords := ExtractKeywords(query, opts.Language)

	keywordCands := r.keywordSearch(ctx, keywords, opts)
	semanticCands := r.semanticSearch(ctx, query, opts)

	merged := mergeCandidates(semanticCands, keywordCands, opts.Limit)

	if err := r.hydrateDocuments(ctx, merged); err != nil {
		r.logger.Warn("retrieval", "failed to hydrate candidate documents", map[string]interface{}{"error": err.Error()})
	}

	return merged, nil
}

func (r *Retriever) keywordSearch(ctx context.Context, keywords []string, opts Options) []Candidate {
	if len(keywords) == 0 {
		return nil
	}

	chunks, err := r.chunks.SearchByKeywords(ctx, keywords, opts.Language, opts.Limit)
	if err != nil {
		r.logger.Error("retrieval", "keyword search failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	cands := make([]Candidate, 0, len(chunks))
	for _, c := range chunks {
		cands = append(cands, Candidate{
			ChunkId:    c.Id,
			DocumentId: c.DocumentId,
			Content:    c.Content,
			Score:      DefaultKeywordScore,
			Source:     SourceKeyword,
		})
	}
	return cands
}

func (r *Retriever) semanticSearch(ctx context.Context, query string, opts Options) []Candidate {
	queryVector, err := r.embedder.Generate(ctx, query)
	if err != nil {
		r.logger.Warn("retrieval", "query embedding failed, degrading to keyword-only", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if len(queryVector) == 0 {
		return nil
	}

	semanticLimit := opts.Limit * semanticSharePercent / 100
	if semanticLimit < 1 {
		semanticLimit = 1
	}

	var scored []*contract.ScoredChunk
	if r.vector != nil {
		scored, err = r.vector.SearchSimilarWithScore(ctx, queryVector, semanticLimit, opts.Language, SimilarityThreshold)
	} else {
		scored, err = r.localSimilaritySearch(ctx, queryVector, semanticLimit, opts.Language)
	}
	if err != nil {
		r.logger.Error("retrieval", "semantic search failed, degrading to keyword-only", map[string]interface{}{"error": err.Error()})
		return nil
	}

	cands := make([]Candidate, 0, len(scored))
	for _, s := range scored {
		cands = append(cands, Candidate{
			ChunkId:    s.Chunk.Id,
			DocumentId: s.Chunk.DocumentId,
			Content:    s.Chunk.Content,
			Score:      s.Similarity,
			Source:     SourceSemantic,
		})
	}
	return cands
}

// localSimilaritySearch scores every stored chunk against the query vector.
// Fallback path for deployments without a vector-search-capable store.
func (r *Retriever) localSimilaritySearch(ctx context.Context, queryVector []float32, limit int, language string) ([]*contract.ScoredChunk, error) {
	chunks, err := r.chunks.FindByLanguage(ctx, language)
	if err != nil {
		return nil, err
	}

	var scored []*contract.ScoredChunk
	for _, c := range chunks {
		if !c.HasEmbedding() {
			continue
		}
		score := similarity.Cosine(queryVector, c.Embedding)
		if score >= SimilarityThreshold {
			scored = append(scored, &contract.ScoredChunk{Chunk: c, Similarity: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// mergeCandidates starts from the semantic results, appends keyword results
// whose chunk is not already present, sorts by descending score (stable) and
// truncates to limit.
func mergeCandidates(semantic, keyword []Candidate, limit int) []Candidate {
	merged := make([]Candidate, 0, len(semantic)+len(keyword))
	seen := make(map[uuid.UUID]bool, len(semantic))

	for _, c := range semantic {
		if seen[c.ChunkId] {
			continue
		}
		seen[c.ChunkId] = true
		merged = append(merged, c)
	}
	for _, c := range keyword {
		if seen[c.ChunkId] {
			continue
		}
		seen[c.ChunkId] = true
		merged = append(merged, c)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// hydrateDocuments fills display names and priority flags from the owning
// documents.
func (r *Retriever) hydrateDocuments(ctx context.Context, cands []Candidate) error {
	if len(cands) == 0 {
		return nil
	}

	idSet := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(cands))
	for _, c := range cands {
		if !idSet[c.DocumentId] {
			idSet[c.DocumentId] = true
			ids = append(ids, c.DocumentId)
		}
	}

	docs, err := r.docs.FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return err
	}

	nameMap := make(map[uuid.UUID]string, len(docs))
	priorityMap := make(map[uuid.UUID]bool, len(docs))
	for _, d := range docs {
		nameMap[d.Id] = d.Name
		priorityMap[d.Id] = d.IsPriority()
	}

	for i := range cands {
		if name, ok := nameMap[cands[i].DocumentId]; ok {
			cands[i].DocumentName = name
		}
		cands[i].Priority = priorityMap[cands[i].DocumentId]
	}
	return nil
}

// CandidatesFromDocuments builds exhaustive-fallback candidates directly from
// completed documents, bypassing relevance filtering. Used when retrieval
// finds nothing or the caller forces extraction.
func CandidatesFromDocuments(docs []*entity.Document, score float64) []Candidate {
	cands := make([]Candidate, 0, len(docs))
	for _, d := range docs {
		cands = append(cands, Candidate{
			DocumentId:   d.Id,
			DocumentName: d.Name,
			Content:      d.Content,
			Score:        score,
			Priority:     d.IsPriority(),
			Source:       SourceFallback,
		})
	}
	return cands
}
