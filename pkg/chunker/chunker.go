// Package chunker splits raw document text into bounded, overlapping segments
// for embedding and retrieval. Strategy selection is adaptive: small texts use
// the cheap fixed-size splitter, structured manuals get heading-aware semantic
// splitting, and very large unstructured texts fall back to recursive
// divide-and-conquer.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"support-chat-be/internal/entity"

	"github.com/google/uuid"
)

// Strategy selects the splitting algorithm.
type Strategy string

const (
	StrategyAuto      Strategy = "auto"
	StrategyFixed     Strategy = "fixed"
	StrategySemantic  Strategy = "semantic"
	StrategyRecursive Strategy = "recursive"
)

const (
	// DefaultMaxChunkSize is approximately 375 tokens, safe for embedding
	// provider context limits.
	DefaultMaxChunkSize = 1500
	// DefaultOverlapSize preserves context at chunk boundaries.
	DefaultOverlapSize = 150

	// smallTextThreshold: below this, structure detection is not worth it.
	smallTextThreshold = 3000
	// largeTextThreshold: above this, unstructured text goes recursive.
	largeTextThreshold = 10000
)

// Options bounds the splitter. Invalid values fall back to defaults.
type Options struct {
	MaxChunkSize int
	OverlapSize  int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxChunkSize: DefaultMaxChunkSize,
		OverlapSize:  DefaultOverlapSize,
	}
}

func (o Options) normalized() Options {
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = DefaultMaxChunkSize
	}
	if o.OverlapSize < 0 {
		o.OverlapSize = DefaultOverlapSize
	}
	// Invariant: overlap strictly smaller than chunk size
	if o.OverlapSize >= o.MaxChunkSize {
		o.OverlapSize = o.MaxChunkSize / 4
	}
	return o
}

// structuredTypes are document types expected to carry heading structure.
var structuredTypes = map[string]bool{
	string(entity.DocumentTypeManual):    true,
	string(entity.DocumentTypeTechnical): true,
}

// Chunk splits text into ordered DocumentChunks for the given document.
// Empty or whitespace-only text yields nil, never an error. ChunkIndex is
// strictly increasing from 0 and every chunk has non-empty trimmed content
// and a deterministic content hash.
func Chunk(text string, documentId uuid.UUID, sourceType, language string, strategy Strategy, opts Options) []entity.DocumentChunk {
	opts = opts.normalized()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var pieces []string
	switch strategy {
	case StrategyFixed:
		pieces = splitFixed(text, opts)
	case StrategySemantic:
		pieces = splitSemantic(text, opts)
	case StrategyRecursive:
		pieces = splitRecursive(text, opts.MaxChunkSize, 0)
	default:
		pieces = smartSplit(text, sourceType, opts)
	}

	return buildChunks(pieces, documentId, sourceType, language)
}

// smartSplit picks a strategy from text size and document structure.
func smartSplit(text, sourceType string, opts Options) []string {
	if len(text) < smallTextThreshold {
		return splitFixed(text, opts)
	}

	if structuredTypes[sourceType] {
		pieces := splitSemantic(text, opts)
		// Semantic splitting collapsed despite oversize text: the document
		// has no usable structure, go recursive.
		if len(pieces) <= 1 && len(text) > opts.MaxChunkSize {
			return splitRecursive(text, opts.MaxChunkSize, 0)
		}
		return pieces
	}

	if len(text) > largeTextThreshold {
		return splitRecursive(text, opts.MaxChunkSize, 0)
	}

	return splitFixed(text, opts)
}

func buildChunks(pieces []string, documentId uuid.UUID, sourceType, language string) []entity.DocumentChunk {
	chunks := make([]entity.DocumentChunk, 0, len(pieces))
	index := 0
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		chunks = append(chunks, entity.DocumentChunk{
			Id:          uuid.New(),
			DocumentId:  documentId,
			ChunkIndex:  index,
			Content:     piece,
			ContentHash: HashContent(piece),
			SourceType:  sourceType,
			Language:    language,
		})
		index++
	}
	if len(chunks) == 0 {
		return nil
	}
	return chunks
}

// HashContent returns the hex sha256 digest of the chunk text, used for
// dedup and change detection.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
