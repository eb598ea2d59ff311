package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkContents(t *testing.T, text string, strategy Strategy, opts Options) []string {
	t.Helper()
	chunks := Chunk(text, uuid.New(), "text", "pt", strategy, opts)
	contents := make([]string, 0, len(chunks))
	for _, c := range chunks {
		contents = append(contents, c.Content)
	}
	return contents
}

func TestChunkEmptyInput(t *testing.T) {
	assert.Nil(t, Chunk("", uuid.New(), "text", "pt", StrategyAuto, DefaultOptions()))
	assert.Nil(t, Chunk("   \n\n\t  ", uuid.New(), "text", "pt", StrategyFixed, DefaultOptions()))
}

func TestChunkIndexesContiguous(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString(fmt.Sprintf("Paragraph number %d with enough text to matter for packing decisions.\n\n", i))
	}

	chunks := Chunk(sb.String(), uuid.New(), "text", "pt", StrategyFixed, Options{MaxChunkSize: 200, OverlapSize: 50})
	require.NotEmpty(t, chunks)

	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.NotEmpty(t, strings.TrimSpace(c.Content))
		assert.Equal(t, HashContent(c.Content), c.ContentHash)
	}
}

func TestFixedRespectsMaxChunkSize(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 20; i++ {
		paragraphs = append(paragraphs, strings.Repeat("palavra ", 10)+fmt.Sprint(i))
	}
	text := strings.Join(paragraphs, "\n\n")

	opts := Options{MaxChunkSize: 300, OverlapSize: 60}
	contents := chunkContents(t, text, StrategyFixed, opts)
	require.NotEmpty(t, contents)

	for _, c := range contents {
		assert.LessOrEqual(t, len(c), opts.MaxChunkSize)
	}
}

func TestFixedOversizeParagraphKeptWhole(t *testing.T) {
	oversize := strings.Repeat("x", 500)
	text := "primeiro parágrafo.\n\n" + oversize + "\n\nterceiro parágrafo."

	contents := chunkContents(t, text, StrategyFixed, Options{MaxChunkSize: 200, OverlapSize: 40})
	require.NotEmpty(t, contents)

	found := false
	for _, c := range contents {
		if strings.Contains(c, oversize) {
			found = true
		}
	}
	assert.True(t, found, "oversize paragraph must survive intact")
}

func TestFixedOverlapSeedsNextChunk(t *testing.T) {
	p1 := strings.Repeat("a", 120)
	p2 := strings.Repeat("b", 120)
	tail := strings.Repeat("c", 40)
	p4 := strings.Repeat("d", 120)

	// p1+p2+tail fill the first chunk; tail fits the overlap budget and must
	// reappear at the head of the second chunk.
	text := strings.Join([]string{p1, p2, tail, p4}, "\n\n")
	contents := chunkContents(t, text, StrategyFixed, Options{MaxChunkSize: 300, OverlapSize: 50})
	require.GreaterOrEqual(t, len(contents), 2)

	assert.True(t, strings.HasSuffix(contents[0], tail))
	assert.True(t, strings.HasPrefix(contents[1], tail))
}

func TestChunkDeterminism(t *testing.T) {
	text := strings.Repeat("Uma frase de teste com conteúdo repetível. ", 200)
	docId := uuid.New()

	first := Chunk(text, docId, "text", "pt", StrategyRecursive, DefaultOptions())
	second := Chunk(text, docId, "text", "pt", StrategyRecursive, DefaultOptions())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
		assert.Equal(t, first[i].ContentHash, second[i].ContentHash)
	}
}

func TestChunkCoverageNoTextLost(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 15; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("Parágrafo único número %d com marcador UNIQ%d.", i, i))
	}
	text := strings.Join(paragraphs, "\n\n")

	contents := chunkContents(t, text, StrategyFixed, Options{MaxChunkSize: 150, OverlapSize: 30})
	joined := strings.Join(contents, "\n")
	for i := range paragraphs {
		assert.Contains(t, joined, fmt.Sprintf("UNIQ%d", i))
	}
}

func TestSemanticSplitsOnHeadings(t *testing.T) {
	text := `CAPÍTULO 1: INTRODUÇÃO

Este capítulo apresenta o equipamento e seus módulos principais de operação.

CAPÍTULO 2: MEDIÇÕES

O ponto de teste VS1 (~2.05 V) deve ser verificado antes de qualquer reparo.

SEÇÃO 2.1

Procedimentos detalhados de medição com multímetro em escala adequada.`

	contents := chunkContents(t, text, StrategySemantic, DefaultOptions())
	require.Len(t, contents, 3)
	assert.True(t, strings.HasPrefix(contents[0], "CAPÍTULO 1"))
	assert.True(t, strings.HasPrefix(contents[1], "CAPÍTULO 2"))
	assert.True(t, strings.HasPrefix(contents[2], "SEÇÃO 2.1"))
}

func TestSemanticFallsBackWithoutHeadings(t *testing.T) {
	text := "Primeira linha de texto corrido sem estrutura alguma reconhecível aqui.\n\n" +
		"Segunda linha igualmente desprovida de marcadores de seção ou capítulo."

	contents := chunkContents(t, text, StrategySemantic, DefaultOptions())
	require.NotEmpty(t, contents)
	joined := strings.Join(contents, "\n")
	assert.Contains(t, joined, "Primeira linha")
	assert.Contains(t, joined, "Segunda linha")
}

func TestRecursiveBoundsPieces(t *testing.T) {
	sentence := "Esta é uma frase razoavelmente longa com várias palavras. "
	text := strings.Repeat(sentence, 400)

	opts := Options{MaxChunkSize: 500, OverlapSize: 0}
	contents := chunkContents(t, text, StrategyRecursive, opts)
	require.NotEmpty(t, contents)

	for _, c := range contents {
		assert.LessOrEqual(t, len(c), opts.MaxChunkSize)
	}
}

func TestRecursiveUnsplittableInputTerminates(t *testing.T) {
	// No whitespace at all: recursion must still terminate and return the
	// text rather than loop or drop it.
	text := strings.Repeat("x", 5000)
	contents := chunkContents(t, text, StrategyRecursive, Options{MaxChunkSize: 500})
	require.Len(t, contents, 1)
	assert.Equal(t, text, contents[0])
}

func TestSmartDispatch(t *testing.T) {
	t.Run("small text uses fixed", func(t *testing.T) {
		text := "Texto curto.\n\nOutro parágrafo curto."
		contents := chunkContents(t, text, StrategyAuto, DefaultOptions())
		require.Len(t, contents, 1)
	})

	t.Run("structured manual uses semantic", func(t *testing.T) {
		var sb strings.Builder
		for i := 1; i <= 4; i++ {
			sb.WriteString(fmt.Sprintf("CAPÍTULO %d: TÍTULO\n\n", i))
			sb.WriteString(strings.Repeat("Conteúdo técnico da seção com detalhes. ", 30))
			sb.WriteString("\n\n")
		}
		chunks := Chunk(sb.String(), uuid.New(), string("manual"), "pt", StrategyAuto, DefaultOptions())
		require.NotEmpty(t, chunks)
		assert.True(t, strings.HasPrefix(chunks[0].Content, "CAPÍTULO 1"))
	})

	t.Run("large unstructured text goes recursive", func(t *testing.T) {
		text := strings.Repeat("Uma frase sem estrutura de cabeçalho aqui. ", 400)
		opts := DefaultOptions()
		contents := chunkContents(t, text, StrategyAuto, opts)
		require.Greater(t, len(contents), 1)
		for _, c := range contents {
			assert.LessOrEqual(t, len(c), opts.MaxChunkSize)
		}
	})
}

func TestOptionsNormalization(t *testing.T) {
	opts := Options{MaxChunkSize: 100, OverlapSize: 100}.normalized()
	assert.Equal(t, 25, opts.OverlapSize)

	opts = Options{}.normalized()
	assert.Equal(t, DefaultMaxChunkSize, opts.MaxChunkSize)
	assert.Equal(t, DefaultOverlapSize, opts.OverlapSize)
}
